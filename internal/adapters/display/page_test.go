package display

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-manager/internal/domain"
	"github.com/jsamuelsen/quote-manager/internal/ports"
)

func newTestPage(cfg *Config) *Page {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(cfg)
}

func TestPage_RenderQuote(t *testing.T) {
	ctx := context.Background()
	p := newTestPage(nil)

	q := domain.Quote{Text: "Creativity is intelligence having fun.", Category: "Inspiration"}
	p.RenderQuote(ctx, ports.QuoteView{Quote: &q})
	assert.Equal(t, `"Creativity is intelligence having fun." — Inspiration`, p.Snapshot().Quote)

	p.RenderQuote(ctx, ports.QuoteView{Message: "No quotes available."})
	assert.Equal(t, "No quotes available.", p.Snapshot().Quote)
}

func TestPage_RenderFilteredList(t *testing.T) {
	ctx := context.Background()
	p := newTestPage(nil)

	p.RenderFilteredList(ctx, []domain.Quote{{Text: "a", Category: "Life"}}, "life")
	snap := p.Snapshot()
	assert.Equal(t, "life", snap.Filter)
	assert.Len(t, snap.List, 1)
	assert.Empty(t, snap.ListMessage)

	p.RenderFilteredList(ctx, nil, "Humor")
	snap = p.Snapshot()
	assert.Empty(t, snap.List)
	assert.Equal(t, `No quotes found in "Humor" category.`, snap.ListMessage)
}

func TestPage_RenderCategoryOptions(t *testing.T) {
	p := newTestPage(nil)

	categories := []string{"all", "Life"}
	p.RenderCategoryOptions(context.Background(), categories, "Life")
	categories[1] = "changed"

	snap := p.Snapshot()
	assert.Equal(t, []string{"all", "Life"}, snap.Categories)
	assert.Equal(t, "Life", snap.Selected)
}

func TestPage_NotificationsBounded(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	p := newTestPage(&Config{MaxNotifications: 2, Now: func() time.Time { return at }})

	p.RenderNotification(ctx, "one")
	p.RenderNotification(ctx, "two")
	p.RenderNotification(ctx, "three")

	snap := p.Snapshot()
	require.Len(t, snap.Notifications, 2)
	assert.Equal(t, "two", snap.Notifications[0].Message)
	assert.Equal(t, "three", snap.Notifications[1].Message)
	assert.Equal(t, at, snap.Notifications[1].At)
}

func TestPage_SnapshotIsCopy(t *testing.T) {
	ctx := context.Background()
	p := newTestPage(nil)
	p.RenderFilteredList(ctx, []domain.Quote{{Text: "a", Category: "b"}}, "all")

	snap := p.Snapshot()
	snap.List[0].Text = "mutated"

	assert.Equal(t, "a", p.Snapshot().List[0].Text)
}

func TestPage_ConcurrentRenders(t *testing.T) {
	ctx := context.Background()
	p := newTestPage(nil)

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() {
			p.RenderNotification(ctx, "Quotes synced with server!")
			p.RenderFilteredList(ctx, nil, "all")
			_ = p.Snapshot()
		})
	}
	wg.Wait()

	assert.Len(t, p.Snapshot().Notifications, 10)
}
