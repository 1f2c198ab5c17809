// Package display keeps the rendered page state that the HTTP surface
// serves to clients. It implements ports.DisplaySurface.
package display

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen/quote-manager/internal/domain"
	"github.com/jsamuelsen/quote-manager/internal/ports"
)

// DefaultMaxNotifications bounds the notification history.
const DefaultMaxNotifications = 20

// Notification is a transient message with the time it was raised.
type Notification struct {
	Message string
	At      time.Time
}

// Snapshot is a consistent copy of the page.
type Snapshot struct {
	// Quote is the formatted quote slot, or its placeholder message.
	Quote string

	Categories []string
	Selected   string

	// Filter labels the list; ListMessage is set when List is empty.
	Filter      string
	List        []domain.Quote
	ListMessage string

	// Notifications are ordered oldest first.
	Notifications []Notification
}

// Page is the in-memory display surface. Render calls never block on I/O.
type Page struct {
	mu    sync.RWMutex
	state Snapshot

	maxNotifications int
	now              func() time.Time
	logger           *slog.Logger
}

var _ ports.DisplaySurface = (*Page)(nil)

// Config holds optional configuration for the page.
type Config struct {
	// MaxNotifications kept; older ones are dropped. Defaults to DefaultMaxNotifications.
	MaxNotifications int

	// Now defaults to time.Now.
	Now func() time.Time

	Logger *slog.Logger
}

// New creates an empty page.
func New(cfg *Config) *Page {
	p := &Page{
		maxNotifications: DefaultMaxNotifications,
		now:              time.Now,
		logger:           slog.Default(),
	}

	if cfg != nil {
		if cfg.MaxNotifications > 0 {
			p.maxNotifications = cfg.MaxNotifications
		}
		if cfg.Now != nil {
			p.now = cfg.Now
		}
		if cfg.Logger != nil {
			p.logger = cfg.Logger
		}
	}

	return p
}

// RenderQuote implements ports.DisplaySurface.
func (p *Page) RenderQuote(_ context.Context, view ports.QuoteView) {
	text := view.Message
	if view.Quote != nil {
		text = view.Quote.String()
	}

	p.mu.Lock()
	p.state.Quote = text
	p.mu.Unlock()
}

// RenderCategoryOptions implements ports.DisplaySurface.
func (p *Page) RenderCategoryOptions(_ context.Context, categories []string, selected string) {
	p.mu.Lock()
	p.state.Categories = append([]string(nil), categories...)
	p.state.Selected = selected
	p.mu.Unlock()
}

// RenderNotification implements ports.DisplaySurface.
func (p *Page) RenderNotification(ctx context.Context, message string) {
	p.mu.Lock()
	p.state.Notifications = append(p.state.Notifications, Notification{Message: message, At: p.now()})
	if extra := len(p.state.Notifications) - p.maxNotifications; extra > 0 {
		p.state.Notifications = append([]Notification(nil), p.state.Notifications[extra:]...)
	}
	p.mu.Unlock()

	p.logger.DebugContext(ctx, "notification", slog.String("message", message))
}

// RenderFilteredList implements ports.DisplaySurface.
func (p *Page) RenderFilteredList(_ context.Context, quotes []domain.Quote, label string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.state.Filter = label
	p.state.List = append([]domain.Quote(nil), quotes...)
	p.state.ListMessage = ""

	if len(quotes) == 0 {
		p.state.ListMessage = EmptyListMessage(label)
	}
}

// Snapshot returns a copy of the page.
func (p *Page) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	s := p.state
	s.Categories = append([]string(nil), p.state.Categories...)
	s.List = append([]domain.Quote(nil), p.state.List...)
	s.Notifications = append([]Notification(nil), p.state.Notifications...)

	return s
}

// EmptyListMessage is shown in place of an empty filtered list.
func EmptyListMessage(label string) string {
	return `No quotes found in "` + label + `" category.`
}
