package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/jsamuelsen/quote-manager/internal/domain"
	"github.com/jsamuelsen/quote-manager/internal/ports"
)

// Selector picks a uniformly random quote from the active subset.
type Selector struct {
	store   *QuoteStore
	filter  *CategoryFilter
	session ports.KeyValueStore
	intn    func(n int) int
	logger  *slog.Logger
}

// SelectorConfig holds optional configuration for the selector.
type SelectorConfig struct {
	Logger *slog.Logger

	// Intn returns a value in [0, n). Defaults to math/rand/v2.IntN.
	Intn func(n int) int
}

// NewSelector creates a selector recording the last pick in session.
func NewSelector(store *QuoteStore, filter *CategoryFilter, session ports.KeyValueStore, cfg *SelectorConfig) *Selector {
	if store == nil || filter == nil || session == nil {
		panic("app.NewSelector: store, filter and session are required")
	}

	s := &Selector{
		store:   store,
		filter:  filter,
		session: session,
		intn:    rand.IntN,
		logger:  slog.Default(),
	}

	if cfg != nil {
		if cfg.Logger != nil {
			s.logger = cfg.Logger
		}
		if cfg.Intn != nil {
			s.intn = cfg.Intn
		}
	}

	return s
}

// PickRandom returns a quote from the active subset and records it as the
// last shown quote. ok is false when the subset is empty.
func (s *Selector) PickRandom(ctx context.Context) (quote domain.Quote, ok bool, err error) {
	quotes := s.store.All()
	subset := ActiveSubset(quotes, s.filter.CurrentFilter(ctx, quotes))
	if len(subset) == 0 {
		return domain.Quote{}, false, nil
	}

	quote = subset[s.intn(len(subset))]

	data, err := encodeQuote(quote)
	if err != nil {
		return quote, true, err
	}

	if err := s.session.Set(ctx, ports.KeyLastQuote, data); err != nil {
		return quote, true, fmt.Errorf("recording last quote: %w", err)
	}

	return quote, true, nil
}

// LastShown returns the quote recorded by the most recent PickRandom in
// this session.
func (s *Selector) LastShown(ctx context.Context) (domain.Quote, bool) {
	raw, err := s.session.Get(ctx, ports.KeyLastQuote)
	if err != nil {
		return domain.Quote{}, false
	}

	var doc quoteDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.DebugContext(ctx, "discarding unreadable last quote", slog.Any("error", err))
		return domain.Quote{}, false
	}

	q, err := domain.NewQuote(doc.Text, doc.Category)
	if err != nil {
		return domain.Quote{}, false
	}

	return q, true
}
