package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jsamuelsen/quote-manager/internal/domain"
	"github.com/jsamuelsen/quote-manager/internal/ports"
)

// SeedQuotes returns the collection used when nothing has been stored yet.
func SeedQuotes() domain.Collection {
	return domain.Collection{
		{Text: "The only limit to our realization of tomorrow is our doubts of today.", Category: "Motivation"},
		{Text: "Life is what happens when you're busy making other plans.", Category: "Life"},
		{Text: "Creativity is intelligence having fun.", Category: "Inspiration"},
	}
}

// QuoteStore owns the in-memory quote collection and its durable copy.
// All mutations go through one mutex; a mutation either persists and
// becomes visible, or leaves both copies untouched.
type QuoteStore struct {
	mu      sync.Mutex
	durable ports.KeyValueStore
	quotes  domain.Collection
	logger  *slog.Logger
}

// StoreConfig holds optional configuration for the quote store.
type StoreConfig struct {
	Logger *slog.Logger
}

// NewQuoteStore creates a store over the durable tier. Call Load before use.
func NewQuoteStore(durable ports.KeyValueStore, cfg *StoreConfig) *QuoteStore {
	if durable == nil {
		panic("app.NewQuoteStore: durable store is required")
	}

	logger := slog.Default()
	if cfg != nil && cfg.Logger != nil {
		logger = cfg.Logger
	}

	return &QuoteStore{
		durable: durable,
		logger:  logger.With(slog.String("component", "quote_store")),
	}
}

// Load reads the persisted collection. An absent or unreadable document
// yields the seed quotes; the seed is not written back until the next
// mutation. Stored entries that fail validation are dropped.
func (s *QuoteStore) Load(ctx context.Context) (domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.durable.Get(ctx, ports.KeyQuotes)
	switch {
	case domain.IsNotFound(err):
		s.quotes = SeedQuotes()
	case err != nil:
		return nil, fmt.Errorf("loading quotes: %w", err)
	default:
		quotes, _, decodeErr := decodeDocument(raw)
		if decodeErr != nil {
			s.logger.WarnContext(ctx, "stored quotes unreadable, using seed", slog.Any("error", decodeErr))
			s.quotes = SeedQuotes()
		} else {
			s.quotes = quotes
		}
	}

	s.logger.DebugContext(ctx, "quotes loaded", slog.Int("count", len(s.quotes)))

	return s.quotes.Clone(), nil
}

// All returns a snapshot of the collection.
func (s *QuoteStore) All() domain.Collection {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.quotes.Clone()
}

// Persist replaces the whole collection, in memory and durably.
func (s *QuoteStore) Persist(ctx context.Context, quotes domain.Collection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := quotes.Clone()
	if err := s.write(ctx, next); err != nil {
		return err
	}

	s.quotes = next

	return nil
}

// Append validates one quote and adds it.
// Returns a ValidationError, with no state change, if a field is empty.
func (s *QuoteStore) Append(ctx context.Context, text, category string) (domain.Quote, error) {
	q, err := domain.NewQuote(text, category)
	if err != nil {
		return domain.Quote{}, err
	}

	if _, err := s.Apply(ctx, func(domain.Collection) []domain.Quote {
		return []domain.Quote{q}
	}); err != nil {
		return domain.Quote{}, err
	}

	return q, nil
}

// AppendAll adds every valid quote of the batch with a single persist.
// Invalid elements are skipped silently. Returns the quotes actually added.
func (s *QuoteStore) AppendAll(ctx context.Context, quotes []domain.Quote) ([]domain.Quote, error) {
	return s.Apply(ctx, func(domain.Collection) []domain.Quote {
		return quotes
	})
}

// Apply runs pick against the current collection under the mutation lock
// and appends what it returns. Candidates are trimmed; invalid ones are
// skipped. Nothing is written when no candidate survives.
func (s *QuoteStore) Apply(
	ctx context.Context,
	pick func(current domain.Collection) []domain.Quote,
) ([]domain.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates := pick(s.quotes.Clone())

	added := make([]domain.Quote, 0, len(candidates))
	for _, c := range candidates {
		q, err := domain.NewQuote(c.Text, c.Category)
		if err != nil {
			continue
		}
		added = append(added, q)
	}

	if len(added) == 0 {
		return nil, nil
	}

	next := make(domain.Collection, 0, len(s.quotes)+len(added))
	next = append(next, s.quotes...)
	next = append(next, added...)

	if err := s.write(ctx, next); err != nil {
		return nil, err
	}

	s.quotes = next

	return added, nil
}

// write must be called with mu held.
func (s *QuoteStore) write(ctx context.Context, quotes domain.Collection) error {
	data, err := ExportDocument(quotes)
	if err != nil {
		return err
	}

	if err := s.durable.Set(ctx, ports.KeyQuotes, data); err != nil {
		return fmt.Errorf("persisting quotes: %w", err)
	}

	return nil
}
