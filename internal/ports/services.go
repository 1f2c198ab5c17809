// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrNotFound, ErrUnavailable, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/jsamuelsen/quote-manager/internal/domain"
)

// Storage keys shared by the application layer and the storage adapters.
const (
	// KeyQuotes holds the whole quote collection as a JSON array (durable).
	KeyQuotes = "quotes"

	// KeyLastCategoryFilter holds the selected category label (durable).
	KeyLastCategoryFilter = "lastCategoryFilter"

	// KeyLastQuote holds the last displayed quote as a JSON object (volatile).
	KeyLastQuote = "lastQuote"
)

// KeyValueStore is a byte-oriented key-value storage tier.
// The durable tier survives a process restart; the volatile tier lives for
// one session only. Both satisfy the same contract.
//
// Example usage in application layer:
//
//	raw, err := durable.Get(ctx, ports.KeyQuotes)
//	if domain.IsNotFound(err) {
//	    // nothing stored yet
//	}
type KeyValueStore interface {
	// Get returns the value stored under key.
	// Returns domain.ErrNotFound if the key has never been written.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set overwrites the value stored under key. The write is atomic:
	// readers observe either the previous or the new value, never a mix.
	Set(ctx context.Context, key string, value []byte) error
}

// RemoteSource is the best-effort, unreliable remote quote source.
//
// Key considerations:
//   - Handle timeouts via context deadline
//   - Map transport failures to domain.ErrUnavailable
//   - Translate external DTOs to domain quotes without validating them;
//     invalid candidates are skipped by the store
type RemoteSource interface {
	// Fetch returns an unordered batch of candidate quotes.
	Fetch(ctx context.Context) ([]domain.Quote, error)

	// Push transmits a newly created local quote.
	// The response carries nothing the caller depends on.
	Push(ctx context.Context, quote domain.Quote) error
}

// QuoteView is what the display shows in its quote slot:
// either a quote or, when Quote is nil, a placeholder message.
type QuoteView struct {
	Quote   *domain.Quote
	Message string
}

// DisplaySurface renders state on behalf of the core.
// Implementations must not block and must not call back into the core
// from within a render call.
type DisplaySurface interface {
	// RenderQuote shows a single quote or a placeholder message.
	RenderQuote(ctx context.Context, view QuoteView)

	// RenderCategoryOptions populates the category selector.
	RenderCategoryOptions(ctx context.Context, categories []string, selected string)

	// RenderNotification shows a transient message.
	RenderNotification(ctx context.Context, message string)

	// RenderFilteredList shows the quotes matching the label.
	// An empty slice is a valid state, not an error.
	RenderFilteredList(ctx context.Context, quotes []domain.Quote, label string)
}
