// Package domain contains core business entities and rules.
package domain

import (
	"strings"
)

// Quote is a short text with the category it belongs to.
// Quotes carry no identifier; two quotes are the same when both fields
// match exactly. Quotes are never edited once created.
type Quote struct {
	// Text is the quotation itself, trimmed and non-empty.
	Text string

	// Category groups quotes for filtering, trimmed and non-empty.
	Category string
}

// NewQuote trims text and category and validates the result.
// Returns a ValidationError naming the first empty field.
func NewQuote(text, category string) (Quote, error) {
	q := Quote{
		Text:     strings.TrimSpace(text),
		Category: strings.TrimSpace(category),
	}

	if err := q.Validate(); err != nil {
		return Quote{}, err
	}

	return q, nil
}

// Validate reports whether both fields are non-empty after trimming.
func (q Quote) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewValidationError("text", "must not be empty")
	}

	if strings.TrimSpace(q.Category) == "" {
		return NewValidationError("category", "must not be empty")
	}

	return nil
}

// String formats the quote the way it is displayed.
func (q Quote) String() string {
	return `"` + q.Text + `" — ` + q.Category
}

// Collection is an ordered sequence of quotes. Order is insertion order;
// duplicates may coexist.
type Collection []Quote

// Clone returns an independent copy of the collection.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}

	out := make(Collection, len(c))
	copy(out, c)

	return out
}
