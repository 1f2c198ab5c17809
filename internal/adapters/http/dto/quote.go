package dto

import (
	"time"

	"github.com/jsamuelsen/quote-manager/internal/domain"
)

// QuoteResponse is a quote as served by the API.
type QuoteResponse struct {
	Text     string `json:"text"`
	Category string `json:"category"`

	// Display is the quote formatted the way the page shows it.
	Display string `json:"display"`
}

// NewQuoteResponse converts a domain quote.
func NewQuoteResponse(q domain.Quote) QuoteResponse {
	return QuoteResponse{
		Text:     q.Text,
		Category: q.Category,
		Display:  q.String(),
	}
}

// NewQuoteResponses converts quotes, never returning nil.
func NewQuoteResponses(quotes []domain.Quote) []QuoteResponse {
	out := make([]QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, NewQuoteResponse(q))
	}

	return out
}

// AddQuoteRequest is the add-quote form. Blank fields are rejected by the
// core, which also raises the on-page prompt.
type AddQuoteRequest struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

// ListQuotesRequest selects a page of quotes. An empty Category means the
// persisted filter.
type ListQuotesRequest struct {
	PaginationRequest

	Category string `form:"category"`
}

// RandomQuoteResponse carries the picked quote, or the placeholder message
// when the active subset is empty.
type RandomQuoteResponse struct {
	Quote   *QuoteResponse `json:"quote"`
	Message string         `json:"message,omitempty"`
}

// CategoriesResponse lists category options with the selected one.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
	Selected   string   `json:"selected"`
}

// FilterRequest selects a category. Blank selects "all".
type FilterRequest struct {
	Category string `json:"category"`
}

// FilterResponse is the selected filter with its quotes.
type FilterResponse struct {
	Filter  string          `json:"filter"`
	Quotes  []QuoteResponse `json:"quotes"`
	Message string          `json:"message,omitempty"`
}

// ImportResponse reports how much of an import document was accepted.
type ImportResponse struct {
	Received int    `json:"received"`
	Added    int    `json:"added"`
	Message  string `json:"message"`
}

// SyncResponse reports a manual pull cycle.
type SyncResponse struct {
	Fetched int             `json:"fetched"`
	Added   []QuoteResponse `json:"added"`
	Message string          `json:"message,omitempty"`
}

// NotificationResponse is one transient message.
type NotificationResponse struct {
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// DisplayResponse mirrors the rendered page.
type DisplayResponse struct {
	Quote         string                 `json:"quote"`
	Categories    []string               `json:"categories"`
	Selected      string                 `json:"selected"`
	Filter        string                 `json:"filter"`
	List          []QuoteResponse        `json:"list"`
	ListMessage   string                 `json:"listMessage,omitempty"`
	Notifications []NotificationResponse `json:"notifications"`
}
