package app

import (
	"encoding/json"
	"fmt"

	"github.com/jsamuelsen/quote-manager/internal/domain"
)

// ExportFileName is the download name of an exported collection.
const ExportFileName = "quotes.json"

// quoteDocument is the on-disk and on-wire shape of one quote.
// Field order is fixed: text, then category.
type quoteDocument struct {
	Text     string `json:"text"`
	Category string `json:"category"`
}

func toDocument(q domain.Quote) quoteDocument {
	return quoteDocument{Text: q.Text, Category: q.Category}
}

// ExportDocument serialises the collection as a JSON array of
// {"text","category"} objects indented with two spaces.
func ExportDocument(quotes domain.Collection) ([]byte, error) {
	docs := make([]quoteDocument, 0, len(quotes))
	for _, q := range quotes {
		docs = append(docs, toDocument(q))
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding quotes: %w", err)
	}

	return data, nil
}

// ImportDocument parses an exported collection.
// A document that is not JSON or not a top-level array is a FormatError.
// Elements that are not objects or carry an empty field are skipped.
func ImportDocument(data []byte) ([]domain.Quote, error) {
	quotes, _, err := decodeDocument(data)
	return quotes, err
}

// decodeDocument returns the valid quotes and the number of array elements seen.
func decodeDocument(data []byte) ([]domain.Quote, int, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return nil, 0, domain.NewFormatError("quote document", "expected a JSON array of quotes", err)
	}

	if elements == nil {
		// Literal null.
		return nil, 0, domain.NewFormatError("quote document", "expected a JSON array of quotes", nil)
	}

	quotes := make([]domain.Quote, 0, len(elements))
	for _, raw := range elements {
		q, ok := decodeQuote(raw)
		if !ok {
			continue
		}
		quotes = append(quotes, q)
	}

	return quotes, len(elements), nil
}

func decodeQuote(raw json.RawMessage) (domain.Quote, bool) {
	var doc quoteDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Quote{}, false
	}

	q, err := domain.NewQuote(doc.Text, doc.Category)
	if err != nil {
		return domain.Quote{}, false
	}

	return q, true
}

// encodeQuote is used for the volatile last-shown entry.
func encodeQuote(q domain.Quote) ([]byte, error) {
	return json.Marshal(toDocument(q))
}
