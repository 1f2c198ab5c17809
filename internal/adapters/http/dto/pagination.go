package dto

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

// DefaultLimit is the default number of items per page.
const DefaultLimit = 20

// MaxLimit is the maximum allowed items per page.
const MaxLimit = 100

// Cursor errors.
var (
	// ErrInvalidCursor is returned when cursor decoding fails or the cursor
	// was issued for a different category.
	ErrInvalidCursor = errors.New("invalid cursor")

	// ErrNoCursor signals a first-page request.
	ErrNoCursor = errors.New("no cursor provided")
)

// PaginationRequest holds the paging query parameters.
type PaginationRequest struct {
	// Cursor is an opaque string from a previous response's NextCursor.
	Cursor string `form:"cursor"`

	// Limit is the maximum number of items to return (1-100, default 20).
	Limit int `form:"limit" validate:"omitempty,gte=1,lte=100"`
}

// GetLimit returns the limit with defaults applied.
func (p *PaginationRequest) GetLimit() int {
	if p.Limit <= 0 {
		return DefaultLimit
	}

	return min(p.Limit, MaxLimit)
}

// Offset returns the position the page starts at. A cursor issued for a
// different category is rejected.
func (p *PaginationRequest) Offset(category string) (int, error) {
	cursor, err := DecodeCursor(p.Cursor)
	if errors.Is(err, ErrNoCursor) {
		return 0, nil
	}

	if err != nil {
		return 0, err
	}

	if cursor.Category != category || cursor.Offset < 0 {
		return 0, ErrInvalidCursor
	}

	return cursor.Offset, nil
}

// PaginatedResponse is a page of items.
type PaginatedResponse[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"nextCursor,omitempty"`
	HasMore    bool   `json:"hasMore"`
	Total      int    `json:"total"`
}

// Paginate slices one page out of items. Collections are append-only, so an
// offset into the filtered subset stays valid between requests.
func Paginate[T any](items []T, category string, offset, limit int) *PaginatedResponse[T] {
	total := len(items)
	start := min(offset, total)
	end := min(start+limit, total)

	page := make([]T, end-start)
	copy(page, items[start:end])

	resp := &PaginatedResponse[T]{
		Items:   page,
		HasMore: end < total,
		Total:   total,
	}

	if resp.HasMore {
		resp.NextCursor = EncodeCursor(&CursorData{Category: category, Offset: end})
	}

	return resp
}

// CursorData is the decoded form of a pagination cursor.
type CursorData struct {
	// Category is the filter label the cursor was issued for.
	Category string `json:"c"`

	// Offset is the position of the next item in the filtered list.
	Offset int `json:"o"`
}

// EncodeCursor encodes cursor data to a base64 string.
func EncodeCursor(data *CursorData) string {
	if data == nil {
		return ""
	}

	jsonBytes, err := json.Marshal(data)
	if err != nil {
		return ""
	}

	return base64.URLEncoding.EncodeToString(jsonBytes)
}

// DecodeCursor decodes a base64 cursor string to cursor data.
// Returns ErrNoCursor if the encoded string is empty.
func DecodeCursor(encoded string) (*CursorData, error) {
	if encoded == "" {
		return nil, ErrNoCursor
	}

	jsonBytes, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidCursor
	}

	var data CursorData
	if err := json.Unmarshal(jsonBytes, &data); err != nil {
		return nil, ErrInvalidCursor
	}

	return &data, nil
}
