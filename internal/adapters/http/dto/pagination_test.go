package dto

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLimit(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, DefaultLimit},
		{-5, DefaultLimit},
		{1, 1},
		{50, 50},
		{MaxLimit, MaxLimit},
		{MaxLimit + 1, MaxLimit},
	}

	for _, tt := range tests {
		p := PaginationRequest{Limit: tt.limit}
		assert.Equal(t, tt.want, p.GetLimit(), "limit %d", tt.limit)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	encoded := EncodeCursor(&CursorData{Category: "Life", Offset: 20})
	require.NotEmpty(t, encoded)

	decoded, err := DecodeCursor(encoded)

	require.NoError(t, err)
	assert.Equal(t, &CursorData{Category: "Life", Offset: 20}, decoded)
	assert.Empty(t, EncodeCursor(nil))
}

func TestDecodeCursor_Errors(t *testing.T) {
	_, err := DecodeCursor("")
	require.ErrorIs(t, err, ErrNoCursor)

	_, err = DecodeCursor("***")
	require.ErrorIs(t, err, ErrInvalidCursor)

	_, err = DecodeCursor(base64.URLEncoding.EncodeToString([]byte("not json")))
	require.ErrorIs(t, err, ErrInvalidCursor)
}

func TestPaginationRequest_Offset(t *testing.T) {
	valid := EncodeCursor(&CursorData{Category: "all", Offset: 4})

	tests := []struct {
		name     string
		cursor   string
		category string
		want     int
		wantErr  error
	}{
		{name: "first page", cursor: "", category: "all", want: 0},
		{name: "matching category", cursor: valid, category: "all", want: 4},
		{name: "other category", cursor: valid, category: "Life", wantErr: ErrInvalidCursor},
		{name: "garbage", cursor: "***", category: "all", wantErr: ErrInvalidCursor},
		{
			name:     "negative offset",
			cursor:   EncodeCursor(&CursorData{Category: "all", Offset: -1}),
			category: "all",
			wantErr:  ErrInvalidCursor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := PaginationRequest{Cursor: tt.cursor}

			got, err := p.Offset(tt.category)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPaginate(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	first := Paginate(items, "all", 0, 2)
	assert.Equal(t, []string{"a", "b"}, first.Items)
	assert.True(t, first.HasMore)
	assert.Equal(t, 5, first.Total)

	cursor, err := DecodeCursor(first.NextCursor)
	require.NoError(t, err)
	assert.Equal(t, &CursorData{Category: "all", Offset: 2}, cursor)

	last := Paginate(items, "all", 4, 2)
	assert.Equal(t, []string{"e"}, last.Items)
	assert.False(t, last.HasMore)
	assert.Empty(t, last.NextCursor)
}

func TestPaginate_PastEnd(t *testing.T) {
	page := Paginate([]string{"a"}, "all", 10, 5)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasMore)
	assert.Equal(t, 1, page.Total)
}

func TestPaginate_CopiesItems(t *testing.T) {
	items := []string{"a", "b"}

	page := Paginate(items, "all", 0, 2)
	page.Items[0] = "changed"

	assert.Equal(t, "a", items[0])
}
