package acl

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-manager/internal/domain"
)

func TestDecodeResponse(t *testing.T) {
	body := io.NopCloser(strings.NewReader(`[{"text":"Stay positive","category":"Motivation","extra":1}]`))

	batch, err := DecodeResponse[[]remoteQuote](body)

	require.NoError(t, err)
	assert.Equal(t, []remoteQuote{{Text: "Stay positive", Category: "Motivation"}}, *batch)
}

func TestDecodeResponse_Errors(t *testing.T) {
	_, err := DecodeResponse[[]remoteQuote](nil)
	require.Error(t, err)

	_, err = DecodeResponse[[]remoteQuote](io.NopCloser(strings.NewReader(`{"quotes":[]}`)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestTranslateSlice_KeepsOrderAndBlanks(t *testing.T) {
	in := []remoteQuote{
		{Text: "b", Category: "Life"},
		{Text: "  ", Category: ""},
		{Text: "a", Category: "Life"},
	}

	got := TranslateSlice(in, toDomain)

	assert.Equal(t, []domain.Quote{
		{Text: "b", Category: "Life"},
		{Text: "  ", Category: ""},
		{Text: "a", Category: "Life"},
	}, got)
	assert.Empty(t, TranslateSlice(nil, toDomain))
}
