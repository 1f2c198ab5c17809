package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-manager/internal/domain"
)

func TestExportDocument_Format(t *testing.T) {
	data, err := ExportDocument(domain.Collection{q("Be kind.", "Life")})
	require.NoError(t, err)

	assert.Equal(t, "[\n  {\n    \"text\": \"Be kind.\",\n    \"category\": \"Life\"\n  }\n]", string(data))
}

func TestExportDocument_Empty(t *testing.T) {
	data, err := ExportDocument(nil)
	require.NoError(t, err)

	assert.Equal(t, "[]", string(data))
}

func TestImportDocument(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		expected   []domain.Quote
		wantFormat bool
	}{
		{
			name:     "valid array",
			input:    `[{"text":"a","category":"b"},{"text":"c","category":"d"}]`,
			expected: []domain.Quote{q("a", "b"), q("c", "d")},
		},
		{
			name:     "fields are trimmed",
			input:    `[{"text":"  a ","category":" b"}]`,
			expected: []domain.Quote{q("a", "b")},
		},
		{
			name:     "invalid elements skipped",
			input:    `[{"text":"a","category":"b"}, 42, "x", null, {"text":""}, {"text":"c"}, {"text":1,"category":"d"}]`,
			expected: []domain.Quote{q("a", "b")},
		},
		{
			name:     "extra fields ignored",
			input:    `[{"text":"a","category":"b","author":"anon"}]`,
			expected: []domain.Quote{q("a", "b")},
		},
		{
			name:     "empty array",
			input:    `[]`,
			expected: []domain.Quote{},
		},
		{name: "object is not an array", input: `{}`, wantFormat: true},
		{name: "not json", input: `quotes`, wantFormat: true},
		{name: "null document", input: `null`, wantFormat: true},
		{name: "truncated", input: `[{"text":"a"`, wantFormat: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ImportDocument([]byte(tt.input))

			if tt.wantFormat {
				require.Error(t, err)
				assert.True(t, domain.IsFormat(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	original := domain.Collection{
		q("The only limit to our realization of tomorrow is our doubts of today.", "Motivation"),
		q("Life is what happens when you're busy making other plans.", "Life"),
		q("Life is what happens when you're busy making other plans.", "Life"),
		q(`Quotes with "quotes" and unicode — ok`, "Misc"),
	}

	data, err := ExportDocument(original)
	require.NoError(t, err)

	imported, err := ImportDocument(data)
	require.NoError(t, err)

	assert.ElementsMatch(t, []domain.Quote(original), imported)
}
