package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quote-manager/internal/domain"
	"github.com/jsamuelsen/quote-manager/internal/mocks"
	"github.com/jsamuelsen/quote-manager/internal/ports"
)

func TestCategoriesOf(t *testing.T) {
	tests := []struct {
		name     string
		quotes   domain.Collection
		expected []string
	}{
		{name: "empty", quotes: nil, expected: []string{"all"}},
		{name: "seed", quotes: SeedQuotes(), expected: []string{"all", "Motivation", "Life", "Inspiration"}},
		{
			name:     "first seen order, case sensitive",
			quotes:   domain.Collection{q("a", "Life"), q("b", "life"), q("c", "Life"), q("d", "Art")},
			expected: []string{"all", "Life", "life", "Art"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategoriesOf(tt.quotes))
		})
	}
}

func TestActiveSubset(t *testing.T) {
	quotes := domain.Collection{q("a", "Life"), q("b", "LIFE"), q("c", "Art")}

	t.Run("all returns input unchanged", func(t *testing.T) {
		assert.Equal(t, quotes, ActiveSubset(quotes, AllCategories))
	})

	t.Run("case insensitive match", func(t *testing.T) {
		assert.Equal(t, domain.Collection{q("a", "Life"), q("b", "LIFE")}, ActiveSubset(quotes, "life"))
	})

	t.Run("unknown category is empty", func(t *testing.T) {
		got := ActiveSubset(quotes, "Humor")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestCategoryFilter_SelectAndCurrent(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)
	quotes := h.store.All()

	assert.Equal(t, AllCategories, h.filter.CurrentFilter(ctx, quotes))

	selected, err := h.filter.SelectFilter(ctx, quotes, " Life ")
	require.NoError(t, err)
	assert.Equal(t, "Life", selected)
	assert.Equal(t, "Life", h.filter.CurrentFilter(ctx, quotes))

	raw, err := h.durable.Get(ctx, ports.KeyLastCategoryFilter)
	require.NoError(t, err)
	assert.Equal(t, "Life", string(raw))
}

func TestCategoryFilter_BlankSelectsAll(t *testing.T) {
	h := newHarness(t)

	selected, err := h.filter.SelectFilter(context.Background(), h.store.All(), "   ")

	require.NoError(t, err)
	assert.Equal(t, AllCategories, selected)
}

func TestCategoryFilter_StaleCategoryDegradesToAll(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.filter.SelectFilter(ctx, h.store.All(), "Life")
	require.NoError(t, err)

	assert.Equal(t, AllCategories, h.filter.CurrentFilter(ctx, domain.Collection{q("a", "Art")}))
}

func TestCategoryFilter_UnknownCategoryNotStored(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	_, err := h.filter.SelectFilter(ctx, h.store.All(), "Humor")
	require.NoError(t, err)
	_, err = h.durable.Get(ctx, ports.KeyLastCategoryFilter)
	assert.True(t, domain.IsNotFound(err))

	_, err = h.filter.SelectFilter(ctx, h.store.All(), "Life")
	require.NoError(t, err)

	selected, err := h.filter.SelectFilter(ctx, h.store.All(), "Humor")
	require.NoError(t, err)
	assert.Equal(t, "Humor", selected)

	raw, err := h.durable.Get(ctx, ports.KeyLastCategoryFilter)
	require.NoError(t, err)
	assert.Equal(t, "Life", string(raw))
	assert.Equal(t, "Life", h.filter.CurrentFilter(ctx, h.store.All()))
}

func TestCategoryFilter_DifferentCaseStoresKnownSpelling(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t)

	selected, err := h.filter.SelectFilter(ctx, h.store.All(), "LIFE")
	require.NoError(t, err)
	assert.Equal(t, "Life", selected)

	raw, err := h.durable.Get(ctx, ports.KeyLastCategoryFilter)
	require.NoError(t, err)
	assert.Equal(t, "Life", string(raw))
	assert.Contains(t, CategoriesOf(h.store.All()), h.filter.CurrentFilter(ctx, h.store.All()))
}

func TestCategoryFilter_ReadFailureDegradesToAll(t *testing.T) {
	kv := mocks.NewMockKeyValueStore(t)
	kv.EXPECT().Get(mock.Anything, ports.KeyLastCategoryFilter).Return(nil, errors.New("boom"))

	f := NewCategoryFilter(kv, &FilterConfig{Logger: discardLogger()})

	assert.Equal(t, AllCategories, f.CurrentFilter(context.Background(), SeedQuotes()))
}

func TestCategoryFilter_SelectFailure(t *testing.T) {
	kv := mocks.NewMockKeyValueStore(t)
	kv.EXPECT().Set(mock.Anything, ports.KeyLastCategoryFilter, []byte("Life")).Return(errors.New("boom"))

	f := NewCategoryFilter(kv, nil)
	_, err := f.SelectFilter(context.Background(), SeedQuotes(), "Life")

	require.Error(t, err)
}
