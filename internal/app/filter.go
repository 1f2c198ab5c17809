package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jsamuelsen/quote-manager/internal/domain"
	"github.com/jsamuelsen/quote-manager/internal/ports"
)

// AllCategories is the filter label that matches every quote.
const AllCategories = "all"

// CategoryFilter remembers the selected category across restarts.
type CategoryFilter struct {
	durable ports.KeyValueStore
	logger  *slog.Logger
}

// FilterConfig holds optional configuration for the category filter.
type FilterConfig struct {
	Logger *slog.Logger
}

// NewCategoryFilter creates a filter persisting to the durable tier.
func NewCategoryFilter(durable ports.KeyValueStore, cfg *FilterConfig) *CategoryFilter {
	if durable == nil {
		panic("app.NewCategoryFilter: durable store is required")
	}

	logger := slog.Default()
	if cfg != nil && cfg.Logger != nil {
		logger = cfg.Logger
	}

	return &CategoryFilter{durable: durable, logger: logger}
}

// CategoriesOf lists AllCategories followed by the distinct categories in
// first-seen order. Distinctness is case-sensitive.
func CategoriesOf(quotes domain.Collection) []string {
	out := []string{AllCategories}
	seen := map[string]struct{}{AllCategories: {}}

	for _, q := range quotes {
		if _, ok := seen[q.Category]; ok {
			continue
		}
		seen[q.Category] = struct{}{}
		out = append(out, q.Category)
	}

	return out
}

// ActiveSubset returns the quotes matching filter. AllCategories returns
// quotes unchanged; any other label matches categories case-insensitively.
func ActiveSubset(quotes domain.Collection, filter string) domain.Collection {
	if filter == AllCategories {
		return quotes
	}

	out := domain.Collection{}
	for _, q := range quotes {
		if strings.EqualFold(q.Category, filter) {
			out = append(out, q)
		}
	}

	return out
}

// SelectFilter resolves label against the categories of quotes and
// persists the result as the current filter. A blank label selects
// AllCategories; a known category is stored in its first-seen spelling.
// A label matching no category is returned as is but not stored, so the
// stored filter only ever names a category that has been present.
func (f *CategoryFilter) SelectFilter(ctx context.Context, quotes domain.Collection, label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = AllCategories
	}

	selected, known := resolveCategory(quotes, label)
	if !known {
		f.logger.DebugContext(ctx, "unknown category selected, keeping stored filter",
			slog.String("category", label),
		)
		return label, nil
	}

	if err := f.durable.Set(ctx, ports.KeyLastCategoryFilter, []byte(selected)); err != nil {
		return "", fmt.Errorf("persisting category filter: %w", err)
	}

	return selected, nil
}

// resolveCategory returns the option of CategoriesOf(quotes) matching label,
// case-insensitively for categories.
func resolveCategory(quotes domain.Collection, label string) (string, bool) {
	if label == AllCategories {
		return AllCategories, true
	}

	for _, category := range CategoriesOf(quotes)[1:] {
		if strings.EqualFold(category, label) {
			return category, true
		}
	}

	return "", false
}

// CurrentFilter returns the stored label, or AllCategories when nothing is
// stored, the read fails, or no quote in quotes carries that category.
func (f *CategoryFilter) CurrentFilter(ctx context.Context, quotes domain.Collection) string {
	raw, err := f.durable.Get(ctx, ports.KeyLastCategoryFilter)
	if err != nil {
		if !domain.IsNotFound(err) {
			f.logger.WarnContext(ctx, "reading category filter failed", slog.Any("error", err))
		}
		return AllCategories
	}

	label := string(raw)
	if label == AllCategories || len(ActiveSubset(quotes, label)) == 0 {
		return AllCategories
	}

	return label
}
