// Package app holds the quote manager core: the quote store, category
// filter, random selector, remote sync engine and the import/export codec,
// coordinated by Manager. It depends on ports only; adapters live under
// internal/adapters.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/quote-manager/internal/domain"
	"github.com/jsamuelsen/quote-manager/internal/ports"
)

// Messages shown on the display surface.
const (
	NoQuotesMessage       = "No quotes available."
	QuoteAddedMessage     = "Quote added successfully!"
	MissingFieldsMessage  = "Please enter both quote and category."
	QuotesImportedMessage = "Quotes imported successfully!"
)

// ImportResult describes an accepted import document.
type ImportResult struct {
	// Received is the number of array elements in the document.
	Received int `json:"received"`

	// Added is the number of quotes appended. Elements that were not
	// objects or had an empty field are not counted.
	Added int `json:"added"`
}

// Manager turns user actions into core operations and pushes the
// resulting state to the display surface.
type Manager struct {
	store    *QuoteStore
	filter   *CategoryFilter
	selector *Selector
	sync     *SyncEngine
	display  ports.DisplaySurface
	executor *Executor
	logger   *slog.Logger
}

// ManagerConfig contains the manager's collaborators.
type ManagerConfig struct {
	Store    *QuoteStore
	Filter   *CategoryFilter
	Selector *Selector
	Display  ports.DisplaySurface

	// Sync is optional. Without it added quotes are not pushed and
	// SyncNow fetches nothing.
	Sync *SyncEngine

	Logger *slog.Logger
}

// NewManager creates a manager. It panics if a required collaborator is missing.
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.Store == nil || cfg.Filter == nil || cfg.Selector == nil || cfg.Display == nil {
		panic("app.NewManager: store, filter, selector and display are required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Manager{
		store:    cfg.Store,
		filter:   cfg.Filter,
		selector: cfg.Selector,
		sync:     cfg.Sync,
		display:  cfg.Display,
		executor: NewExecutor(logger),
		logger:   logger,
	}
}

// Init loads persisted state and renders the initial page: category
// options, the filtered list and the last shown quote (or a fresh pick).
func (m *Manager) Init(ctx context.Context) error {
	var (
		quotes  domain.Collection
		last    domain.Quote
		hasLast bool
	)

	// The durable and session tiers are independent reads.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		quotes, err = m.store.Load(gctx)
		return err
	})
	g.Go(func() error {
		last, hasLast = m.selector.LastShown(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("initialising quote manager: %w", err)
	}

	renderCollection(ctx, m.display, m.filter, quotes, "")

	if hasLast {
		m.display.RenderQuote(ctx, ports.QuoteView{Quote: &last})
	} else {
		m.ShowRandomQuote(ctx)
	}

	m.logger.InfoContext(ctx, "quote manager ready", slog.Int("quotes", len(quotes)))

	return nil
}

// ShowRandomQuote picks and renders a quote from the active subset.
func (m *Manager) ShowRandomQuote(ctx context.Context) (domain.Quote, bool) {
	q, ok, err := m.selector.PickRandom(ctx)
	if err != nil {
		m.logger.WarnContext(ctx, "recording last shown quote failed", slog.Any("error", err))
	}

	if !ok {
		m.display.RenderQuote(ctx, ports.QuoteView{Message: NoQuotesMessage})
		return domain.Quote{}, false
	}

	m.display.RenderQuote(ctx, ports.QuoteView{Quote: &q})

	return q, true
}

// AddQuoteInput is the user's raw entry, before trimming.
type AddQuoteInput struct {
	Text     string
	Category string
}

// AddQuote validates and stores a user-entered quote, then pushes it to
// the remote in the background. Invalid input returns a ValidationError
// and leaves the collection unchanged.
func (m *Manager) AddQuote(ctx context.Context, text, category string) (domain.Quote, error) {
	q, err := Execute(ctx, m.executor, Operation[AddQuoteInput, domain.Quote, domain.Quote, domain.Quote]{
		Name: "add_quote",
		Validate: func(_ context.Context, in AddQuoteInput) error {
			return domain.Quote{Text: in.Text, Category: in.Category}.Validate()
		},
		Perform: func(_ context.Context, in AddQuoteInput) (domain.Quote, error) {
			return domain.NewQuote(in.Text, in.Category)
		},
		Verify: func(_ context.Context, _ AddQuoteInput, q domain.Quote) (domain.Quote, error) {
			return q, q.Validate()
		},
		Archive: func(ctx context.Context, _ AddQuoteInput, q domain.Quote) error {
			_, err := m.store.Append(ctx, q.Text, q.Category)
			return err
		},
		Respond: func(_ context.Context, _ AddQuoteInput, q domain.Quote) (domain.Quote, error) {
			return q, nil
		},
	}, AddQuoteInput{Text: text, Category: category})
	if err != nil {
		if domain.IsValidation(err) {
			m.display.RenderNotification(ctx, MissingFieldsMessage)
		}
		return domain.Quote{}, err
	}

	renderCollection(ctx, m.display, m.filter, m.store.All(), QuoteAddedMessage)

	if m.sync != nil {
		m.sync.Push(ctx, q)
	}

	return q, nil
}

// ChangeFilter persists the selected category and renders its quotes.
// An unknown category renders an empty list and is not remembered.
func (m *Manager) ChangeFilter(ctx context.Context, label string) (string, error) {
	quotes := m.store.All()

	selected, err := m.filter.SelectFilter(ctx, quotes, label)
	if err != nil {
		return "", err
	}

	m.display.RenderFilteredList(ctx, ActiveSubset(quotes, selected), selected)

	return selected, nil
}

// Quotes returns the whole collection in insertion order.
func (m *Manager) Quotes() domain.Collection {
	return m.store.All()
}

// FilteredQuotes returns the active filter and its quotes.
func (m *Manager) FilteredQuotes(ctx context.Context) (domain.Collection, string) {
	quotes := m.store.All()
	current := m.filter.CurrentFilter(ctx, quotes)

	return ActiveSubset(quotes, current), current
}

// Categories returns the category options and the selected one.
func (m *Manager) Categories(ctx context.Context) ([]string, string) {
	quotes := m.store.All()

	return CategoriesOf(quotes), m.filter.CurrentFilter(ctx, quotes)
}

// Export serialises the collection for download as ExportFileName.
func (m *Manager) Export(_ context.Context) ([]byte, error) {
	return ExportDocument(m.store.All())
}

type parsedImport struct {
	quotes   []domain.Quote
	received int
}

// Import appends every valid quote of an exported document.
// A document that is not a JSON array returns a FormatError and adds nothing.
func (m *Manager) Import(ctx context.Context, data []byte) (ImportResult, error) {
	var added []domain.Quote

	result, err := Execute(ctx, m.executor, Operation[[]byte, parsedImport, parsedImport, ImportResult]{
		Name: "import_quotes",
		Perform: func(_ context.Context, data []byte) (parsedImport, error) {
			quotes, received, err := decodeDocument(data)
			if err != nil {
				return parsedImport{}, err
			}
			return parsedImport{quotes: quotes, received: received}, nil
		},
		Verify: func(_ context.Context, _ []byte, p parsedImport) (parsedImport, error) {
			return p, nil
		},
		Archive: func(ctx context.Context, _ []byte, p parsedImport) error {
			var err error
			added, err = m.store.AppendAll(ctx, p.quotes)
			return err
		},
		Respond: func(_ context.Context, _ []byte, p parsedImport) (ImportResult, error) {
			return ImportResult{Received: p.received, Added: len(added)}, nil
		},
	}, data)
	if err != nil {
		return ImportResult{}, err
	}

	renderCollection(ctx, m.display, m.filter, m.store.All(), QuotesImportedMessage)

	return result, nil
}

// SyncNow runs a pull cycle on demand.
func (m *Manager) SyncNow(ctx context.Context) (SyncResult, error) {
	if m.sync == nil {
		m.logger.DebugContext(ctx, "sync requested without a sync engine")
		return SyncResult{}, nil
	}

	return m.sync.SyncNow(ctx)
}

// renderCollection refreshes category options and the filtered list,
// showing notice first when it is not empty.
func renderCollection(
	ctx context.Context,
	display ports.DisplaySurface,
	filter *CategoryFilter,
	quotes domain.Collection,
	notice string,
) {
	current := filter.CurrentFilter(ctx, quotes)

	display.RenderCategoryOptions(ctx, CategoriesOf(quotes), current)
	if notice != "" {
		display.RenderNotification(ctx, notice)
	}
	display.RenderFilteredList(ctx, ActiveSubset(quotes, current), current)
}
