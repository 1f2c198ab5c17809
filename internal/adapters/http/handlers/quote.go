package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-manager/internal/adapters/display"
	"github.com/jsamuelsen/quote-manager/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-manager/internal/app"
	"github.com/jsamuelsen/quote-manager/internal/domain"
)

// importFormField is the multipart field carrying an import document.
const importFormField = "file"

// QuoteHandler exposes the quote manager's user actions.
type QuoteHandler struct {
	manager *app.Manager
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(manager *app.Manager) *QuoteHandler {
	if manager == nil {
		panic("NewQuoteHandler: manager is required")
	}

	return &QuoteHandler{manager: manager}
}

// ListQuotes handles GET /api/v1/quotes.
// Without a category query the persisted filter applies. Querying a
// category does not change the persisted filter.
func (h *QuoteHandler) ListQuotes(c *gin.Context) {
	var req dto.ListQuotesRequest
	if err := dto.BindQueryAndValidate(c, &req); err != nil {
		dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))
		return
	}

	ctx := c.Request.Context()

	var quotes domain.Collection
	label := strings.TrimSpace(req.Category)
	if label == "" {
		filtered, current := h.manager.FilteredQuotes(ctx)
		quotes, label = filtered, current
	} else {
		quotes = app.ActiveSubset(h.manager.Quotes(), label)
	}

	offset, err := req.Offset(label)
	if err != nil {
		dto.AbortWithCode(c, dto.ErrorCodeBadRequest, err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.Paginate(dto.NewQuoteResponses(quotes), label, offset, req.GetLimit()))
}

// RandomQuote handles GET /api/v1/quotes/random.
// The pick is rendered on the page and remembered for the session.
func (h *QuoteHandler) RandomQuote(c *gin.Context) {
	q, ok := h.manager.ShowRandomQuote(c.Request.Context())
	if !ok {
		c.JSON(http.StatusOK, dto.RandomQuoteResponse{Message: app.NoQuotesMessage})
		return
	}

	resp := dto.NewQuoteResponse(q)
	c.JSON(http.StatusOK, dto.RandomQuoteResponse{Quote: &resp})
}

// AddQuote handles POST /api/v1/quotes.
func (h *QuoteHandler) AddQuote(c *gin.Context) {
	var req dto.AddQuoteRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.AbortWithCode(c, dto.ErrorCodeBadRequest, "request body must be a JSON object with text and category")
		return
	}

	q, err := h.manager.AddQuote(c.Request.Context(), req.Text, req.Category)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuoteResponse(q))
}

// Categories handles GET /api/v1/categories.
func (h *QuoteHandler) Categories(c *gin.Context) {
	categories, selected := h.manager.Categories(c.Request.Context())

	c.JSON(http.StatusOK, dto.CategoriesResponse{Categories: categories, Selected: selected})
}

// SelectFilter handles PUT /api/v1/filter.
func (h *QuoteHandler) SelectFilter(c *gin.Context) {
	var req dto.FilterRequest
	if err := dto.BindAndValidate(c, &req); err != nil {
		dto.AbortWithCode(c, dto.ErrorCodeBadRequest, "request body must be a JSON object with category")
		return
	}

	ctx := c.Request.Context()

	selected, err := h.manager.ChangeFilter(ctx, req.Category)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	quotes := app.ActiveSubset(h.manager.Quotes(), selected)
	resp := dto.FilterResponse{Filter: selected, Quotes: dto.NewQuoteResponses(quotes)}
	if len(quotes) == 0 {
		resp.Message = display.EmptyListMessage(selected)
	}

	c.JSON(http.StatusOK, resp)
}

// Export handles GET /api/v1/export as a file download.
func (h *QuoteHandler) Export(c *gin.Context) {
	data, err := h.manager.Export(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": app.ExportFileName,
	}))
	c.Data(http.StatusOK, "application/json", data)
}

// Import handles POST /api/v1/import. The document is either the
// multipart field "file" or the raw request body.
func (h *QuoteHandler) Import(c *gin.Context) {
	data, err := readImportDocument(c)
	if err != nil {
		dto.AbortWithCode(c, dto.ErrorCodeBadRequest, err.Error())
		return
	}

	result, err := h.manager.Import(c.Request.Context(), data)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ImportResponse{
		Received: result.Received,
		Added:    result.Added,
		Message:  app.QuotesImportedMessage,
	})
}

func readImportDocument(c *gin.Context) ([]byte, error) {
	mediaType, _, _ := mime.ParseMediaType(c.ContentType())
	if mediaType != "multipart/form-data" {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, errors.New("reading request body failed")
		}
		return data, nil
	}

	header, err := c.FormFile(importFormField)
	if err != nil {
		return nil, errors.New(`multipart upload must carry the document in field "file"`)
	}

	f, err := header.Open()
	if err != nil {
		return nil, errors.New("opening uploaded file failed")
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.New("reading uploaded file failed")
	}

	return data, nil
}

// Sync handles POST /api/v1/sync, running one pull cycle now.
func (h *QuoteHandler) Sync(c *gin.Context) {
	result, err := h.manager.SyncNow(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	resp := dto.SyncResponse{
		Fetched: result.Fetched,
		Added:   dto.NewQuoteResponses(result.Added),
	}
	if len(result.Added) > 0 {
		resp.Message = app.SyncedMessage
	}

	c.JSON(http.StatusOK, resp)
}

// RegisterQuoteRoutes registers the quote manager routes on rg.
func (h *QuoteHandler) RegisterQuoteRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.GET("", h.ListQuotes)
	quotes.POST("", h.AddQuote)
	quotes.GET("/random", h.RandomQuote)

	rg.GET("/categories", h.Categories)
	rg.PUT("/filter", h.SelectFilter)
	rg.GET("/export", h.Export)
	rg.POST("/import", h.Import)
	rg.POST("/sync", h.Sync)
}
