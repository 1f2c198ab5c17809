package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-manager/internal/adapters/display"
	"github.com/jsamuelsen/quote-manager/internal/adapters/http/dto"
)

// DisplayHandler serves the page state the core has rendered.
type DisplayHandler struct {
	page *display.Page
}

// NewDisplayHandler creates a display handler over page.
func NewDisplayHandler(page *display.Page) *DisplayHandler {
	if page == nil {
		panic("NewDisplayHandler: page is required")
	}

	return &DisplayHandler{page: page}
}

// Display handles GET /api/v1/display.
func (h *DisplayHandler) Display(c *gin.Context) {
	snap := h.page.Snapshot()

	notifications := make([]dto.NotificationResponse, 0, len(snap.Notifications))
	for _, n := range snap.Notifications {
		notifications = append(notifications, dto.NotificationResponse{Message: n.Message, At: n.At})
	}

	categories := snap.Categories
	if categories == nil {
		categories = []string{}
	}

	c.JSON(http.StatusOK, dto.DisplayResponse{
		Quote:         snap.Quote,
		Categories:    categories,
		Selected:      snap.Selected,
		Filter:        snap.Filter,
		List:          dto.NewQuoteResponses(snap.List),
		ListMessage:   snap.ListMessage,
		Notifications: notifications,
	})
}

// RegisterDisplayRoutes registers the display route on rg.
func (h *DisplayHandler) RegisterDisplayRoutes(rg *gin.RouterGroup) {
	rg.GET("/display", h.Display)
}
