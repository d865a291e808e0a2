package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrafted/web/components"
)

// GenericToast returns a Toast component rendered as HTML for HTMX swaps.
func (h *Handler) GenericToast(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)

	_ = components.Toast(components.ToastProps{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Variant:     components.ParseVariant(c.PostForm("variant")),
		Duration:    2000,
		Dismissible: c.PostForm("dismissible") == "on",
	}).Render(c.Request.Context(), c.Writer)
}
