package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cristianadrielbraun/qrafted/internal/content"
	"github.com/cristianadrielbraun/qrafted/web/components"
)

// BuildContent turns a content form into the string to encode.
func (h *Handler) BuildContent(c *gin.Context) {
	var form content.Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}
	s, err := content.Build(form, h.baseURL(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"type": form.Type, "content": s})
}

// View renders a multi-link or countdown page from its d parameter.
func (h *Handler) View(c *gin.Context) {
	p, err := content.DecodePayload(c.Query("d"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := components.ViewPage(p, time.Now()).Render(c.Request.Context(), c.Writer); err != nil {
		h.log.WithError(err).Warn("view page render failed")
	}
}

// Presets lists the color palettes.
func (h *Handler) Presets(c *gin.Context) {
	out := make([]gin.H, 0, len(h.palettes))
	for _, p := range h.palettes {
		out = append(out, gin.H{"name": p.Name, "slug": p.Slug(), "fg": p.Fg, "bg": p.Bg, "label": p.Label})
	}
	c.JSON(http.StatusOK, gin.H{"presets": out, "platforms": content.Platforms()})
}

// Home serves the landing page.
func (h *Handler) Home(c *gin.Context) {
	links := make([]components.PresetLink, 0, len(h.palettes))
	for _, p := range h.palettes {
		links = append(links, components.PresetLink{Name: p.Name, Slug: p.Slug(), Fg: p.Fg.Hex(), Bg: p.Bg.Hex()})
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := components.HomePage(h.product(), links).Render(c.Request.Context(), c.Writer); err != nil {
		c.String(http.StatusInternalServerError, err.Error())
	}
}
