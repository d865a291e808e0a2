package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrafted/internal/config"
	"github.com/cristianadrielbraun/qrafted/internal/design"
	"github.com/cristianadrielbraun/qrafted/internal/export"
	"github.com/cristianadrielbraun/qrafted/internal/render"
)

// Handler holds the shared, read-only dependencies of the HTTP handlers.
type Handler struct {
	cfg      *config.AppConfig
	renderer *render.Renderer
	encoder  *export.Encoder
	palettes design.Palettes
	log      *logrus.Logger
}

// New returns a Handler rendering with r.
func New(cfg *config.AppConfig, r *render.Renderer, palettes design.Palettes, log *logrus.Logger) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		cfg:      cfg,
		renderer: r,
		encoder:  export.New(r),
		palettes: palettes,
		log:      log,
	}
}

// Register mounts every route on r.
func (h *Handler) Register(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/qr", h.QRCodeHandler)
		api.POST("/qr", h.QRCodeJSON)
		api.POST("/qr/batch", h.BatchHandler)
		api.GET("/presets", h.Presets)
		api.POST("/logo", h.UploadLogo)
		api.POST("/content", h.BuildContent)
		api.POST("/htmx/toast", h.GenericToast)
	}
	r.GET("/", h.Home)
	r.GET("/view", h.View)
	r.GET("/sitemap.xml", h.SitemapXML)
}

func (h *Handler) product() string {
	if h.cfg != nil && h.cfg.ProductName != "" {
		return h.cfg.ProductName
	}
	return export.DefaultProduct
}

// baseURL is the configured public origin, or the one the request came in on.
func (h *Handler) baseURL(c *gin.Context) string {
	if h.cfg != nil && h.cfg.PublicURL != "" {
		return h.cfg.PublicURL
	}
	scheme := "https"
	host := c.Request.Host
	if xf := c.Request.Header.Get("X-Forwarded-Proto"); xf != "" {
		scheme = xf
	} else if c.Request.TLS == nil && (host == "localhost:8080" || host == "127.0.0.1:8080") {
		scheme = "http"
	}
	return scheme + "://" + host
}

// SitemapXML serves a minimal sitemap for the site.
func (h *Handler) SitemapXML(c *gin.Context) {
	c.Header("Content-Type", "application/xml; charset=utf-8")
	base := h.baseURL(c)
	xml := "" +
		"<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<urlset xmlns=\"http://www.sitemaps.org/schemas/sitemap/0.9\">\n" +
		"  <url>\n" +
		"    <loc>" + base + "/" + "</loc>\n" +
		"    <changefreq>weekly</changefreq>\n" +
		"    <priority>1.0</priority>\n" +
		"  </url>\n" +
		"</urlset>\n"
	c.String(200, xml)
}
