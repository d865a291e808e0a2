package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/cristianadrielbraun/qrafted/internal/content"
	"github.com/cristianadrielbraun/qrafted/internal/design"
	"github.com/cristianadrielbraun/qrafted/internal/export"
	"github.com/cristianadrielbraun/qrafted/internal/matrix"
	"github.com/cristianadrielbraun/qrafted/internal/render"
)

const (
	defaultMaxSize    = 2000
	defaultMaxBatch   = 50
	requestIDHeader   = "X-QR-Request"
	debugHeader       = "X-QR-Debug"
	maxJSONBodyBytes  = 1 << 20
	maxBatchBodyBytes = 4 << 20
)

// Size accepts a keyword ("preview", "download", ...) or a pixel count,
// as a JSON string or number.
type Size string

func (s *Size) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*s = Size(n.String())
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return fmt.Errorf("size must be a keyword or a number")
	}
	*s = Size(str)
	return nil
}

func (h *Handler) maxSize() int {
	if h.cfg != nil && h.cfg.MaxRenderSize > 0 {
		return h.cfg.MaxRenderSize
	}
	return defaultMaxSize
}

func (h *Handler) maxBatch() int {
	if h.cfg != nil && h.cfg.MaxBatchItems > 0 {
		return h.cfg.MaxBatchItems
	}
	return defaultMaxBatch
}

// parseSize resolves a size keyword or number; empty selects def.
func (h *Handler) parseSize(s, def string) (int, error) {
	if strings.TrimSpace(s) == "" {
		s = def
	}
	return export.ParseSize(s, h.maxSize())
}

// requestID echoes the caller's rid so UIs can discard stale previews.
func requestID(c *gin.Context, rid string) string {
	if rid == "" {
		rid = uuid.NewString()
	}
	c.Header(requestIDHeader, rid)
	return rid
}

// renderStatus maps a render error to an HTTP status.
func renderStatus(err error) int {
	var invalid *design.InvalidConfigError
	var enc *matrix.EncodingError
	var small *render.GridTooSmallError
	switch {
	case errors.As(err, &invalid), errors.As(err, &small):
		return http.StatusBadRequest
	case errors.As(err, &enc):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// QRCodeHandler renders the code described by the query string. content is
// encoded as is; url is normalized to an http(s) URL first.
func (h *Handler) QRCodeHandler(c *gin.Context) {
	rid := requestID(c, c.Query("rid"))

	text := c.Query("content")
	if raw := strings.TrimSpace(c.Query("url")); raw != "" && text == "" {
		normalized, err := content.NormalizeURL(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		text = normalized
	}

	cfg, err := design.FromQuery(c.Request.URL.Query(), design.Default(), h.palettes)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	size, err := h.parseSize(c.Query("size"), "preview")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.serveCode(c, rid, text, cfg, format, size, boolQuery(c.Query("download")))
}

type qrRequest struct {
	Content  string        `json:"content"`
	Design   design.Config `json:"design"`
	Format   string        `json:"format"`
	Size     Size          `json:"size"`
	Download bool          `json:"download"`
	RID      string        `json:"rid"`
}

// QRCodeJSON renders from a JSON body. Missing design fields keep their
// defaults.
func (h *Handler) QRCodeJSON(c *gin.Context) {
	req := qrRequest{Design: design.Default()}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxJSONBodyBytes)
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}
	rid := requestID(c, req.RID)
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	size, err := h.parseSize(string(req.Size), "download")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.serveCode(c, rid, req.Content, clampDesign(req.Design), format, size, req.Download)
}

func (h *Handler) serveCode(c *gin.Context, rid, text string, cfg design.Config, format export.Format, size int, download bool) {
	h.log.WithFields(logrus.Fields{
		"rid":    rid,
		"format": format,
		"size":   size,
		"dots":   cfg.DotStyle,
		"frame":  cfg.FrameStyle,
	}).Info("[QR] request start")

	var buf bytes.Buffer
	if err := h.encoder.Encode(c.Request.Context(), &buf, text, cfg, size, format); err != nil {
		status := renderStatus(err)
		h.log.WithError(err).WithField("rid", rid).Warn("[QR] render failed")
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Header(debugHeader, fmt.Sprintf("format=%s;size=%d;dots=%s;frame=%s;mask=%s",
		format, size, cfg.DotStyle, cfg.FrameStyle, cfg.MaskShape))
	c.Header("Cache-Control", "no-store")
	if download {
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, export.Filename(h.product(), format)))
	}
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

type batchRequest struct {
	Items  []string      `json:"items"`
	Design design.Config `json:"design"`
	Format string        `json:"format"`
	Size   Size          `json:"size"`
}

// BatchHandler renders several contents with one design into a ZIP archive.
func (h *Handler) BatchHandler(c *gin.Context) {
	rid := requestID(c, c.Query("rid"))
	req := batchRequest{Design: design.Default()}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBatchBodyBytes)
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "items must not be empty"})
		return
	}
	if len(req.Items) > h.maxBatch() {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("at most %d items per batch", h.maxBatch())})
		return
	}
	format, err := export.ParseFormat(req.Format)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	size, err := h.parseSize(string(req.Size), "batch")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cfg := clampDesign(req.Design)
	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.log.WithFields(logrus.Fields{"rid": rid, "items": len(req.Items), "format": format, "size": size}).
		Info("[QR] batch start")

	var buf bytes.Buffer
	if err := h.encoder.WriteZip(c.Request.Context(), &buf, req.Items, cfg, size, format, h.product()); err != nil {
		h.log.WithError(err).WithField("rid", rid).Warn("[QR] batch failed")
		c.JSON(renderStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-qr-batch.zip"`, h.product()))
	c.Data(http.StatusOK, "application/zip", buf.Bytes())
}

// clampDesign applies the same logo size clamp as design.FromQuery so JSON
// and query requests accept the same designs.
func clampDesign(cfg design.Config) design.Config {
	cfg.LogoSize = design.ClampLogoSize(cfg.LogoSize)
	return cfg
}

func boolQuery(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}
