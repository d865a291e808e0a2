package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cristianadrielbraun/qrafted/internal/render"
)

const maxLogoUpload = 2 << 20

var logoExtensions = map[string]string{
	".png":  ".png",
	".jpg":  ".jpg",
	".jpeg": ".jpg",
	".gif":  ".gif",
	".webp": ".webp",
	".svg":  ".svg",
}

func (h *Handler) uploadDir() string {
	if h.cfg != nil && h.cfg.UploadDir != "" {
		return h.cfg.UploadDir
	}
	return "uploads"
}

// UploadLogo stores a multipart "logo" file and returns the reference to
// pass as logoUrl.
func (h *Handler) UploadLogo(c *gin.Context) {
	fh, err := c.FormFile("logo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo file is required"})
		return
	}
	if fh.Size > maxLogoUpload {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "logo must be at most 2 MB"})
		return
	}
	ext, ok := logoExtensions[strings.ToLower(filepath.Ext(fh.Filename))]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "logo must be PNG, JPEG, GIF, WebP or SVG"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read upload"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxLogoUpload+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read upload"})
		return
	}
	img, err := render.DecodeLogo(data)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "not a supported image: " + err.Error()})
		return
	}

	dir := h.uploadDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		h.log.WithError(err).Error("create upload dir")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot store logo"})
		return
	}
	name := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		h.log.WithError(err).Error("write logo")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot store logo"})
		return
	}

	b := img.Bounds()
	h.log.WithField("file", name).WithField("bytes", len(data)).Info("[QR] logo uploaded")
	c.JSON(http.StatusCreated, gin.H{
		"ref":    render.UploadScheme + name,
		"width":  b.Dx(),
		"height": b.Dy(),
		"svg":    ext == ".svg",
	})
}
