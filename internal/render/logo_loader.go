package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	_ "golang.org/x/image/webp"
)

// UploadScheme prefixes references to files in the upload directory.
const UploadScheme = "upload:"

const (
	defaultMaxLogoBytes = 5 << 20
	svgRasterSide       = 512
)

// Loader resolves a logo reference to a decoded image.
type Loader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// AssetLoadError reports a logo that could not be fetched or decoded. The
// renderer logs it and continues without the logo.
type AssetLoadError struct {
	Ref string
	Err error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("load logo %s: %v", shortRef(e.Ref), e.Err)
}

func (e *AssetLoadError) Unwrap() error { return e.Err }

func shortRef(ref string) string {
	if len(ref) > 48 {
		return ref[:48] + "..."
	}
	return ref
}

// RefLoader understands data URLs, http(s) URLs and upload: references.
type RefLoader struct {
	Client    *http.Client
	UploadDir string
	MaxBytes  int64
}

// ErrBlockedAddress is returned when a logo URL resolves to a loopback,
// private, link-local or otherwise non-public address.
var ErrBlockedAddress = errors.New("logo host resolves to a non-public address")

// NewRefLoader returns a loader whose HTTP fetches give up after timeout and
// only connect to public addresses. Redirects are checked on every dial.
func NewRefLoader(uploadDir string, timeout time.Duration) *RefLoader {
	dialer := &net.Dialer{Timeout: timeout, Control: publicOnly}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	return &RefLoader{
		Client:    &http.Client{Timeout: timeout, Transport: transport},
		UploadDir: uploadDir,
		MaxBytes:  defaultMaxLogoBytes,
	}
}

// publicOnly runs after DNS resolution, so it sees the address actually dialed.
func publicOnly(_, address string, _ syscall.RawConn) error {
	ap, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	if !isPublic(ap.Addr()) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, ap.Addr())
	}
	return nil
}

func isPublic(a netip.Addr) bool {
	a = a.Unmap()
	return a.IsValid() &&
		!a.IsLoopback() &&
		!a.IsPrivate() &&
		!a.IsLinkLocalUnicast() &&
		!a.IsLinkLocalMulticast() &&
		!a.IsInterfaceLocalMulticast() &&
		!a.IsMulticast() &&
		!a.IsUnspecified() &&
		!sharedAddressSpace.Contains(a)
}

// RFC 6598 carrier-grade NAT range, not covered by IsPrivate.
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

func (l *RefLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	data, err := l.read(ctx, strings.TrimSpace(ref))
	if err != nil {
		return nil, &AssetLoadError{Ref: ref, Err: err}
	}
	img, err := DecodeLogo(data)
	if err != nil {
		return nil, &AssetLoadError{Ref: ref, Err: err}
	}
	return img, nil
}

func (l *RefLoader) maxBytes() int64 {
	if l.MaxBytes > 0 {
		return l.MaxBytes
	}
	return defaultMaxLogoBytes
}

func (l *RefLoader) read(ctx context.Context, ref string) ([]byte, error) {
	switch {
	case ref == "":
		return nil, errors.New("empty reference")
	case strings.HasPrefix(ref, "data:"):
		return decodeDataURL(ref)
	case strings.HasPrefix(ref, UploadScheme):
		name := filepath.Base(strings.TrimPrefix(ref, UploadScheme))
		if name == "." || name == string(filepath.Separator) {
			return nil, errors.New("empty upload name")
		}
		f, err := os.Open(filepath.Join(l.UploadDir, name))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return l.limitedRead(f)
	}

	u, err := url.Parse(ref)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.New("unsupported reference")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch: status %d", resp.StatusCode)
	}
	return l.limitedRead(resp.Body)
}

func (l *RefLoader) limitedRead(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes()+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.maxBytes() {
		return nil, fmt.Errorf("larger than %d bytes", l.maxBytes())
	}
	return data, nil
}

// decodeDataURL supports base64 and percent-encoded payloads.
func decodeDataURL(ref string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok {
		return nil, errors.New("malformed data URL")
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return base64.RawStdEncoding.DecodeString(payload)
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	return []byte(s), err
}

// DecodeLogo decodes PNG, JPEG, GIF, WebP or SVG bytes. SVG is rasterized
// with its aspect ratio kept, longest side svgRasterSide.
func DecodeLogo(data []byte) (image.Image, error) {
	if looksLikeSVG(data) {
		return rasterizeSVG(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

func looksLikeSVG(data []byte) bool {
	head := data
	if len(head) > 1024 {
		head = head[:1024]
	}
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}

func rasterizeSVG(data []byte) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode svg: %w", err)
	}
	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		vw, vh = svgRasterSide, svgRasterSide
	}
	scale := svgRasterSide / math.Max(vw, vh)
	w, h := int(math.Round(vw*scale)), int(math.Round(vh*scale))
	icon.SetTarget(0, 0, float64(w), float64(h))
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, rgba, rgba.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return rgba, nil
}

// CachedLoader memoizes decoded logos by reference.
type CachedLoader struct {
	next  Loader
	cache *lru.Cache[string, image.Image]
}

func NewCachedLoader(next Loader, size int) (*CachedLoader, error) {
	if size <= 0 {
		size = 64
	}
	cache, err := lru.New[string, image.Image](size)
	if err != nil {
		return nil, err
	}
	return &CachedLoader{next: next, cache: cache}, nil
}

// Load returns a cached image or loads and caches it. Failures are not cached.
func (c *CachedLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	if img, ok := c.cache.Get(ref); ok {
		return img, nil
	}
	img, err := c.next.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	c.cache.Add(ref, img)
	return img, nil
}

// Len reports the number of cached logos.
func (c *CachedLoader) Len() int { return c.cache.Len() }
