package content

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// ViewPath is the route serving decoded payloads.
const ViewPath = "/view"

// Link is one entry of a multi-link page.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Href returns the link target, defaulting to https when no scheme is set.
func (l Link) Href() string {
	if strings.HasPrefix(l.URL, "http") {
		return l.URL
	}
	return "https://" + l.URL
}

// Payload is the JSON document carried in the d parameter of a view URL.
type Payload struct {
	Type        Kind   `json:"type"`
	Name        string `json:"name"`
	Links       []Link `json:"links,omitempty"`
	TargetDate  string `json:"targetDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// Encode returns the standard base64 encoding of the payload JSON.
func (p Payload) Encode() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// ViewURL returns <host>/view?d=<payload>.
func ViewURL(host string, p Payload) (string, error) {
	d, err := p.Encode()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(host, "/") + ViewPath + "?d=" + url.QueryEscape(d), nil
}

var ErrInvalidPayload = errors.New("invalid view payload")

// DecodePayload reverses Encode. Spaces are read back as '+' because an
// unescaped payload loses them to form decoding; URL-safe and unpadded
// alphabets are accepted too.
func DecodePayload(d string) (Payload, error) {
	var p Payload
	d = strings.ReplaceAll(strings.TrimSpace(d), " ", "+")
	if d == "" {
		return p, fmt.Errorf("%w: empty", ErrInvalidPayload)
	}
	var raw []byte
	var err error
	for _, enc := range []*base64.Encoding{
		base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding,
	} {
		if raw, err = enc.DecodeString(d); err == nil {
			break
		}
	}
	if err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := json.Unmarshal(raw, &p); err != nil {
		return p, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if p.Type != MultiLink && p.Type != Countdown {
		return p, fmt.Errorf("%w: type %q", ErrInvalidPayload, p.Type)
	}
	return p, nil
}

var targetLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTarget parses a countdown date. Layouts without a zone are read in
// loc, or time.Local when loc is nil.
func ParseTarget(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	for _, layout := range targetLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid target date %q", s)
}

// Remaining is a countdown split into whole units.
type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int
}

// Done reports whether the target has been reached.
func (r Remaining) Done() bool {
	return r == Remaining{}
}

// Until returns the time left from now to target, or zero once it passed.
func Until(now, target time.Time) Remaining {
	d := target.Sub(now)
	if d <= 0 {
		return Remaining{}
	}
	s := int(d / time.Second)
	return Remaining{
		Days:    s / 86400,
		Hours:   s % 86400 / 3600,
		Minutes: s % 3600 / 60,
		Seconds: s % 60,
	}
}
