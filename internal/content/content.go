// Package content builds the strings that get encoded into a QR symbol:
// plain URLs and text, Wi-Fi credentials, mail and phone actions, social
// profile links, and the self-contained multi-link and countdown pages
// served by /view.
package content

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Kind names a content type.
type Kind string

const (
	URL       Kind = "url"
	Text      Kind = "text"
	WiFi      Kind = "wifi"
	Email     Kind = "email"
	SMS       Kind = "sms"
	Call      Kind = "call"
	Social    Kind = "social"
	MultiLink Kind = "multilink"
	Countdown Kind = "countdown"
)

// MaxURLLength caps normalized URLs.
const MaxURLLength = 4096

var ErrUnknownKind = errors.New("unknown content type")

// Form carries the user input for every content type. Only the fields of
// the selected Type are read.
type Form struct {
	Type Kind `json:"type"`

	URL  string `json:"url,omitempty"`
	Text string `json:"text,omitempty"`

	SSID       string `json:"ssid,omitempty"`
	Password   string `json:"password,omitempty"`
	Encryption string `json:"encryption,omitempty"`

	To      string `json:"to,omitempty"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`

	Phone   string `json:"phone,omitempty"`
	Message string `json:"message,omitempty"`

	Platform string `json:"platform,omitempty"`
	Handle   string `json:"handle,omitempty"`

	Name        string `json:"name,omitempty"`
	Links       []Link `json:"links,omitempty"`
	TargetDate  string `json:"targetDate,omitempty"`
	Description string `json:"description,omitempty"`
}

// Build turns a form into the payload string. host is the public origin
// used for multi-link and countdown pages, e.g. "https://qrafted.app".
func Build(f Form, host string) (string, error) {
	switch f.Type {
	case URL, "":
		if strings.TrimSpace(f.URL) == "" {
			return "", nil
		}
		return NormalizeURL(f.URL)
	case Text:
		return f.Text, nil
	case WiFi:
		return WiFiString(f.SSID, f.Password, f.Encryption), nil
	case Email:
		return EmailString(f.To, f.Subject, f.Body), nil
	case SMS:
		return SMSString(f.Phone, f.Message), nil
	case Call:
		return CallString(f.Phone), nil
	case Social:
		return SocialString(f.Platform, f.Handle)
	case MultiLink:
		return ViewURL(host, Payload{Type: MultiLink, Name: f.Name, Links: f.Links})
	case Countdown:
		if _, err := ParseTarget(f.TargetDate, nil); err != nil {
			return "", err
		}
		return ViewURL(host, Payload{
			Type:        Countdown,
			Name:        f.Name,
			TargetDate:  f.TargetDate,
			Description: f.Description,
		})
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, f.Type)
}

// NormalizeURL trims s, defaults a missing scheme to https and accepts
// only http(s) URLs with a host.
func NormalizeURL(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", fmt.Errorf("URL is required")
	}
	if !strings.Contains(v, "://") {
		v = "https://" + v
	}
	u, err := url.ParseRequestURI(v)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("only http and https URLs are supported")
	}
	if u.Host == "" {
		return "", fmt.Errorf("URL must include a valid host")
	}
	if len(v) > MaxURLLength {
		return "", fmt.Errorf("URL is too long")
	}
	return u.String(), nil
}

var wifiEscaper = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`, `"`, `\"`, `:`, `\:`)

// WiFiString builds a WIFI: network configuration. An empty encryption
// defaults to WPA; "nopass" is passed through for open networks.
func WiFiString(ssid, password, encryption string) string {
	if encryption == "" {
		encryption = "WPA"
	}
	return fmt.Sprintf("WIFI:T:%s;S:%s;P:%s;;",
		encryption, wifiEscaper.Replace(ssid), wifiEscaper.Replace(password))
}

// EmailString builds a mailto: link with escaped subject and body.
func EmailString(to, subject, body string) string {
	return "mailto:" + to + "?subject=" + escapeComponent(subject) + "&body=" + escapeComponent(body)
}

func SMSString(phone, message string) string {
	return "sms:" + phone + "?body=" + escapeComponent(message)
}

func CallString(phone string) string {
	return "tel:" + phone
}

// escapeComponent percent-encodes s for a query value, with spaces as %20
// so mail and messaging apps don't show literal plus signs.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Platform is a social network with its profile URL prefix.
type Platform struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Prefix string `json:"prefix"`
}

var platforms = []Platform{
	{ID: "facebook", Name: "Facebook", Prefix: "https://facebook.com/"},
	{ID: "instagram", Name: "Instagram", Prefix: "https://instagram.com/"},
	{ID: "twitter", Name: "Twitter/X", Prefix: "https://x.com/"},
	{ID: "linkedin", Name: "LinkedIn", Prefix: "https://linkedin.com/in/"},
	{ID: "tiktok", Name: "TikTok", Prefix: "https://tiktok.com/@"},
	{ID: "youtube", Name: "YouTube", Prefix: "https://youtube.com/@"},
	{ID: "spotify", Name: "Spotify", Prefix: "https://open.spotify.com/user/"},
	{ID: "whatsapp", Name: "WhatsApp", Prefix: "https://wa.me/"},
	{ID: "telegram", Name: "Telegram", Prefix: "https://t.me/"},
}

// Platforms returns a copy of the supported social platforms.
func Platforms() []Platform {
	return append([]Platform(nil), platforms...)
}

// SocialString joins the platform prefix and the handle. A leading "@" on
// the handle is dropped for platforms whose prefix already ends in one.
func SocialString(platform, handle string) (string, error) {
	for _, p := range platforms {
		if p.ID != strings.ToLower(platform) {
			continue
		}
		h := strings.TrimSpace(handle)
		if strings.HasSuffix(p.Prefix, "@") {
			h = strings.TrimPrefix(h, "@")
		}
		return p.Prefix + h, nil
	}
	return "", fmt.Errorf("unknown social platform %q", platform)
}
