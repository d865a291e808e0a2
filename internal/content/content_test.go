package content

import (
	"errors"
	"net/url"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name string
		form Form
		want string
	}{
		{"url", Form{Type: URL, URL: " example.com/a "}, "https://example.com/a"},
		{"url keeps http", Form{Type: URL, URL: "http://example.com"}, "http://example.com"},
		{"empty url", Form{Type: URL}, ""},
		{"text", Form{Type: Text, Text: "hello world"}, "hello world"},
		{"wifi", Form{Type: WiFi, SSID: "Home", Password: "secret", Encryption: "WPA"}, "WIFI:T:WPA;S:Home;P:secret;;"},
		{"wifi escapes", Form{Type: WiFi, SSID: `a;b`, Password: `p:"1"`}, `WIFI:T:WPA;S:a\;b;P:p\:\"1\";;`},
		{"email", Form{Type: Email, To: "a@b.c", Subject: "Hi there", Body: "x&y=1+2"}, "mailto:a@b.c?subject=Hi%20there&body=x%26y%3D1%2B2"},
		{"sms", Form{Type: SMS, Phone: "+15550100", Message: "on my way"}, "sms:+15550100?body=on%20my%20way"},
		{"call", Form{Type: Call, Phone: "+15550100"}, "tel:+15550100"},
		{"social", Form{Type: Social, Platform: "instagram", Handle: "qrafted"}, "https://instagram.com/qrafted"},
		{"social at", Form{Type: Social, Platform: "tiktok", Handle: "@qrafted"}, "https://tiktok.com/@qrafted"},
		{"whatsapp", Form{Type: Social, Platform: "WhatsApp", Handle: "15550100"}, "https://wa.me/15550100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.form, "https://qrafted.app")
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if got != tt.want {
				t.Fatalf("Build = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name string
		form Form
	}{
		{"bad scheme", Form{Type: URL, URL: "ftp://example.com"}},
		{"unknown platform", Form{Type: Social, Platform: "myspace", Handle: "x"}},
		{"bad countdown", Form{Type: Countdown, TargetDate: "next friday"}},
		{"unknown kind", Form{Type: "vcard"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Build(tt.form, ""); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
	_, err := Build(Form{Type: "vcard"}, "")
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("err = %v, want ErrUnknownKind", err)
	}
}

func TestMultiLinkRoundTrip(t *testing.T) {
	form := Form{
		Type: MultiLink,
		Name: "My Links",
		Links: []Link{
			{Title: "Portfolio", URL: "https://example.com"},
			{Title: "Blog", URL: "blog.example.com"},
		},
	}
	s, err := Build(form, "https://qrafted.app/")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.HasPrefix(s, "https://qrafted.app/view?d=") {
		t.Fatalf("unexpected view url %q", s)
	}
	u, err := url.Parse(s)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	p, err := DecodePayload(u.Query().Get("d"))
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if p.Type != MultiLink || p.Name != "My Links" || len(p.Links) != 2 {
		t.Fatalf("decoded %+v", p)
	}
	if got := p.Links[1].Href(); got != "https://blog.example.com" {
		t.Fatalf("Href = %q", got)
	}
	if got := p.Links[0].Href(); got != "https://example.com" {
		t.Fatalf("Href = %q", got)
	}
}

func TestDecodePayloadTolerance(t *testing.T) {
	p := Payload{Type: Countdown, Name: "Launch ~~>", TargetDate: "2030-01-02T03:04"}
	d, err := p.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	// Unescaped in a query string, '+' arrives as a space.
	got, err := DecodePayload(strings.ReplaceAll(d, "+", " "))
	if err != nil {
		t.Fatalf("DecodePayload: %v", err)
	}
	if !reflect.DeepEqual(got, p) {
		t.Fatalf("got %+v, want %+v", got, p)
	}
	if _, err := DecodePayload(strings.TrimRight(d, "=")); err != nil {
		t.Fatalf("unpadded: %v", err)
	}

	for _, bad := range []string{"", "!!!", "bm90IGpzb24=", "eyJ0eXBlIjoidXJsIn0="} {
		if _, err := DecodePayload(bad); !errors.Is(err, ErrInvalidPayload) {
			t.Fatalf("DecodePayload(%q) err = %v", bad, err)
		}
	}
}

func TestParseTarget(t *testing.T) {
	utc := time.UTC
	want := time.Date(2030, 5, 6, 7, 8, 0, 0, utc)
	for _, s := range []string{"2030-05-06T07:08", "2030-05-06T07:08:00", "2030-05-06T07:08:00Z"} {
		got, err := ParseTarget(s, utc)
		if err != nil {
			t.Fatalf("ParseTarget(%q): %v", s, err)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseTarget(%q) = %v", s, got)
		}
	}
	if _, err := ParseTarget("06/05/2030", utc); err == nil {
		t.Fatalf("expected error")
	}
}

func TestUntil(t *testing.T) {
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	target := now.Add(2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second + 900*time.Millisecond)
	got := Until(now, target)
	want := Remaining{Days: 2, Hours: 3, Minutes: 4, Seconds: 5}
	if got != want {
		t.Fatalf("Until = %+v, want %+v", got, want)
	}
	if r := Until(target, now); !r.Done() {
		t.Fatalf("past target = %+v, want done", r)
	}
}
