package components

import (
	"net/url"
	"time"

	"github.com/a-h/templ"

	"github.com/cristianadrielbraun/qrafted/internal/content"
)

func pageTitle(p content.Payload) string {
	if p.Name == "" {
		return "Qrafted Preview"
	}
	return p.Name
}

func presetHref(p PresetLink) templ.SafeURL {
	return templ.URL("/api/qr?size=download&preset=" + url.QueryEscape(p.Slug))
}

type countdownUnit struct {
	Label string
	Value int
}

// countdownView is the server-side snapshot a countdown page starts from.
// The inline script keeps it ticking.
type countdownView struct {
	Valid        bool
	TargetMillis int64
	Units        []countdownUnit
	Date         string
	Description  string
}

func newCountdown(p content.Payload, now time.Time) countdownView {
	target, err := content.ParseTarget(p.TargetDate, now.Location())
	if err != nil {
		return countdownView{}
	}
	r := content.Until(now, target)
	return countdownView{
		Valid:        true,
		TargetMillis: target.UnixMilli(),
		Units: []countdownUnit{
			{"Days", r.Days},
			{"Hours", r.Hours},
			{"Min", r.Minutes},
			{"Sec", r.Seconds},
		},
		Date:        target.Format("Jan 2, 2006"),
		Description: p.Description,
	}
}
