package components

// Variant selects the toast color scheme.
type Variant string

const (
	VariantSuccess Variant = "success"
	VariantError   Variant = "error"
	VariantWarning Variant = "warning"
	VariantInfo    Variant = "info"
)

// ParseVariant maps form values to a variant; unknown values are success.
func ParseVariant(s string) Variant {
	switch s {
	case "error", "destructive":
		return VariantError
	case "warning":
		return VariantWarning
	case "info":
		return VariantInfo
	}
	return VariantSuccess
}

type ToastProps struct {
	Title       string
	Description string
	Variant     Variant
	Duration    int // milliseconds, 0 keeps the toast until dismissed
	Dismissible bool
	Class       string
}

// PresetLink is one palette swatch on the home page.
type PresetLink struct {
	Name string
	Slug string
	Fg   string
	Bg   string
}
