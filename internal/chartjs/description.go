package chartjs

// Chart.js configuration document model
// Only the fields the renderer understands are kept; everything else is ignored

// Chart kinds understood by the adapter.
const (
	TypeBar     = "bar"
	TypeLine    = "line"
	TypeScatter = "scatter"
	TypePie     = "pie"
)

// DefaultType is used when the document has no "type" field.
const DefaultType = TypeBar

// Description is a parsed Chart.js configuration.
type Description struct {
	Type    string
	Data    Data
	Options Options
}

// Data holds the category labels and the datasets aligned with them.
type Data struct {
	Labels   []string
	Datasets []Dataset
}

// Dataset is one series of values with optional styling.
// Pointer fields are nil when the key is absent (or had an unusable type).
type Dataset struct {
	Label           *string
	Data            []float64
	BackgroundColor []string
	BorderColor     []string
	BorderWidth     *float64
}

// Options keeps the display settings read from "options".
type Options struct {
	// Title is options.plugins.title.text, empty when absent.
	Title string
}

// LabelOr returns the dataset label or fallback when the key is absent.
func (d Dataset) LabelOr(fallback string) string {
	if d.Label == nil {
		return fallback
	}
	return *d.Label
}

// BorderWidthOr returns the border width or fallback when absent.
func (d Dataset) BorderWidthOr(fallback float64) float64 {
	if d.BorderWidth == nil {
		return fallback
	}
	return *d.BorderWidth
}

// BackgroundColorOr returns the background colors or a single fallback color.
func (d Dataset) BackgroundColorOr(fallback string) []string {
	if len(d.BackgroundColor) == 0 {
		return []string{fallback}
	}
	return d.BackgroundColor
}

// BorderColorOr returns the border colors or a single fallback color.
func (d Dataset) BorderColorOr(fallback string) []string {
	if len(d.BorderColor) == 0 {
		return []string{fallback}
	}
	return d.BorderColor
}
