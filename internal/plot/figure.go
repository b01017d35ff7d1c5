package plot

// In-memory figure: a list of traces plus layout attributes
// Built once by the adapter, then handed to the rasterizer

// TraceKind is the renderable series type.
type TraceKind string

const (
	KindBar     TraceKind = "bar"
	KindScatter TraceKind = "scatter"
	KindPie     TraceKind = "pie"
)

// Mode selects how a scatter trace is drawn.
type Mode string

const (
	ModeLinesMarkers Mode = "lines+markers"
	ModeMarkers      Mode = "markers"
)

// TemplateWhite is the white-background layout template.
const TemplateWhite = "plotly_white"

type Line struct {
	Color string
	Width float64
}

// Marker styles bars, scatter points and the markers of a line.
// Colors holds one color, or one per point (cycled).
type Marker struct {
	Colors []string
	Size   float64
	Line   Line
}

// Trace is one series. Cartesian kinds use X/Y, pie traces use Labels/Values.
type Trace struct {
	Kind   TraceKind
	Name   string
	Mode   Mode
	X      []string
	Y      []float64
	Labels []string
	Values []float64
	Marker Marker
	Line   Line
}

// Len returns the number of points (or slices) the trace carries.
func (t Trace) Len() int {
	if t.Kind == KindPie {
		return len(t.Values)
	}
	return len(t.Y)
}

type Axis struct {
	Title string
}

type Font struct {
	Size float64
}

type Layout struct {
	Title      string
	XAxis      Axis
	YAxis      Axis
	Template   string
	Width      int
	Height     int
	Font       Font
	ShowLegend bool
}

// Figure is the visualization handed to the rasterizer.
type Figure struct {
	Traces []Trace
	Layout Layout
}

func NewFigure() *Figure {
	return &Figure{}
}

func (f *Figure) AddTrace(t Trace) {
	f.Traces = append(f.Traces, t)
}

// UpdateLayout replaces the layout attributes.
func (f *Figure) UpdateLayout(l Layout) {
	f.Layout = l
}

// Cartesian reports whether the figure needs axes (any non-pie trace).
func (f *Figure) Cartesian() bool {
	for _, t := range f.Traces {
		if t.Kind != KindPie {
			return true
		}
	}
	return false
}
