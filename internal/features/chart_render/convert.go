package chart_render

import (
	"chart-render/internal/chartjs"
	logging "chart-render/internal/infra/log"
	"chart-render/internal/plot"

	"go.uber.org/zap"
)

const (
	defaultFill      = "rgba(54, 162, 235, 0.5)"
	defaultLineColor = "rgba(54, 162, 235, 1)"
	defaultLabel     = "Data"

	barBorderWidth     = 1.0
	lineBorderWidth    = 2.0
	scatterBorderWidth = 1.0
	scatterMarkerSize  = 10.0

	canvasWidth  = 1200
	canvasHeight = 800
	baseFontSize = 14.0
)

// Convert maps a Chart.js description onto a figure, one trace per dataset.
// An unknown chart type yields a figure without traces.
func Convert(desc *chartjs.Description) *plot.Figure {
	fig := plot.NewFigure()
	if desc == nil {
		desc = &chartjs.Description{Type: chartjs.DefaultType}
	}
	labels := desc.Data.Labels

	for _, ds := range desc.Data.Datasets {
		name := ds.LabelOr(defaultLabel)

		switch desc.Type {
		case chartjs.TypeBar:
			fig.AddTrace(plot.Trace{
				Kind: plot.KindBar,
				Name: name,
				X:    labels,
				Y:    ds.Data,
				Marker: plot.Marker{
					Colors: ds.BackgroundColorOr(defaultFill),
					Line: plot.Line{
						Color: ds.BorderColorOr(defaultLineColor)[0],
						Width: ds.BorderWidthOr(barBorderWidth),
					},
				},
			})
		case chartjs.TypeLine:
			fig.AddTrace(plot.Trace{
				Kind: plot.KindScatter,
				Mode: plot.ModeLinesMarkers,
				Name: name,
				X:    labels,
				Y:    ds.Data,
				Line: plot.Line{
					Color: ds.BorderColorOr(defaultLineColor)[0],
					Width: ds.BorderWidthOr(lineBorderWidth),
				},
				Marker: plot.Marker{
					Colors: ds.BackgroundColorOr(defaultFill),
				},
			})
		case chartjs.TypeScatter:
			fig.AddTrace(plot.Trace{
				Kind: plot.KindScatter,
				Mode: plot.ModeMarkers,
				Name: name,
				X:    labels,
				Y:    ds.Data,
				Marker: plot.Marker{
					Colors: ds.BackgroundColorOr(defaultFill),
					Size:   scatterMarkerSize,
					Line: plot.Line{
						Color: ds.BorderColorOr(defaultLineColor)[0],
						Width: ds.BorderWidthOr(scatterBorderWidth),
					},
				},
			})
		case chartjs.TypePie:
			fig.AddTrace(plot.Trace{
				Kind:   plot.KindPie,
				Name:   name,
				Labels: labels,
				Values: ds.Data,
			})
		}
	}

	if !knownType(desc.Type) && len(desc.Data.Datasets) > 0 {
		logging.LogWarn("Unsupported chart type, rendering an empty chart",
			zap.String("type", desc.Type),
			zap.Int("datasets", len(desc.Data.Datasets)))
	}

	xTitle := ""
	if len(labels) > 0 {
		xTitle = labels[0]
	}
	yTitle := ""
	if len(desc.Data.Datasets) > 0 {
		yTitle = desc.Data.Datasets[0].LabelOr("")
	}

	fig.UpdateLayout(plot.Layout{
		Title:      desc.Options.Title,
		XAxis:      plot.Axis{Title: xTitle},
		YAxis:      plot.Axis{Title: yTitle},
		Template:   plot.TemplateWhite,
		Width:      canvasWidth,
		Height:     canvasHeight,
		Font:       plot.Font{Size: baseFontSize},
		ShowLegend: true,
	})

	return fig
}

func knownType(t string) bool {
	switch t {
	case chartjs.TypeBar, chartjs.TypeLine, chartjs.TypeScatter, chartjs.TypePie:
		return true
	}
	return false
}
