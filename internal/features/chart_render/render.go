package chart_render

// Render pipeline: read the Chart.js file, convert it, rasterize it to PNG
// Failures are sorted into not-found, malformed-input and render-failure

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"chart-render/internal/chartjs"
	"chart-render/internal/infra/fs"
	logging "chart-render/internal/infra/log"
	"chart-render/internal/plot"
	"chart-render/internal/plot/raster"

	"go.uber.org/zap"
)

var (
	ErrNotFound       = errors.New("configuration file not found")
	ErrMalformedInput = errors.New("invalid JSON in configuration file")
	ErrRenderFailed   = errors.New("chart rendering failed")
)

// Error carries the failure kind (one of the Err* values), the path involved and the cause.
type Error struct {
	Kind error
	Path string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrNotFound:
		return fmt.Sprintf("Error: Configuration file not found: %s", e.Path)
	case ErrMalformedInput:
		return fmt.Sprintf("Error: Invalid JSON in configuration file: %v", e.Err)
	default:
		return fmt.Sprintf("Error rendering chart: %v", e.Err)
	}
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

type Renderer struct {
	raster *raster.Renderer
	stdout io.Writer
	stderr io.Writer
}

// NewRenderer builds the pipeline. Result lines go to stdout, failures to stderr.
func NewRenderer(r *raster.Renderer, stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Renderer{raster: r, stdout: stdout, stderr: stderr}
}

// Render exports the chart and reports whether it succeeded.
func (r *Renderer) Render(inputPath, outputPath string) bool {
	_, err := r.Export(inputPath, outputPath)
	return err == nil
}

// Export runs RenderFile and prints the outcome line.
func (r *Renderer) Export(inputPath, outputPath string) (*plot.Figure, error) {
	fig, err := r.RenderFile(inputPath, outputPath)
	if err != nil {
		fmt.Fprintln(r.stderr, err.Error())
		return nil, err
	}
	fmt.Fprintf(r.stdout, "Successfully rendered chart to: %s\n", outputPath)
	return fig, nil
}

// RenderFile writes the PNG for inputPath to outputPath and returns the rendered figure.
// Errors are *Error values matching ErrNotFound, ErrMalformedInput or ErrRenderFailed.
func (r *Renderer) RenderFile(inputPath, outputPath string) (*plot.Figure, error) {
	start := time.Now()

	if err := fs.EnsureParentDir(outputPath); err != nil {
		return nil, r.fail(&Error{Kind: ErrRenderFailed, Path: outputPath, Err: err})
	}

	desc, err := chartjs.Load(inputPath)
	if err != nil {
		var syntaxErr *chartjs.SyntaxError
		switch {
		case errors.Is(err, os.ErrNotExist):
			return nil, r.fail(&Error{Kind: ErrNotFound, Path: inputPath, Err: err})
		case errors.As(err, &syntaxErr):
			return nil, r.fail(&Error{Kind: ErrMalformedInput, Path: inputPath, Err: err})
		default:
			return nil, r.fail(&Error{Kind: ErrRenderFailed, Path: inputPath, Err: err})
		}
	}

	fig := Convert(desc)
	logging.LogDebug("Chart converted",
		zap.String("type", desc.Type),
		zap.Int("traces", len(fig.Traces)),
		zap.Int("labels", len(desc.Data.Labels)))

	err = fs.WriteAtomic(outputPath, func(w io.Writer) error {
		return r.raster.Encode(fig, w)
	})
	if err != nil {
		return nil, r.fail(&Error{Kind: ErrRenderFailed, Path: outputPath, Err: err})
	}

	size, err := fs.CheckNonEmpty(outputPath)
	if err != nil {
		return nil, r.fail(&Error{Kind: ErrRenderFailed, Path: outputPath, Err: err})
	}

	logging.LogInfo("Chart rendered",
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Int64("fileSize", size),
		zap.Int("tracesCount", len(fig.Traces)),
		zap.Int64("duration_ms", time.Since(start).Milliseconds()))

	return fig, nil
}

func (r *Renderer) fail(e *Error) error {
	logging.LogInfo("Chart render failed",
		zap.String("kind", e.Kind.Error()),
		zap.String("path", e.Path),
		zap.Error(e.Err))
	return e
}
