package chartjs

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cast"
)

// ErrNotObject is returned when the document is valid JSON but not an object.
var ErrNotObject = errors.New("chart configuration must be a JSON object")

// SyntaxError reports a document that is not valid JSON.
type SyntaxError struct {
	Err error
}

func (e *SyntaxError) Error() string {
	if e == nil || e.Err == nil {
		return "invalid JSON"
	}
	return e.Err.Error()
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Load reads and parses the configuration file at path.
// A missing file is reported with an error matching os.ErrNotExist.
func Load(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a Chart.js configuration document.
// Fields are read best-effort: a field with an unexpected type is treated as absent.
func Parse(data []byte) (*Description, error) {
	var root interface{}
	if err := json.Unmarshal(data, &root); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, &SyntaxError{Err: fmt.Errorf("%w (offset %d)", err, syntaxErr.Offset)}
		}
		return nil, &SyntaxError{Err: err}
	}

	config, ok := root.(map[string]interface{})
	if !ok {
		return nil, ErrNotObject
	}

	desc := &Description{Type: DefaultType}
	if t, ok := config["type"]; ok {
		if s, err := cast.ToStringE(t); err == nil {
			desc.Type = s
		}
	}

	chartData := lookupMap(config, "data")
	desc.Data.Labels = parseLabels(chartData["labels"])
	for _, raw := range toSlice(chartData["datasets"]) {
		ds, err := cast.ToStringMapE(raw)
		if err != nil {
			// keep positional alignment with the input
			desc.Data.Datasets = append(desc.Data.Datasets, Dataset{})
			continue
		}
		desc.Data.Datasets = append(desc.Data.Datasets, parseDataset(ds))
	}

	title := lookupMap(lookupMap(lookupMap(config, "options"), "plugins"), "title")
	desc.Options.Title = joinText(title["text"])

	return desc, nil
}

func parseDataset(m map[string]interface{}) Dataset {
	var ds Dataset

	if v, ok := m["label"]; ok && v != nil {
		if s, err := cast.ToStringE(v); err == nil {
			ds.Label = &s
		}
	}

	values := toSlice(m["data"])
	ds.Data = make([]float64, 0, len(values))
	for _, v := range values {
		ds.Data = append(ds.Data, toValue(v))
	}

	ds.BackgroundColor = parseColors(m["backgroundColor"])
	ds.BorderColor = parseColors(m["borderColor"])

	if v, ok := m["borderWidth"]; ok && v != nil {
		if w, err := cast.ToFloat64E(v); err == nil {
			ds.BorderWidth = &w
		}
	}
	return ds
}

// toValue coerces a data point to a number; points that cannot be read become NaN.
func toValue(v interface{}) float64 {
	if v == nil {
		return math.NaN()
	}
	if point, ok := v.(map[string]interface{}); ok {
		v = point["y"]
		if v == nil {
			return math.NaN()
		}
	}
	if _, isBool := v.(bool); isBool {
		return math.NaN()
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return math.NaN()
	}
	return f
}

func parseLabels(v interface{}) []string {
	raw := toSlice(v)
	labels := make([]string, 0, len(raw))
	for _, item := range raw {
		labels = append(labels, joinText(item))
	}
	return labels
}

func parseColors(v interface{}) []string {
	switch c := v.(type) {
	case string:
		return []string{c}
	case []interface{}:
		colors := make([]string, 0, len(c))
		for _, item := range c {
			if s, ok := item.(string); ok {
				colors = append(colors, s)
			}
		}
		return colors
	}
	return nil
}

// joinText renders a Chart.js text value: a scalar, or an array of lines joined with spaces.
func joinText(v interface{}) string {
	if v == nil {
		return ""
	}
	if lines, ok := v.([]interface{}); ok {
		parts := make([]string, 0, len(lines))
		for _, line := range lines {
			parts = append(parts, joinText(line))
		}
		return strings.Join(parts, " ")
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

func lookupMap(m map[string]interface{}, key string) map[string]interface{} {
	if m == nil {
		return nil
	}
	sub, err := cast.ToStringMapE(m[key])
	if err != nil {
		return nil
	}
	return sub
}

func toSlice(v interface{}) []interface{} {
	if v == nil {
		return nil
	}
	s, err := cast.ToSliceE(v)
	if err != nil {
		return nil
	}
	return s
}
