package chartjs

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FullDocument(t *testing.T) {
	desc, err := Parse([]byte(`{
		"type": "line",
		"data": {
			"labels": ["Jan", "Feb", 2023, ["Multi", "line"]],
			"datasets": [{
				"label": "Revenue",
				"data": [1, 2.5, "3", null],
				"backgroundColor": "rgba(255, 0, 0, 0.5)",
				"borderColor": ["red", "blue"],
				"borderWidth": 3
			}]
		},
		"options": {"plugins": {"title": {"display": true, "text": "Quarterly"}}}
	}`))
	require.NoError(t, err)

	assert.Equal(t, TypeLine, desc.Type)
	assert.Equal(t, []string{"Jan", "Feb", "2023", "Multi line"}, desc.Data.Labels)
	assert.Equal(t, "Quarterly", desc.Options.Title)

	require.Len(t, desc.Data.Datasets, 1)
	ds := desc.Data.Datasets[0]
	assert.Equal(t, "Revenue", ds.LabelOr("Data"))
	require.Len(t, ds.Data, 4)
	assert.Equal(t, []float64{1, 2.5, 3}, ds.Data[:3])
	assert.True(t, math.IsNaN(ds.Data[3]))
	assert.Equal(t, []string{"rgba(255, 0, 0, 0.5)"}, ds.BackgroundColor)
	assert.Equal(t, []string{"red", "blue"}, ds.BorderColor)
	assert.Equal(t, 3.0, ds.BorderWidthOr(1))
}

func TestParse_Defaults(t *testing.T) {
	desc, err := Parse([]byte(`{"data": {"datasets": [{"data": [4]}]}}`))
	require.NoError(t, err)

	assert.Equal(t, TypeBar, desc.Type)
	assert.Empty(t, desc.Data.Labels)
	assert.Empty(t, desc.Options.Title)

	require.Len(t, desc.Data.Datasets, 1)
	ds := desc.Data.Datasets[0]
	assert.Nil(t, ds.Label)
	assert.Equal(t, "Data", ds.LabelOr("Data"))
	assert.Equal(t, 2.0, ds.BorderWidthOr(2))
	assert.Equal(t, []string{"#fff"}, ds.BackgroundColorOr("#fff"))
	assert.Equal(t, []string{"#000"}, ds.BorderColorOr("#000"))
}

func TestParse_EmptyObject(t *testing.T) {
	desc, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, TypeBar, desc.Type)
	assert.Empty(t, desc.Data.Datasets)
}

func TestParse_WrongTypesAreIgnored(t *testing.T) {
	desc, err := Parse([]byte(`{
		"data": {"labels": "not-a-list", "datasets": [5, {"label": {"x": 1}, "data": {"a": 1}, "borderWidth": "wide"}]},
		"options": {"plugins": "nope"}
	}`))
	require.NoError(t, err)

	assert.Empty(t, desc.Data.Labels)
	assert.Empty(t, desc.Options.Title)
	require.Len(t, desc.Data.Datasets, 2)
	assert.Empty(t, desc.Data.Datasets[0].Data)
	assert.Nil(t, desc.Data.Datasets[1].Label)
	assert.Empty(t, desc.Data.Datasets[1].Data)
	assert.Nil(t, desc.Data.Datasets[1].BorderWidth)
}

func TestParse_PointObjects(t *testing.T) {
	desc, err := Parse([]byte(`{"type": "scatter", "data": {"datasets": [{"data": [{"x": 1, "y": 7}, {"x": 2}, true]}]}}`))
	require.NoError(t, err)

	values := desc.Data.Datasets[0].Data
	require.Len(t, values, 3)
	assert.Equal(t, 7.0, values[0])
	assert.True(t, math.IsNaN(values[1]))
	assert.True(t, math.IsNaN(values[2]))
}

func TestParse_TitleLines(t *testing.T) {
	desc, err := Parse([]byte(`{"options": {"plugins": {"title": {"text": ["Sales", "2024"]}}}}`))
	require.NoError(t, err)
	assert.Equal(t, "Sales 2024", desc.Options.Title)
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse([]byte(`{not valid json`))
	require.Error(t, err)

	var syntaxErr *SyntaxError
	require.True(t, errors.As(err, &syntaxErr))
	assert.Contains(t, err.Error(), "invalid character")
}

func TestParse_NonFiniteLiteralsAreInvalid(t *testing.T) {
	for _, doc := range []string{
		`{"data": {"datasets": [{"data": [NaN]}]}}`,
		`{"data": {"datasets": [{"data": [Infinity, -Infinity]}]}}`,
	} {
		_, err := Parse([]byte(doc))
		var syntaxErr *SyntaxError
		assert.True(t, errors.As(err, &syntaxErr), doc)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	_, err := Parse(nil)
	var syntaxErr *SyntaxError
	assert.True(t, errors.As(err, &syntaxErr))
}

func TestParse_NotObject(t *testing.T) {
	_, err := Parse([]byte(`[1, 2, 3]`))
	assert.ErrorIs(t, err, ErrNotObject)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(dir, "chart.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type": "pie"}`), 0644))
	desc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, TypePie, desc.Type)
}
