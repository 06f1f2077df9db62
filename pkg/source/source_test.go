package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stackplot/stackplot/pkg/errors"
)

const jsonDoc = `{
  "title": "Revenue",
  "value_axis_title": "$M",
  "categories": [
    {"label": "Q1", "segments": [
      {"name": "ads", "value": 12},
      {"name": "subs", "value": 5}
    ]},
    {"label": "Q2", "segments": [
      {"name": "ads", "value": 9}
    ]}
  ]
}`

const tomlDoc = `title = "Revenue"

[[categories]]
label = "Q1"

[[categories.segments]]
name = "ads"
value = 12.0

[[categories.segments]]
name = "subs"
value = 5.0
`

func TestReadJSON(t *testing.T) {
	c, err := ReadJSON(strings.NewReader(jsonDoc))
	if err != nil {
		t.Fatalf("ReadJSON() error: %v", err)
	}
	if c.Title != "Revenue" || len(c.Categories) != 2 {
		t.Errorf("decoded chart = %+v", c)
	}
	if c.Categories[0].Segments[1].Value != 5 {
		t.Errorf("segment value = %g, want 5", c.Categories[0].Segments[1].Value)
	}
}

func TestReadJSONRejectsUnknownFields(t *testing.T) {
	doc := `{"title": "x", "nope": true, "categories": [{"label": "a", "segments": []}]}`
	_, err := ReadJSON(strings.NewReader(doc))
	if err == nil {
		t.Fatal("unknown field accepted")
	}
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidInput)
	}
}

func TestReadJSONValidates(t *testing.T) {
	doc := `{"categories": [{"label": "", "segments": []}]}`
	_, err := ReadJSON(strings.NewReader(doc))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("structural problems should surface as invalid input, got %v", err)
	}
}

func TestReadTOML(t *testing.T) {
	c, err := ReadTOML(strings.NewReader(tomlDoc))
	if err != nil {
		t.Fatalf("ReadTOML() error: %v", err)
	}
	if c.Title != "Revenue" || len(c.Categories) != 1 {
		t.Errorf("decoded chart = %+v", c)
	}
	if got := c.Categories[0].Total(); got != 17 {
		t.Errorf("category total = %g, want 17", got)
	}
}

func TestReadTOMLRejectsNonFiniteValues(t *testing.T) {
	// TOML has nan and inf literals; they decode cleanly but must fail
	// validation before reaching the layout engine.
	for _, literal := range []string{"nan", "inf", "-inf"} {
		doc := `[[categories]]
label = "Q1"
segments = [{ name = "ads", value = ` + literal + ` }]
`
		_, err := ReadTOML(strings.NewReader(doc))
		if err == nil {
			t.Errorf("value = %s accepted", literal)
			continue
		}
		if !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("value = %s: error code = %s, want %s", literal, errors.GetCode(err), errors.ErrCodeInvalidInput)
		}
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "chart.json")
	if err := os.WriteFile(jsonPath, []byte(jsonDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	tomlPath := filepath.Join(dir, "chart.toml")
	if err := os.WriteFile(tomlPath, []byte(tomlDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{jsonPath, tomlPath} {
		c, err := ImportFile(path)
		if err != nil {
			t.Errorf("ImportFile(%s) error: %v", path, err)
			continue
		}
		if c.Title != "Revenue" {
			t.Errorf("ImportFile(%s) title = %q", path, c.Title)
		}
	}
}

func TestImportFileMissing(t *testing.T) {
	_, err := ImportFile(filepath.Join(t.TempDir(), "nope.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeFileNotFound)
	}
}

func TestImportFileUnsupportedExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.yaml")
	if err := os.WriteFile(path, []byte("title: x"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportFile(path)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("error code = %s, want %s", errors.GetCode(err), errors.ErrCodeUnsupported)
	}
}

func TestSupported(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.json", true},
		{"a.toml", true},
		{"A.JSON", true},
		{"a.yaml", false},
		{"a", false},
	}
	for _, tt := range tests {
		if got := Supported(tt.path); got != tt.want {
			t.Errorf("Supported(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
