package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{"svg"}},
		{"png", []string{"png"}},
		{"svg,json", []string{"svg", "json"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if len(got) != len(tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.in, i, got[i], tt.want[i])
			}
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name   string
		output string
		input  string
		format string
		multi  bool
		want   string
	}{
		{"derived from input", "", "charts/revenue.json", "svg", false, "charts/revenue.svg"},
		{"explicit output", "out.svg", "revenue.json", "svg", false, "out.svg"},
		{"explicit output other name", "plot.x", "revenue.json", "svg", false, "plot.x"},
		{"multi strips known extension", "out.svg", "revenue.json", "png", true, "out.png"},
		{"multi keeps unknown extension", "out.final", "revenue.json", "png", true, "out.final.png"},
		{"stdin input", "", "-", "svg", false, "chart.svg"},
		{"toml input", "", "mix.toml", "json", false, "mix.json"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.output, tt.input, tt.format, tt.multi); got != tt.want {
				t.Errorf("outputPath(%q, %q, %q, %v) = %q, want %q",
					tt.output, tt.input, tt.format, tt.multi, got, tt.want)
			}
		})
	}
}

func TestChartFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.json", "a.toml", "notes.txt", "c.yaml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.json"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := chartFiles(dir)
	if err != nil {
		t.Fatalf("chartFiles() error: %v", err)
	}
	want := []string{filepath.Join(dir, "a.toml"), filepath.Join(dir, "b.json")}
	if len(got) != len(want) {
		t.Fatalf("chartFiles() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("chartFiles()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestExpandInputsFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := expandInputs([]string{path, "-"}, false)
	if err != nil {
		t.Fatalf("expandInputs() error: %v", err)
	}
	if len(got) != 2 || got[0] != path || got[1] != "-" {
		t.Errorf("expandInputs() = %v", got)
	}

	if _, err := expandInputs([]string{filepath.Join(dir, "missing.json")}, false); err == nil {
		t.Error("missing file accepted")
	}
}

func TestExpandInputsDirectoryAll(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.json", "b.toml"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := expandInputs([]string{dir}, true)
	if err != nil {
		t.Fatalf("expandInputs() error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expandInputs(--all) = %v, want both chart files", got)
	}

	empty := t.TempDir()
	if _, err := expandInputs([]string{empty}, true); err == nil {
		t.Error("empty directory accepted")
	}
}
