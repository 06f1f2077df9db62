package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stackplot/stackplot/pkg/cache"
	"github.com/stackplot/stackplot/pkg/chart"
)

func testChart() *chart.Chart {
	return &chart.Chart{
		Title: "Revenue",
		Categories: []chart.Category{
			{Label: "Q1", Segments: []chart.Segment{
				{Name: "ads", Value: 12},
				{Name: "subs", Value: 5},
			}},
			{Label: "Q2", Segments: []chart.Segment{
				{Name: "ads", Value: 9},
				{Name: "subs", Value: 3},
			}},
		},
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"svg", "png", "pdf", "json"} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) error: %v", f, err)
		}
	}
	if err := ValidateFormat("gif"); err == nil {
		t.Error("ValidateFormat(gif) should fail")
	}
	if err := ValidateFormats([]string{"svg", "bmp"}); err == nil {
		t.Error("ValidateFormats with one bad entry should fail")
	}
}

func TestOptionsValidateAndSetDefaults(t *testing.T) {
	opts := Options{Chart: testChart()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults() error: %v", err)
	}

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("default formats = %v, want [svg]", opts.Formats)
	}
	if opts.Config.Width != chart.DefaultWidth {
		t.Errorf("config not normalized: width = %g", opts.Config.Width)
	}
	if opts.Logger == nil {
		t.Error("logger not defaulted")
	}

	// Idempotent: a second call leaves everything alone.
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call error: %v", err)
	}
}

func TestOptionsRequireInput(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("empty options should fail validation")
	}
}

func TestOptionsRejectBadFormat(t *testing.T) {
	opts := Options{Chart: testChart(), Formats: []string{"gif"}}
	if err := opts.ValidateAndSetDefaults(); err == nil {
		t.Error("invalid format accepted")
	}
}

func TestRunnerExecute(t *testing.T) {
	runner := NewRunner(nil, nil)

	result, err := runner.Execute(context.Background(), Options{
		Chart:   testChart(),
		Formats: []string{FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	if result.RenderID == "" {
		t.Error("no render ID assigned")
	}
	if result.ChartHash == "" {
		t.Error("no chart hash computed")
	}
	if result.Stats.Categories != 2 || result.Stats.LegendKeys != 2 {
		t.Errorf("stats = %+v", result.Stats)
	}

	svg, ok := result.Artifacts[FormatSVG]
	if !ok || !bytes.Contains(svg, []byte("<svg ")) {
		t.Error("SVG artifact missing or malformed")
	}
	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("JSON artifact missing")
	}
	if result.CacheInfo.AllHit() {
		t.Error("first render cannot be a full cache hit")
	}
	if len(result.Layout.Bars) != 2 {
		t.Errorf("layout has %d bars", len(result.Layout.Bars))
	}
	if result.Colors["ads"] == "" || result.Colors["subs"] == "" {
		t.Errorf("colors = %v", result.Colors)
	}
}

func TestRunnerExecuteFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "revenue.json")
	doc := `{"title": "Revenue", "categories": [
		{"label": "Q1", "segments": [{"name": "ads", "value": 12}]}
	]}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil)
	result, err := runner.Execute(context.Background(), Options{Input: path})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if result.Chart.Title != "Revenue" {
		t.Errorf("decoded title = %q", result.Chart.Title)
	}
}

func TestRunnerArtifactCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	runner := NewRunner(c, nil)

	opts := func() Options {
		return Options{Chart: testChart(), Formats: []string{FormatSVG}}
	}

	first, err := runner.Execute(context.Background(), opts())
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.ArtifactHits[FormatSVG] {
		t.Error("first render hit the cache")
	}

	second, err := runner.Execute(context.Background(), opts())
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.ArtifactHits[FormatSVG] {
		t.Error("second render missed the cache")
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached artifact differs from the fresh render")
	}
}

func TestRunnerCacheKeyedByOptions(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	runner := NewRunner(c, nil)

	base := Options{Chart: testChart(), Formats: []string{FormatSVG}}
	if _, err := runner.Execute(context.Background(), base); err != nil {
		t.Fatal(err)
	}

	// Changing a render option must bypass the cached artifact.
	noGrid := Options{Chart: testChart(), Formats: []string{FormatSVG}, NoGridlines: true}
	result, err := runner.Execute(context.Background(), noGrid)
	if err != nil {
		t.Fatal(err)
	}
	if result.CacheInfo.ArtifactHits[FormatSVG] {
		t.Error("gridline change served a stale artifact")
	}
	if strings.Contains(string(result.Artifacts[FormatSVG]), `class="grid"`) {
		t.Error("gridlines present despite NoGridlines")
	}
}

func TestRunnerInvalidChart(t *testing.T) {
	runner := NewRunner(nil, nil)
	_, err := runner.Execute(context.Background(), Options{
		Chart: &chart.Chart{}, // no categories
	})
	if err == nil {
		t.Error("invalid chart accepted")
	}
}
