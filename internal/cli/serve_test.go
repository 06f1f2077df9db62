package cli

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/stackplot/stackplot/pkg/pipeline"
)

func testServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	dir := t.TempDir()
	doc := `{"title": "Revenue", "categories": [
		{"label": "Q1", "segments": [{"name": "ads", "value": 12}]}
	]}`
	if err := os.WriteFile(filepath.Join(dir, "revenue.json"), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := &previewServer{dir: dir, runner: pipeline.NewRunner(nil, nil)}
	r := chi.NewRouter()
	r.Get("/", srv.handleIndex)
	r.Get("/charts/{name}", srv.handleChart)

	ts := httptest.NewServer(r)
	t.Cleanup(ts.Close)
	return ts, dir
}

func TestHandleIndex(t *testing.T) {
	ts, _ := testServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET / status = %d", resp.StatusCode)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, `href="/charts/revenue.json"`) {
		t.Errorf("index missing chart link:\n%s", body)
	}
}

func TestHandleChart(t *testing.T) {
	ts, _ := testServer(t)

	resp, err := http.Get(ts.URL + "/charts/revenue.json")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/svg+xml" {
		t.Errorf("Content-Type = %q", ct)
	}
	if resp.Header.Get("X-Render-Id") == "" {
		t.Error("no render ID header")
	}
	if got := resp.Header.Get("X-Cache"); got != "hit" && got != "miss" {
		t.Errorf("X-Cache = %q", got)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "<svg ") {
		t.Error("response is not an SVG document")
	}
}

func TestHandleChartMissing(t *testing.T) {
	ts, _ := testServer(t)

	resp, err := http.Get(ts.URL + "/charts/nope.json")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestHandleChartInvalidDocument(t *testing.T) {
	ts, dir := testServer(t)
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	resp, err := http.Get(ts.URL + "/charts/bad.json")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}
