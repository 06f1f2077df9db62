package render

import (
	"bytes"
	"fmt"
	"os/exec"
)

// rsvgConvert is the external converter binary from librsvg.
const rsvgConvert = "rsvg-convert"

// ToPNG converts SVG markup to PNG at the given zoom factor.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	return convert(svg, "--format", "png", "--zoom", fmt.Sprintf("%g", scale))
}

// ToPDF converts SVG markup to PDF.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(svg []byte) ([]byte, error) {
	return convert(svg, "--format", "pdf")
}

func convert(svg []byte, args ...string) ([]byte, error) {
	cmd := exec.Command(rsvgConvert, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if _, lookErr := exec.LookPath(rsvgConvert); lookErr != nil {
			return nil, fmt.Errorf("%s not found in PATH (install librsvg): %w", rsvgConvert, lookErr)
		}
		return nil, fmt.Errorf("%s: %w: %s", rsvgConvert, err, stderr.String())
	}
	return out.Bytes(), nil
}
