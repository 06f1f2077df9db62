package source

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/stackplot/stackplot/pkg/chart"
	"github.com/stackplot/stackplot/pkg/errors"
)

// ReadJSON decodes a JSON chart document from r and validates it.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*chart.Chart, error) {
	var c chart.Chart
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode JSON chart")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ReadTOML decodes a TOML chart document from r and validates it.
// ReadTOML does not close r.
func ReadTOML(r io.Reader) (*chart.Chart, error) {
	var c chart.Chart
	if _, err := toml.NewDecoder(r).Decode(&c); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode TOML chart")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// ImportFile reads a chart document from path, dispatching on the file
// extension. Path "-" reads a JSON document from stdin.
func ImportFile(path string) (*chart.Chart, error) {
	if path == "-" {
		return ReadJSON(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ReadTOML(f)
	case ".json", "":
		return ReadJSON(f)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported,
			"unsupported chart format %q (use .json or .toml)", filepath.Ext(path))
	}
}

// Supported reports whether path has a recognized chart extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".toml":
		return true
	}
	return false
}
