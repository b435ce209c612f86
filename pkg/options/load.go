package options

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the syntax of an options file.
type Format int

const (
	YAML Format = iota
	TOML
)

// FormatOf derives the format from a file name.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return 0, fmt.Errorf("unsupported options file type %q", filepath.Ext(path))
}

// Load reads an options layer from a YAML or TOML file.
func Load(path string) (Options, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Options{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("reading options: %w", err)
	}
	return Parse(data, format)
}

// Parse decodes an options layer. Unknown keys are rejected.
func Parse(data []byte, format Format) (Options, error) {
	var opts Options
	switch format {
	case YAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
			return Options{}, fmt.Errorf("parsing yaml options: %w", err)
		}
	case TOML:
		md, err := toml.Decode(string(data), &opts)
		if err != nil {
			return Options{}, fmt.Errorf("parsing toml options: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Options{}, fmt.Errorf("unknown option %q", undecoded[0].String())
		}
	default:
		return Options{}, fmt.Errorf("unknown options format %d", format)
	}
	return opts, nil
}
