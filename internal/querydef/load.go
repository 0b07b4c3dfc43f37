package querydef

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// Format is a definition file format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", &Error{
			Code:    ErrCodeUnsupportedFormat,
			Message: fmt.Sprintf("unsupported definition file %q: want .yaml, .yml or .cue", path),
		}
	}
}

// Load reads, parses and validates a definition file.
func Load(path string) (*Definition, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Code: ErrCodeReadFailed, Message: "failed to read definition file", Err: err}
	}

	def, err := Parse(data, format, path)
	if err != nil {
		return nil, err
	}

	if err := Validate(def); err != nil {
		return nil, err
	}
	return def, nil
}

// Parse decodes a definition without validating it. filename is used in
// CUE error positions and may be empty.
func Parse(data []byte, format Format, filename string) (*Definition, error) {
	switch format {
	case FormatYAML:
		return parseYAML(data)
	case FormatCUE:
		return parseCUE(data, filename)
	default:
		return nil, &Error{Code: ErrCodeUnsupportedFormat, Message: fmt.Sprintf("unsupported format %q", format)}
	}
}

// parseYAML rejects unknown fields so typos like "selecor:" surface.
func parseYAML(data []byte) (*Definition, error) {
	var def Definition
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&def); err != nil {
		return nil, &Error{Code: ErrCodeParseFailed, Message: "failed to parse YAML", Err: err}
	}
	return &def, nil
}

func parseCUE(data []byte, filename string) (*Definition, error) {
	ctx := cuecontext.New()

	var opts []cue.BuildOption
	if filename != "" {
		opts = append(opts, cue.Filename(filename))
	}
	value := ctx.CompileBytes(data, opts...)
	if err := value.Err(); err != nil {
		return nil, &Error{Code: ErrCodeParseFailed, Message: "failed to compile CUE", Err: err}
	}

	// A definition may be the whole file or nested under a "query" field.
	if q := value.LookupPath(cue.ParsePath("query")); q.Exists() {
		value = q
	}

	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, &Error{Code: ErrCodeParseFailed, Message: "CUE definition is not concrete", Err: err}
	}

	var def Definition
	if err := value.Decode(&def); err != nil {
		return nil, &Error{Code: ErrCodeParseFailed, Message: "failed to decode CUE", Err: err}
	}
	return &def, nil
}
