package document

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Format is a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCUE  Format = "cue"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", fmt.Errorf("unsupported document extension %q (want .yaml, .yml, .json or .cue)", filepath.Ext(path))
	}
}

// Load reads and parses a document file from fs.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields, or is missing required fields.
func Load(fs afero.Fs, path string) (*Document, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	return Parse(data, format, path)
}

// Parse decodes a document. filename is used in CUE error positions and
// may be empty.
func Parse(data []byte, format Format, filename string) (*Document, error) {
	switch format {
	case FormatYAML, FormatJSON:
		// JSON is decoded by the YAML decoder, which keeps mapping order.
	case FormatCUE:
		exported, err := exportCUE(data, filename)
		if err != nil {
			return nil, err
		}
		data = exported
	default:
		return nil, fmt.Errorf("unsupported document format %q", format)
	}

	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", format, err)
	}

	if err := validate(&doc); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	return &doc, nil
}

// exportCUE evaluates a CUE document and exports it as JSON. Fields are
// exported in declaration order.
func exportCUE(data []byte, filename string) ([]byte, error) {
	ctx := cuecontext.New()

	var v cue.Value
	if filename != "" {
		v = ctx.CompileBytes(data, cue.Filename(filename))
	} else {
		v = ctx.CompileBytes(data)
	}
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	out, err := v.MarshalJSON()
	if err != nil {
		return nil, formatCUEError(err)
	}
	return out, nil
}

// CUEError is a CUE evaluation error with its source position.
type CUEError struct {
	Message string
	Pos     token.Pos
}

func (e *CUEError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: cue: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("cue: %s", e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	positions := errors.Positions(first)
	if len(positions) > 0 {
		return &CUEError{Message: first.Error(), Pos: positions[0]}
	}
	return &CUEError{Message: first.Error()}
}
