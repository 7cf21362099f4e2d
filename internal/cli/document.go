package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/roach88/sqlq/internal/document"
)

// loadedDocument is a parsed document with every query built.
type loadedDocument struct {
	Path    string
	Doc     *document.Document
	Queries []document.Named
}

// find returns the built query with the given name.
func (l *loadedDocument) find(name string) (document.Named, bool) {
	for _, n := range l.Queries {
		if n.Name == name {
			return n, true
		}
	}
	return document.Named{}, false
}

// loadDocument loads and builds the document at path. Failures are
// reported through formatter and returned as command errors.
func loadDocument(opts *RootOptions, formatter *OutputFormatter, path string) (*loadedDocument, error) {
	formatter.VerboseLog("Loading document %s", path)

	doc, err := document.Load(opts.fs(), path)
	if err != nil {
		code := ErrCodeLoadFailed
		var cueErr *document.CUEError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			code = ErrCodeNotFound
		case errors.As(err, &cueErr):
			code = ErrCodeCUE
		}
		return nil, commandError(formatter, code, err.Error(), nil)
	}

	queries, err := doc.Build()
	if err != nil {
		return nil, commandError(formatter, ErrCodeInvalidQuery, err.Error(), nil)
	}
	formatter.VerboseLog("Built %d query(ies)", len(queries))

	return &loadedDocument{Path: path, Doc: doc, Queries: queries}, nil
}

// lookup finds a named query or reports ErrCodeUnknownQuery.
func (l *loadedDocument) lookup(formatter *OutputFormatter, name string) (document.Named, error) {
	n, ok := l.find(name)
	if !ok {
		return n, commandError(formatter, ErrCodeUnknownQuery,
			fmt.Sprintf("no query named %q in %s", name, l.Path), nil)
	}
	return n, nil
}

// commandError outputs an error and returns it with exit code 2.
func commandError(formatter *OutputFormatter, code, message string, details interface{}) error {
	_ = formatter.Error(code, message, details)
	return WrapExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message), nil)
}
