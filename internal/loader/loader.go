// Package loader reads scorecard descriptions from files or stdin.
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/scorecard/schema"
)

// StdinPath is the input path that selects standard input.
const StdinPath = "-"

// Load reads and decodes the description at path. An empty path or "-" reads stdin.
func Load(path string) (*schema.Description, error) {
	if path == "" || path == StdinPath {
		return Decode(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open description %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// Decode reads one JSON description from r. Syntax and type errors are
// reported as malformed input; unknown keys are ignored.
func Decode(r io.Reader) (*schema.Description, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read description: %w", err)
	}
	return Parse(data)
}

// Parse decodes one JSON description from data.
func Parse(data []byte) (*schema.Description, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &schema.MalformedInputError{Reason: "description is empty"}
	}

	var desc schema.Description
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&desc); err != nil {
		return nil, malformed(err)
	}
	if dec.More() {
		return nil, &schema.MalformedInputError{Reason: "trailing data after description"}
	}
	return &desc, nil
}

// InputName returns a short label for the input, used when recording runs.
func InputName(path string) string {
	if path == "" || path == StdinPath {
		return "stdin"
	}
	return filepath.Base(path)
}

// malformed converts decoder errors into MalformedInputError with a path when known.
func malformed(err error) error {
	var inputErr *schema.MalformedInputError
	if errors.As(err, &inputErr) {
		return inputErr
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		path := typeErr.Field
		if path == "" {
			path = "$"
		}
		return &schema.MalformedInputError{
			Path:   path,
			Reason: fmt.Sprintf("expected %s, got JSON %s", typeErr.Type, typeErr.Value),
		}
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &schema.MalformedInputError{
			Reason: fmt.Sprintf("invalid JSON at offset %d: %v", syntaxErr.Offset, syntaxErr),
		}
	}
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return &schema.MalformedInputError{Reason: "unexpected end of JSON input"}
	}
	return &schema.MalformedInputError{Reason: strings.TrimPrefix(err.Error(), "json: ")}
}
