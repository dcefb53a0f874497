package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat infers the encoding from a file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", &Error{
			Code:    ErrCodeFormat,
			Message: fmt.Sprintf("cannot infer document format from %q (use .json, .yaml, or .yml)", filepath.Base(path)),
		}
	}
}

// Load reads, schema-validates, and decodes a document file.
func Load(path string) (*Document, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Code: ErrCodeRead, Message: err.Error(), Err: err}
	}
	return Decode(data, format)
}

// Decode parses document bytes in the given format.
//
// The bytes are decoded twice: once into a generic tree for schema
// validation, once into the typed document. Validating the generic tree
// means schema errors carry document paths instead of Go decoding
// noise.
func Decode(data []byte, format Format) (*Document, error) {
	var tree any
	if err := unmarshal(data, format, &tree); err != nil {
		return nil, &Error{Code: ErrCodeParse, Message: err.Error(), Err: err}
	}
	if err := validateSchema(tree); err != nil {
		return nil, err
	}

	var doc Document
	if err := unmarshal(data, format, &doc); err != nil {
		return nil, &Error{Code: ErrCodeParse, Message: err.Error(), Err: err}
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Encode serializes a document in the given format.
func Encode(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return nil, &Error{Code: ErrCodeWrite, Message: err.Error(), Err: err}
		}
		return buf.Bytes(), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, &Error{Code: ErrCodeWrite, Message: err.Error(), Err: err}
		}
		if err := enc.Close(); err != nil {
			return nil, &Error{Code: ErrCodeWrite, Message: err.Error(), Err: err}
		}
		return buf.Bytes(), nil
	default:
		return nil, &Error{Code: ErrCodeFormat, Message: fmt.Sprintf("unknown format %q", format)}
	}
}

// Save encodes a document and writes it through a temp-file rename so
// a crash mid-write never leaves a truncated project file.
func Save(path string, doc *Document) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}
	data, err := Encode(doc, format)
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return &Error{Code: ErrCodeWrite, Message: err.Error(), Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &Error{Code: ErrCodeWrite, Message: err.Error(), Err: err}
	}
	return nil
}

func unmarshal(data []byte, format Format, out any) error {
	switch format {
	case FormatJSON:
		return json.Unmarshal(data, out)
	case FormatYAML:
		return yaml.Unmarshal(data, out)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
