package converter

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseError reports input that is not well-formed YAML.
type ParseError struct {
	// Document is the 1-based index of the document being read.
	Document int
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("converter: parse document %d: %v", e.Document, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DocumentError reports a well-formed document that is not a valid Alert.
// Err is an *alert.MissingFieldError or *alert.TypeError.
type DocumentError struct {
	// Document is the 1-based index of the document in the stream.
	Document int
	// Line is where the document starts, 0 if unknown.
	Line int
	// Name is metadata.name when it could be read.
	Name string
	Err  error
}

func (e *DocumentError) Error() string {
	where := fmt.Sprintf("document %d", e.Document)
	if e.Line > 0 {
		where += fmt.Sprintf(" (line %d)", e.Line)
	}
	if e.Name != "" {
		where += fmt.Sprintf(" %q", e.Name)
	}
	return fmt.Sprintf("converter: %s: %v", where, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

func newDocumentError(index int, doc *yaml.Node, err error) *DocumentError {
	de := &DocumentError{Document: index, Err: err}

	root := doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	de.Line = root.Line
	if root.Kind == yaml.MappingNode {
		de.Name = lookupName(root)
	}
	return de
}

// lookupName returns metadata.name as a scalar, or "" if it is not one.
func lookupName(root *yaml.Node) string {
	md := child(root, "metadata")
	if md == nil || md.Kind != yaml.MappingNode {
		return ""
	}
	name := child(md, "name")
	if name == nil || name.Kind != yaml.ScalarNode || name.ShortTag() == "!!null" {
		return ""
	}
	return name.Value
}

func child(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}
