package alert

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SummaryAnnotation is the annotation key holding the alert summary.
const SummaryAnnotation = "heimdall.uswitch.com/summary"

// Dotted paths of the required fields, in the order they are checked.
const (
	FieldMetadata  = "metadata"
	FieldName      = "metadata.name"
	FieldNamespace = "metadata.namespace"
	FieldSummary   = `metadata.annotations["` + SummaryAnnotation + `"]`
	FieldSpec      = "spec"
	FieldExpr      = "spec.expr"
	FieldFor       = "spec.for"
)

// Alert is one decoded heimdall Alert.
type Alert struct {
	Name      string
	Namespace string
	Summary   string

	// Labels holds metadata.labels verbatim. Never nil.
	Labels map[string]string

	Expr string
	For  string

	// Line is the line of the document root in the input stream.
	Line int
}

// rawAlert mirrors the document with pointer fields so absent keys can be
// told apart from empty strings.
type rawAlert struct {
	Metadata *rawMetadata `yaml:"metadata"`
	Spec     *rawSpec     `yaml:"spec"`
}

type rawMetadata struct {
	Name      *string `yaml:"name"`
	Namespace *string `yaml:"namespace"`

	// Only the summary annotation is read; other annotations may hold any shape.
	Annotations map[string]yaml.Node `yaml:"annotations"`

	Labels map[string]string `yaml:"labels"`
}

type rawSpec struct {
	Expr *string `yaml:"expr"`
	For  *string `yaml:"for"`
}

// Decode converts a parsed YAML document into an Alert.
// node may be a DocumentNode or the mapping at its root.
func Decode(node *yaml.Node) (*Alert, error) {
	root := node
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil, &TypeError{Errors: []string{"empty document, want mapping"}}
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, &TypeError{Errors: []string{
			fmt.Sprintf("line %d: document is %s, want mapping", root.Line, describe(root)),
		}}
	}

	var raw rawAlert
	if err := root.Decode(&raw); err != nil {
		var te *yaml.TypeError
		if errors.As(err, &te) {
			return nil, &TypeError{Errors: te.Errors}
		}
		return nil, fmt.Errorf("alert: decode: %w", err)
	}

	a := &Alert{Line: root.Line, Labels: map[string]string{}}

	md := raw.Metadata
	if md == nil {
		return nil, &MissingFieldError{Field: FieldMetadata}
	}
	if md.Name == nil {
		return nil, &MissingFieldError{Field: FieldName}
	}
	a.Name = *md.Name
	if md.Namespace == nil {
		return nil, &MissingFieldError{Field: FieldNamespace}
	}
	a.Namespace = *md.Namespace

	summary, ok := md.Annotations[SummaryAnnotation]
	for summary.Kind == yaml.AliasNode && summary.Alias != nil {
		summary = *summary.Alias
	}
	if !ok || isNull(&summary) {
		return nil, &MissingFieldError{Field: FieldSummary}
	}
	if summary.Kind != yaml.ScalarNode {
		return nil, &TypeError{Errors: []string{
			fmt.Sprintf("line %d: %s is %s, want string", summary.Line, FieldSummary, describe(&summary)),
		}}
	}
	a.Summary = summary.Value

	for k, v := range md.Labels {
		a.Labels[k] = v
	}

	if raw.Spec == nil {
		return nil, &MissingFieldError{Field: FieldSpec}
	}
	if raw.Spec.Expr == nil {
		return nil, &MissingFieldError{Field: FieldExpr}
	}
	a.Expr = *raw.Spec.Expr
	if raw.Spec.For == nil {
		return nil, &MissingFieldError{Field: FieldFor}
	}
	a.For = *raw.Spec.For

	return a, nil
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

// describe names a node's shape for error messages.
func describe(n *yaml.Node) string {
	switch n.Kind {
	case yaml.MappingNode:
		return "a mapping"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.AliasNode:
		return "an alias"
	case yaml.ScalarNode:
		if isNull(n) {
			return "null"
		}
		return "scalar " + n.ShortTag()
	default:
		return "empty"
	}
}
