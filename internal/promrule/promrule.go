package promrule

import (
	"bytes"
	"fmt"
	"io"

	"github.com/prometheus/common/model"
	"gopkg.in/yaml.v3"
)

// Fixed values of every generated rule.
const (
	APIVersion = "monitoring.coreos.com/v1"
	Kind       = "PrometheusRule"

	// RoleLabel marks the resource for the Prometheus ruleSelector.
	RoleLabel      = "role"
	RoleAlertRules = "alert-rules"

	// GroupSuffix is appended to the alert name to form the group name.
	GroupSuffix = ".rules"

	SummaryAnnotation = "summary"
)

const indent = 2

// PrometheusRule is a monitoring.coreos.com/v1 PrometheusRule holding one
// group with one alerting rule.
type PrometheusRule struct {
	APIVersion string   `yaml:"apiVersion"`
	Kind       string   `yaml:"kind"`
	Metadata   Metadata `yaml:"metadata"`
	Spec       Spec     `yaml:"spec"`
}

// Metadata is the object metadata of a PrometheusRule.
type Metadata struct {
	Name      string            `yaml:"name"`
	Namespace string            `yaml:"namespace"`
	Labels    map[string]string `yaml:"labels"`
}

// Spec holds the rule groups.
type Spec struct {
	Groups []Group `yaml:"groups"`
}

// Group is a named set of rules evaluated together.
type Group struct {
	Name  string `yaml:"name"`
	Rules []Rule `yaml:"rules"`
}

// Rule is a single alerting rule.
type Rule struct {
	Alert       string            `yaml:"alert"`
	Annotations map[string]string `yaml:"annotations"`
	Expr        string            `yaml:"expr"`
	For         string            `yaml:"for"`
	Labels      model.LabelSet    `yaml:"labels"`
}

// WriteAll writes rules to w as YAML documents, each preceded by an explicit
// "---" marker, in block style. Nothing is written if encoding any rule fails.
func WriteAll(w io.Writer, rules []*PrometheusRule) error {
	var buf bytes.Buffer
	for i, r := range rules {
		buf.WriteString("---\n")

		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(indent)
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("promrule: encode document %d: %w", i+1, err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("promrule: encode document %d: %w", i+1, err)
		}
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("promrule: write: %w", err)
	}
	return nil
}
