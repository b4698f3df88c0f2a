package converter

import (
	"errors"
	"io"
	"log/slog"

	"github.com/prometheus/common/model"
	"gopkg.in/yaml.v3"

	"github.com/alertconv/alertconv/internal/alert"
	"github.com/alertconv/alertconv/internal/promrule"
)

// Convert builds the PrometheusRule for a.
func Convert(a *alert.Alert) *promrule.PrometheusRule {
	seed := model.LabelSet{
		"name":      model.LabelValue(a.Name),
		"namespace": model.LabelValue(a.Namespace),
	}
	overlay := make(model.LabelSet, len(a.Labels))
	for k, v := range a.Labels {
		overlay[model.LabelName(k)] = model.LabelValue(v)
	}

	return &promrule.PrometheusRule{
		APIVersion: promrule.APIVersion,
		Kind:       promrule.Kind,
		Metadata: promrule.Metadata{
			Name:      a.Name,
			Namespace: a.Namespace,
			Labels:    map[string]string{promrule.RoleLabel: promrule.RoleAlertRules},
		},
		Spec: promrule.Spec{
			Groups: []promrule.Group{{
				Name: a.Name + promrule.GroupSuffix,
				Rules: []promrule.Rule{{
					Alert:       a.Name,
					Annotations: map[string]string{promrule.SummaryAnnotation: a.Summary},
					Expr:        a.Expr,
					For:         a.For,
					Labels:      seed.Merge(overlay),
				}},
			}},
		},
	}
}

// ConvertAll parses every document in r and converts each one, preserving
// order. Empty input yields an empty slice.
func ConvertAll(r io.Reader) ([]*promrule.PrometheusRule, error) {
	docs, err := parseStream(r)
	if err != nil {
		return nil, err
	}

	rules := make([]*promrule.PrometheusRule, 0, len(docs))
	for i, doc := range docs {
		a, err := alert.Decode(doc)
		if err != nil {
			return nil, newDocumentError(i+1, doc, err)
		}
		slog.Debug("converter: converted alert",
			"document", i+1, "name", a.Name, "namespace", a.Namespace, "labels", len(a.Labels))
		rules = append(rules, Convert(a))
	}
	return rules, nil
}

// parseStream reads all YAML documents from r up front.
func parseStream(r io.Reader) ([]*yaml.Node, error) {
	dec := yaml.NewDecoder(r)

	var docs []*yaml.Node
	for {
		doc := &yaml.Node{}
		err := dec.Decode(doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Document: len(docs) + 1, Err: err}
		}
		docs = append(docs, doc)
	}

	slog.Debug("converter: parsed stream", "documents", len(docs))
	return docs, nil
}
