package alert

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const validAlert = `
metadata:
  name: high-cpu
  namespace: prod
  annotations:
    heimdall.uswitch.com/summary: CPU high
  labels:
    severity: warning
    team: infra
spec:
  expr: cpu > 0.9
  for: 5m
`

func TestDecode_Valid(t *testing.T) {
	a, err := decodeString(t, validAlert)
	require.NoError(t, err)

	assert.Equal(t, "high-cpu", a.Name)
	assert.Equal(t, "prod", a.Namespace)
	assert.Equal(t, "CPU high", a.Summary)
	assert.Equal(t, "cpu > 0.9", a.Expr)
	assert.Equal(t, "5m", a.For)
	assert.Equal(t, map[string]string{"severity": "warning", "team": "infra"}, a.Labels)
	assert.Equal(t, 2, a.Line)
}

func TestDecode_NoLabels(t *testing.T) {
	a, err := decodeString(t, `
metadata:
  name: disk
  namespace: ops
  annotations: {heimdall.uswitch.com/summary: Disk full}
spec: {expr: "disk > 0.95", for: 10m}
`)
	require.NoError(t, err)
	assert.NotNil(t, a.Labels)
	assert.Empty(t, a.Labels)
}

func TestDecode_NullLabels(t *testing.T) {
	a, err := decodeString(t, `
metadata:
  name: disk
  namespace: ops
  annotations: {heimdall.uswitch.com/summary: Disk full}
  labels: ~
spec: {expr: up == 0, for: 1m}
`)
	require.NoError(t, err)
	assert.Empty(t, a.Labels)
}

func TestDecode_ExprPassedThrough(t *testing.T) {
	expr := `sum(rate(http_requests_total{code=~"5.."}[5m])) / sum(rate(http_requests_total[5m])) > 0.05`
	node := &yaml.Node{}
	require.NoError(t, yaml.Unmarshal([]byte(`
metadata:
  name: errors
  namespace: web
  annotations: {heimdall.uswitch.com/summary: "5xx ratio high"}
spec:
  expr: '`+expr+`'
  for: 2m
`), node))

	a, err := Decode(node)
	require.NoError(t, err)
	assert.Equal(t, expr, a.Expr)
}

func TestDecode_NonStringScalarsUseLiteral(t *testing.T) {
	a, err := decodeString(t, `
metadata:
  name: 404
  namespace: prod
  annotations: {heimdall.uswitch.com/summary: x}
  labels: {priority: 1}
spec: {expr: vector(1), for: 0}
`)
	require.NoError(t, err)
	assert.Equal(t, "404", a.Name)
	assert.Equal(t, "1", a.Labels["priority"])
	assert.Equal(t, "0", a.For)
}

func TestDecode_AliasedFields(t *testing.T) {
	a, err := decodeString(t, `
x-summary: &summary CPU high
x-labels: &labels {severity: warning}
metadata:
  name: high-cpu
  namespace: prod
  annotations: {heimdall.uswitch.com/summary: *summary}
  labels: *labels
spec: {expr: cpu > 0.9, for: 5m}
`)
	require.NoError(t, err)
	assert.Equal(t, "CPU high", a.Summary)
	assert.Equal(t, map[string]string{"severity": "warning"}, a.Labels)
}

func TestDecode_AliasedNullSummaryIsMissing(t *testing.T) {
	_, err := decodeString(t, `
x-none: &none ~
metadata: {name: n, namespace: ns, annotations: {heimdall.uswitch.com/summary: *none}}
spec: {expr: e, for: 1m}
`)
	var mfe *MissingFieldError
	require.ErrorAs(t, err, &mfe)
	assert.Equal(t, FieldSummary, mfe.Field)
}

func TestDecode_NullLabelValueBecomesEmpty(t *testing.T) {
	a, err := decodeString(t, `
metadata:
  name: n
  namespace: ns
  annotations: {heimdall.uswitch.com/summary: s}
  labels: {team: ~}
spec: {expr: e, for: 1m}
`)
	require.NoError(t, err)
	v, ok := a.Labels["team"]
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestDecode_OtherAnnotationsIgnored(t *testing.T) {
	a, err := decodeString(t, `
metadata:
  name: n
  namespace: ns
  annotations:
    heimdall.uswitch.com/summary: s
    example.com/runbook: [a, b]
spec: {expr: e, for: 1m}
`)
	require.NoError(t, err)
	assert.Equal(t, "s", a.Summary)
}

func TestDecode_MissingFields(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		field string
	}{
		{
			name:  "metadata",
			doc:   `spec: {expr: e, for: 1m}`,
			field: FieldMetadata,
		},
		{
			name:  "name",
			doc:   "metadata: {namespace: ns, annotations: {heimdall.uswitch.com/summary: s}}\nspec: {expr: e, for: 1m}",
			field: FieldName,
		},
		{
			name:  "null name",
			doc:   "metadata: {name: ~, namespace: ns, annotations: {heimdall.uswitch.com/summary: s}}\nspec: {expr: e, for: 1m}",
			field: FieldName,
		},
		{
			name:  "namespace",
			doc:   "metadata: {name: n, annotations: {heimdall.uswitch.com/summary: s}}\nspec: {expr: e, for: 1m}",
			field: FieldNamespace,
		},
		{
			name:  "annotations",
			doc:   "metadata: {name: n, namespace: ns}\nspec: {expr: e, for: 1m}",
			field: FieldSummary,
		},
		{
			name:  "summary",
			doc:   "metadata: {name: n, namespace: ns, annotations: {other: x}}\nspec: {expr: e, for: 1m}",
			field: FieldSummary,
		},
		{
			name:  "spec",
			doc:   "metadata: {name: n, namespace: ns, annotations: {heimdall.uswitch.com/summary: s}}",
			field: FieldSpec,
		},
		{
			name:  "expr",
			doc:   "metadata: {name: n, namespace: ns, annotations: {heimdall.uswitch.com/summary: s}}\nspec: {for: 1m}",
			field: FieldExpr,
		},
		{
			name:  "for",
			doc:   "metadata: {name: n, namespace: ns, annotations: {heimdall.uswitch.com/summary: s}}\nspec: {expr: e}",
			field: FieldFor,
		},
		{
			name:  "first missing wins",
			doc:   "metadata: {namespace: ns}\nspec: {}",
			field: FieldName,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeString(t, tc.doc)
			var mfe *MissingFieldError
			require.True(t, errors.As(err, &mfe), "got %v", err)
			assert.Equal(t, tc.field, mfe.Field)
		})
	}
}

func TestDecode_TypeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"sequence root", "- a\n- b\n"},
		{"scalar root", "just a string\n"},
		{"null document", "~\n"},
		{"labels not a mapping", "metadata: {name: n, namespace: ns, annotations: {heimdall.uswitch.com/summary: s}, labels: [a]}\nspec: {expr: e, for: 1m}"},
		{"name is a mapping", "metadata: {name: {a: b}, namespace: ns, annotations: {heimdall.uswitch.com/summary: s}}\nspec: {expr: e, for: 1m}"},
		{"summary is a sequence", "metadata: {name: n, namespace: ns, annotations: {heimdall.uswitch.com/summary: [s]}}\nspec: {expr: e, for: 1m}"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := decodeString(t, tc.doc)
			var te *TypeError
			require.True(t, errors.As(err, &te), "got %v", err)
			assert.NotEmpty(t, te.Errors)
		})
	}
}

func TestDecode_EmptyDocumentNode(t *testing.T) {
	_, err := Decode(&yaml.Node{Kind: yaml.DocumentNode})
	var te *TypeError
	require.ErrorAs(t, err, &te)
}

func TestMissingFieldError_Message(t *testing.T) {
	err := &MissingFieldError{Field: FieldSummary}
	assert.Equal(t, `missing required field metadata.annotations["heimdall.uswitch.com/summary"]`, err.Error())
}

// decodeString parses content as a single YAML document and decodes it.
func decodeString(t *testing.T, content string) (*Alert, error) {
	t.Helper()
	var node yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(content), &node))
	return Decode(&node)
}
