package metrics

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/alertconv/alertconv/internal/promrule"
)

// Metric family names.
const (
	MetricSuccess   = "alertconv_last_run_success"
	MetricTimestamp = "alertconv_last_run_timestamp_seconds"
	MetricDuration  = "alertconv_last_run_duration_seconds"
	MetricDocuments = "alertconv_input_documents"
	MetricRules     = "alertconv_rules_generated"
)

const fileMode = 0o644

// Run is the outcome of one conversion.
type Run struct {
	Started  time.Time
	Duration time.Duration
	Success  bool

	// Documents is the number of input documents converted. It stays 0 when
	// the run fails, even if some documents were parsed.
	Documents int

	// RulesByNamespace counts generated rules per metadata.namespace.
	RulesByNamespace map[string]int
}

// NewRun starts a Run at now.
func NewRun(now time.Time) *Run {
	return &Run{Started: now, RulesByNamespace: make(map[string]int)}
}

// Observe records a successful batch.
func (r *Run) Observe(rules []*promrule.PrometheusRule) {
	r.Success = true
	r.Documents = len(rules)
	for _, rule := range rules {
		r.RulesByNamespace[rule.Metadata.Namespace]++
	}
}

// Families returns the run as metric families sorted by name.
func (r *Run) Families() []*dto.MetricFamily {
	success := 0.0
	if r.Success {
		success = 1
	}

	fams := []*dto.MetricFamily{
		gaugeFamily(MetricDocuments, "Number of Alert documents converted by the last run.",
			gauge(float64(r.Documents))),
		gaugeFamily(MetricDuration, "Wall time of the last conversion run.",
			gauge(r.Duration.Seconds())),
		gaugeFamily(MetricRules, "PrometheusRules generated by the last run, per namespace.",
			r.rulesByNamespace()...),
		gaugeFamily(MetricSuccess, "Whether the last conversion run succeeded.",
			gauge(success)),
		gaugeFamily(MetricTimestamp, "Unix time the last conversion run started.",
			gauge(float64(r.Started.UnixNano())/1e9)),
	}
	return fams
}

func (r *Run) rulesByNamespace() []*dto.Metric {
	namespaces := make([]string, 0, len(r.RulesByNamespace))
	for ns := range r.RulesByNamespace {
		namespaces = append(namespaces, ns)
	}
	sort.Strings(namespaces)

	ms := make([]*dto.Metric, 0, len(namespaces))
	for _, ns := range namespaces {
		m := gauge(float64(r.RulesByNamespace[ns]))
		m.Label = []*dto.LabelPair{{Name: ptr("namespace"), Value: ptr(ns)}}
		ms = append(ms, m)
	}
	return ms
}

// Write renders the run in the text exposition format.
func Write(w io.Writer, r *Run) error {
	for _, mf := range r.Families() {
		if len(mf.GetMetric()) == 0 {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

// WriteFile atomically replaces path with the rendered run.
func WriteFile(path string, r *Run) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("metrics: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if err := Write(tmp, r); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("metrics: chmod: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("metrics: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("metrics: rename: %w", err)
	}
	return nil
}

func gaugeFamily(name, help string, ms ...*dto.Metric) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   ptr(name),
		Help:   ptr(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: ms,
	}
}

func gauge(v float64) *dto.Metric {
	return &dto.Metric{Gauge: &dto.Gauge{Value: ptr(v)}}
}

func ptr[T any](v T) *T { return &v }
