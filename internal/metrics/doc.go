// Package metrics describes a conversion run in the Prometheus text
// exposition format, for node_exporter's textfile collector.
//
// Families written (all gauges):
//   - alertconv_last_run_success            1 if the batch converted, else 0
//   - alertconv_last_run_timestamp_seconds  unix time the run started
//   - alertconv_last_run_duration_seconds   wall time of the run
//   - alertconv_input_documents             documents converted, 0 on a failed run
//   - alertconv_rules_generated{namespace}  PrometheusRules written per namespace
//
// WriteFile replaces the target atomically (temp file + rename in the same
// directory) so the collector never reads a half-written file.
package metrics
