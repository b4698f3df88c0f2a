// Package promrule defines the prometheus-operator PrometheusRule document
// emitted by the converter and writes sequences of them as a multi-document
// YAML stream.
package promrule
