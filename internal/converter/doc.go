// Package converter maps heimdall Alerts onto prometheus-operator
// PrometheusRules.
//
// Convert(alert) is the pure per-document mapping:
//   - metadata.name/namespace are copied, metadata.labels is {role: alert-rules}
//   - one group named "<name>.rules" with one rule named after the alert
//   - rule labels are {name, namespace} overlaid with the Alert's labels;
//     Alert labels win on collision
//
// ConvertAll(r) reads a whole multi-document stream before converting
// anything. A syntax error anywhere yields a *ParseError; the first document
// that fails to decode yields a *DocumentError. Either way no rules are
// returned: one bad document fails the batch.
package converter
