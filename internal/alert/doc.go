// Package alert decodes heimdall Alert documents.
//
// An Alert is the input shape of the converter:
//
//	metadata:
//	  name: high-cpu
//	  namespace: prod
//	  annotations:
//	    heimdall.uswitch.com/summary: CPU high
//	  labels:            # optional
//	    severity: warning
//	spec:
//	  expr: cpu > 0.9
//	  for: 5m
//
// Decode(node) turns one parsed YAML document into an *Alert. Required fields
// are checked in document order and the first absent one is reported as a
// *MissingFieldError carrying its dotted path. Fields with the wrong YAML
// shape (a sequence where a string belongs, a non-mapping document) are
// reported as a *TypeError. No other validation is done: expr and for are
// opaque strings.
package alert
