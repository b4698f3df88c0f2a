// Package config holds the run options of convert-alerts-to-promrules.
//
// There is no configuration file: every option is a command-line flag and
// every default reproduces the plain filter behaviour (stdin to stdout, no
// metrics file, info-level text logs on stderr).
//
// New() returns Options with defaults applied, AddFlags binds them to a
// pflag.FlagSet and Validate checks enums and path combinations.
package config
