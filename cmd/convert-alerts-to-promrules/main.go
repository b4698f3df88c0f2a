package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		slog.Error("convert-alerts-to-promrules failed", "err", err)
		os.Exit(1)
	}
}
