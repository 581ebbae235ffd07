package main

import (
	"os"

	"github.com/Iron-Ham/cohort/internal/cmd"
)

func main() {
	os.Exit(cmd.ReportError(os.Stderr, cmd.Execute()))
}
