// Command gh-pr-attention is the entry point used by `gh extension install`.
package main

import (
	"log/slog"
	"os"

	"github.com/ryo246912/gh-pr-attention/internal/cli"
)

func main() {
	cmd, err := cli.NewRootCmd()
	if err == nil {
		err = cmd.Execute()
	}
	if err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
