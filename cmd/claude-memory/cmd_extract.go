package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// extractCmd reads a transcript from stdin and runs auto_extract, printing
// the result to stderr so session hooks can pipe transcripts through it.
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract memories from a transcript on stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		transcript, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("error reading stdin: %w", err)
		}
		if strings.TrimSpace(string(transcript)) == "" {
			return nil
		}

		eng, _, cleanup, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		result, err := eng.AutoExtract(cmd.Context(), string(transcript))
		if err != nil {
			fmt.Fprintf(os.Stderr, "extraction failed: %v\n", err)
			return nil
		}
		fmt.Fprintln(os.Stderr, result)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
