package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "reconciler",
		Short: "Verify OCR-extracted document fields against barcode payloads",
		Long: `Reconciler cross-checks the fields OCR extracted from a scanned document
against the text decoded from the document's barcodes.

It parses the barcode payload into label/value facts, optimally assigns each
expected field to its best candidate, and reports a MATCH, MISMATCH, or
MISSING verdict per field, plus the barcode facts the OCR side never
surfaced.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")

	// Add subcommands
	cmd.AddCommand(newMatchCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newEvalCmd())

	return cmd
}
