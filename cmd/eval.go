package cmd

import (
	"github.com/spf13/cobra"

	"github.com/dockrecv/reconciler/internal/evalcmd"
)

func newEvalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Reconciliation evaluation tools",
		Long: `Evaluation tools for measuring reconciliation quality over fixture datasets.

Supports running the engine over labeled case files and rendering detailed
comparison reports.`,
	}

	// Add eval subcommands
	cmd.AddCommand(evalcmd.NewRunCmd())
	cmd.AddCommand(evalcmd.NewReportCmd())

	return cmd
}
