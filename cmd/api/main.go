package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

const appVersion = "v1.0.0"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "asistencia",
		Short:         "Attendance and leave management API",
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd())
	return cmd
}
