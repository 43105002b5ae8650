package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"taskDashboard/internal/app"
	"taskDashboard/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "api",
		Short:        "Task dashboard HTTP server",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return app.New(cfg).Run(ctx)
		},
	}
	rootCmd.Flags().StringVar(&configPath, "config", "", "путь к config.yml (по умолчанию ./config.yml, если есть)")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
