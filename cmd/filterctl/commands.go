package main

import (
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"taskDashboard/internal/controller"
	"taskDashboard/internal/filter"
	"taskDashboard/internal/filter/query"
	"taskDashboard/internal/navigation"

	"github.com/spf13/cobra"
)

var Version = "dev"

type decoded struct {
	Path          string       `json:"path"`
	Filters       filter.Model `json:"filters"`
	Query         string       `json:"query"`
	ActiveFilters int          `json:"active_filters"`
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "filterctl",
		Short:         "Inspect and replay task dashboard filter addresses",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("base-path", controller.DefaultBasePath, "dashboard path every action navigates to")
	rootCmd.PersistentFlags().String("mode", "replace", "navigation mode: push or replace")

	rootCmd.AddCommand(decodeCmd())
	rootCmd.AddCommand(applyCmd())
	rootCmd.AddCommand(typeCmd())
	rootCmd.AddCommand(actionsCmd())
	return rootCmd
}

func decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <address>",
		Short: "Print the filter carried by an address as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			addr := query.ParseAddress(args[0])
			model := filter.Decode(addr.Query)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(decoded{
				Path:          addr.Path,
				Filters:       model,
				Query:         filter.Encode(addr.Query).Encode(),
				ActiveFilters: model.ActiveCount(),
			})
		},
	}
}

func applyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply <address> <action> [value]",
		Short: "Print the address that follows one filter action",
		Long: `Apply one filter action to an address and print the result.

Actions: toggle-status, toggle-priority, set-assignee, set-date-range,
set-search, clear. An omitted value is the empty string, which clears
the set-* filters.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := ""
			if len(args) == 3 {
				value = args[2]
			}
			action, err := controller.ParseAction(args[1], value)
			if err != nil {
				return err
			}

			_, ctrl, err := session(cmd, query.ParseAddress(args[0]))
			if err != nil {
				return err
			}
			ctrl.Dispatch(action)

			fmt.Fprintln(cmd.OutOrStdout(), ctrl.Address().String())
			return nil
		},
	}
	return cmd
}

// typeCmd feeds every prefix of a search term through a debounced
// navigator, the way a search box fires on each keystroke.
func typeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "type <address> <search>",
		Short: "Type a search term key by key through a debounced navigator",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			delay, err := cmd.Flags().GetDuration("debounce")
			if err != nil {
				return err
			}
			interval, err := cmd.Flags().GetDuration("interval")
			if err != nil {
				return err
			}

			history := navigation.NewHistory(query.ParseAddress(args[0]))
			var navigations atomic.Int32
			unsubscribe := history.Subscribe(func(query.Address) { navigations.Add(1) })
			defer unsubscribe()

			debounced := navigation.Debounce(history, delay)
			defer debounced.Stop()

			_, ctrl, err := sessionWith(cmd, history, debounced)
			if err != nil {
				return err
			}

			term := []rune(args[1])
			for i := range term {
				ctrl.SetSearch(string(term[:i+1]))
				if interval > 0 {
					time.Sleep(interval)
				}
			}
			debounced.Flush()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ctrl.Address().String())
			fmt.Fprintf(out, "keystrokes=%d navigations=%d\n", len(term), navigations.Load())
			return nil
		},
	}
	cmd.Flags().Duration("debounce", 300*time.Millisecond, "quiet period before a search navigation is issued")
	cmd.Flags().Duration("interval", 0, "pause between keystrokes")
	return cmd
}

func actionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "actions",
		Short: "List filter actions",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range controller.ActionNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func session(cmd *cobra.Command, start query.Address) (*navigation.History, *controller.Controller, error) {
	history := navigation.NewHistory(start)
	return sessionWith(cmd, history, history)
}

func sessionWith(cmd *cobra.Command, history *navigation.History, navigator controller.Navigator) (*navigation.History, *controller.Controller, error) {
	basePath, err := cmd.Flags().GetString("base-path")
	if err != nil {
		return nil, nil, err
	}
	rawMode, err := cmd.Flags().GetString("mode")
	if err != nil {
		return nil, nil, err
	}
	mode, err := navigation.ParseMode(rawMode)
	if err != nil {
		return nil, nil, err
	}

	ctrl := controller.New(history, navigator,
		controller.WithBasePath(basePath),
		controller.WithMode(mode),
	)
	return history, ctrl, nil
}
