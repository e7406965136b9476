package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

var (
	slotsFlag     int
	reportDirFlag string
	portFlag      string
)

var rootCmd = &cobra.Command{
	Use:          "parking",
	Short:        "Parking lot management",
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive console menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		return a.RunConsole(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the parking API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if a.cfg.Facility.Slots <= 0 {
			return fmt.Errorf("slot count is required: use --slots or FACILITY_SLOTS")
		}
		return a.Serve(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&slotsFlag, "slots", 0, "total number of parking slots (overrides FACILITY_SLOTS)")
	rootCmd.PersistentFlags().StringVar(&reportDirFlag, "report-dir", "", "directory for the session report (overrides REPORT_DIR)")
	serveCmd.Flags().StringVar(&portFlag, "port", "", "HTTP port (overrides SERVER_PORT)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}
