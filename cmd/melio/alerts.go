package main

import (
	"fmt"
	"strings"
	"time"

	"melio/internal/export"

	"github.com/spf13/cobra"
)

var (
	alertsSchool     string
	alertsUnresolved bool
	alertsExportOut  string
)

var alertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Review safety alerts (staff)",
}

func init() {
	alertsListCmd.Flags().StringVar(&alertsSchool, "school", "", "filter by school code")
	alertsListCmd.Flags().BoolVar(&alertsUnresolved, "unresolved", false, "only open alerts")
	alertsStatsCmd.Flags().StringVar(&alertsSchool, "school", "", "filter by school code")
	alertsExportCmd.Flags().StringVar(&alertsSchool, "school", "", "filter by school code")
	alertsExportCmd.Flags().StringVar(&alertsExportOut, "out", "", "output .xlsx path")
	alertsCmd.AddCommand(alertsListCmd, alertsResolveCmd, alertsStatsCmd, alertsExportCmd)
}

var alertsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List alerts, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		alerts := a.alerts.All(alertsSchool)
		if alertsUnresolved {
			alerts = a.alerts.Unresolved(alertsSchool)
		}
		if len(alerts) == 0 {
			fmt.Println("Aucune alerte.")
			return nil
		}
		for _, al := range alerts {
			state := "ouverte"
			if al.Resolved {
				state = "résolue"
			}
			fmt.Printf("%s  %s  [%s] %s (%s)\n  %q\n", al.ID, al.Timestamp.Format("2006-01-02 15:04"),
				al.RiskLevel, al.StudentName, state, al.Message)
			if len(al.Keywords) > 0 {
				fmt.Printf("  mots-clés: %s\n", strings.Join(al.Keywords, ", "))
			}
		}
		return nil
	},
}

var alertsResolveCmd = &cobra.Command{
	Use:   "resolve <alert-id>",
	Short: "Mark an alert as handled",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.alerts.Resolve(args[0]) {
			return fmt.Errorf("alerte %q introuvable", args[0])
		}
		fmt.Println("Alerte résolue.")
		return nil
	},
}

var alertsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Alert totals by status and tier",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		stats := a.alerts.Stats(alertsSchool)
		fmt.Printf("Total: %d | résolues: %d | non résolues: %d\n", stats.Total, stats.Resolved, stats.Unresolved)
		for _, level := range []string{"critical", "high", "medium", "low"} {
			if n := stats.ByRiskLevel[level]; n > 0 {
				fmt.Printf("  %s: %d\n", level, n)
			}
		}
		return nil
	},
}

var alertsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export alerts to an Excel workbook",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := export.AlertWorkbook(a.alerts.All(alertsSchool), a.alerts.Stats(alertsSchool))
		if err != nil {
			return fmt.Errorf("build workbook: %w", err)
		}
		defer f.Close()

		out := alertsExportOut
		if out == "" {
			out = fmt.Sprintf("melio-alerts-%s.xlsx", time.Now().Format("2006-01-02"))
		}
		if err := f.SaveAs(out); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Printf("Export écrit dans %s\n", out)
		return nil
	},
}
