package main

import (
	"fmt"
	"strings"

	"melio/internal/model"

	"github.com/spf13/cobra"
)

var (
	reportUrgency   string
	reportAnonymous bool
)

var reportCmd = &cobra.Command{
	Use:   "report <description>",
	Short: "Report a concerning situation",
	Long:  "Report a concerning situation to the school staff.\nReports can be anonymous; the description must be at least 10 characters.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireUser(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		urgency := model.Urgency(strings.ToUpper(reportUrgency))
		report, err := a.reports.Submit(cmd.Context(), strings.Join(args, " "), urgency, reportAnonymous)
		if err != nil {
			return err
		}
		if reportAnonymous {
			fmt.Printf("Signalement anonyme envoyé (%s).\n", report.ID)
		} else {
			fmt.Printf("Signalement envoyé (%s).\n", report.ID)
		}
		return nil
	},
}

func init() {
	reportCmd.Flags().StringVar(&reportUrgency, "urgency", "MEDIUM", "urgency: LOW|MEDIUM|HIGH|CRITICAL")
	reportCmd.Flags().BoolVar(&reportAnonymous, "anonymous", false, "do not attach your identity")
}
