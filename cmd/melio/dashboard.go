package main

import (
	"fmt"

	"melio/internal/handler"
	"melio/internal/logger"

	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve the staff alert dashboard API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		router := handler.NewDashboardHandler(a.alerts).Router()
		addr := a.cfg.DashboardAddr()
		logger.Info("dashboard.start", "addr", addr)
		fmt.Printf("Tableau de bord sur http://localhost%s\n", addr)
		if err := router.Run(addr); err != nil {
			return fmt.Errorf("dashboard server: %w", err)
		}
		return nil
	},
}
