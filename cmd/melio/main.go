// Package main implements the melio CLI: the student companion app
// (journal, chat, reports, library) and the staff alert dashboard.
package main

import (
	"fmt"
	"os"

	"melio/internal/api"
	"melio/internal/config"
	"melio/internal/logger"
	"melio/internal/service"
	"melio/internal/storage"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "melio",
	Short:   "Melio student companion",
	Long:    "melio is the Melio companion for students: a private mood journal,\na supportive chatbot, incident reporting and a staff alert dashboard.",
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
	rootCmd.AddCommand(diaryCmd, chatCmd, reportCmd, libraryCmd)
	rootCmd.AddCommand(alertsCmd, dashboardCmd)
}

// app wires config, the device store, the API client and the stores the way
// a session does: storage first, then the session, then the client that
// reads its tokens.
type app struct {
	cfg     *config.Config
	store   storage.Store
	client  *api.Client
	auth    *service.AuthService
	diary   *service.DiaryService
	chat    *service.ChatService
	alerts  *service.AlertService
	reports *service.ReportService
	library *service.LibraryService
	stats   *service.StatsService
}

func newApp() (*app, error) {
	cfg := config.Load(cfgFile)
	logger.Init(cfg.Log)

	store, err := storage.Open(cfg.StorePath())
	if err != nil {
		return nil, fmt.Errorf("open device store: %w", err)
	}

	auth := service.NewAuthService(store)
	client := api.NewClient(cfg.API.BaseURL, cfg.APITimeout(), auth)
	auth.SetClient(client)

	diary := service.NewDiaryService(store, client, auth)
	a := &app{
		cfg:     cfg,
		store:   store,
		client:  client,
		auth:    auth,
		diary:   diary,
		chat:    service.NewChatService(store, client, auth, cfg.TypingDelay()),
		alerts:  service.NewAlertService(store),
		reports: service.NewReportService(client, auth),
		library: service.NewLibraryService(),
		stats:   service.NewStatsService(store, diary),
	}
	return a, nil
}

func (a *app) Close() {
	a.store.Close()
}

// requireUser loads the app and restores the session, failing the command
// when nobody is logged in.
func requireUser(cmd *cobra.Command) (*app, error) {
	a, err := newApp()
	if err != nil {
		return nil, err
	}
	user, err := a.auth.Restore(cmd.Context())
	if err != nil || user == nil {
		a.Close()
		return nil, fmt.Errorf("not logged in (run: melio login <school-code> <student-id>)")
	}
	return a, nil
}
