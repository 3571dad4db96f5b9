package main

import (
	"fmt"
	"strings"

	"melio/internal/model"
	"melio/internal/risk"

	"github.com/spf13/cobra"
)

var chatMarkRead bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk with the Mélio companion",
}

func init() {
	chatHistoryCmd.Flags().BoolVar(&chatMarkRead, "mark-read", false, "mark bot replies as read")
	chatCmd.AddCommand(chatSendCmd, chatHistoryCmd, chatClearCmd, chatStatsCmd)
}

var chatSendCmd = &cobra.Command{
	Use:   "send <message>",
	Short: "Send a message to the chatbot",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireUser(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		content := strings.Join(args, " ")
		user := a.auth.CurrentUser()

		// The heuristic runs on the raw text before the send so an alert is
		// raised even when the backend call fails.
		_, level, raised := a.alerts.RaiseFromMessage(*user, content, "Conversation avec le chatbot Mélio")
		if raised {
			fmt.Printf("(signalement %s enregistré)\n", level)
		}

		temp := a.chat.AppendOptimistic(content)
		resp, err := a.chat.Send(cmd.Context(), content)
		if err != nil {
			a.chat.DropOptimistic(temp.ID)
			// Offline fallback: a canned supportive reply tuned to the tier.
			lvl, matched := risk.Classify(content)
			fmt.Println("Mélio: " + risk.Response(lvl, matched))
			return nil
		}
		a.chat.ResolveOptimistic(temp.ID, resp)
		fmt.Println("Mélio: " + resp.BotResponse.Content)
		return nil
	},
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent conversation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireUser(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.chat.Load(cmd.Context()); err != nil {
			fmt.Println(a.chat.Error())
			return nil
		}
		msgs := a.chat.Messages()
		if len(msgs) == 0 {
			fmt.Println("Pas encore de conversation. Écris à Mélio avec: melio chat send")
			return nil
		}
		for _, m := range msgs {
			who := "Toi"
			if m.Sender != model.SenderUser {
				who = "Mélio"
			}
			fmt.Printf("%s  %s: %s\n", m.CreatedAt.Format("15:04"), who, m.Content)
		}
		if n := a.chat.Unread(); n > 0 {
			fmt.Printf("%d réponse(s) non lue(s)\n", n)
		}
		if chatMarkRead {
			a.chat.MarkRead()
		}
		return nil
	},
}

var chatStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show conversation counters",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireUser(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.chat.Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Messages: %d (toi: %d, Mélio: %d)\n", stats.TotalMessages, stats.UserMessages, stats.BotMessages)
		if stats.LastActivity != nil {
			fmt.Printf("Dernière activité: %s\n", stats.LastActivity.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

var chatClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete the whole conversation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireUser(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.chat.ClearAll(cmd.Context()); err != nil {
			fmt.Println(a.chat.Error())
			return nil
		}
		fmt.Println("Conversation effacée.")
		return nil
	},
}
