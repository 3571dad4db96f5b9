package main

import (
	"fmt"
	"strings"

	"melio/internal/model"
	"melio/internal/service"

	"github.com/spf13/cobra"
)

var (
	diaryMood  string
	diaryColor string
	diaryCover string
	diaryTags  []string
)

var diaryCmd = &cobra.Command{
	Use:   "diary",
	Short: "Private mood journal",
}

func init() {
	diaryAddCmd.Flags().StringVar(&diaryMood, "mood", string(model.MoodNeutral), "mood: very-sad|sad|neutral|happy|very-happy")
	diaryAddCmd.Flags().StringVar(&diaryColor, "color", "", "entry color id")
	diaryAddCmd.Flags().StringVar(&diaryCover, "cover", "", "cover image id")
	diaryAddCmd.Flags().StringSliceVar(&diaryTags, "tags", nil, "tag ids")
	diaryEditCmd.Flags().StringVar(&diaryMood, "mood", string(model.MoodNeutral), "mood: very-sad|sad|neutral|happy|very-happy")
	diaryEditCmd.Flags().StringVar(&diaryColor, "color", "", "entry color id")
	diaryEditCmd.Flags().StringVar(&diaryCover, "cover", "", "cover image id")
	diaryEditCmd.Flags().StringSliceVar(&diaryTags, "tags", nil, "tag ids")
	diaryCmd.AddCommand(diaryAddCmd, diaryEditCmd, diaryListCmd, diarySyncCmd, diaryDeleteCmd, diaryStreakCmd)
}

var diaryAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Write a journal entry",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireUser(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		mood := model.Mood(diaryMood)
		if !mood.Valid() {
			return fmt.Errorf("unknown mood %q", diaryMood)
		}

		entry, err := a.diary.AddEntry(cmd.Context(), strings.Join(args, " "), mood, service.EntryOptions{
			Color:      diaryColor,
			CoverImage: diaryCover,
			TagIDs:     diaryTags,
		})
		if err != nil {
			return err
		}

		if msg := a.diary.SyncError(); msg != "" {
			fmt.Println(msg)
		} else {
			fmt.Printf("Entrée enregistrée (%s).\n", entry.ID)
			if entry.AISummary != "" {
				fmt.Println("Mélio: " + entry.AISummary)
			}
			if entry.AIAdvice != "" {
				fmt.Println("Conseil: " + entry.AIAdvice)
			}
		}
		return nil
	},
}

var diaryEditCmd = &cobra.Command{
	Use:   "edit <entry-id> <text>",
	Short: "Rewrite a journal entry",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireUser(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		mood := model.Mood(diaryMood)
		if !mood.Valid() {
			return fmt.Errorf("unknown mood %q", diaryMood)
		}

		a.diary.Activate(cmd.Context())
		err = a.diary.UpdateEntry(cmd.Context(), args[0], strings.Join(args[1:], " "), mood, service.EntryOptions{
			Color:      diaryColor,
			CoverImage: diaryCover,
			TagIDs:     diaryTags,
		})
		if err != nil {
			return err
		}
		if msg := a.diary.SyncError(); msg != "" {
			fmt.Println(msg)
		} else {
			fmt.Println("Entrée mise à jour.")
		}
		return nil
	},
}

var diaryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List journal entries, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireUser(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		a.diary.Activate(cmd.Context())
		user := a.auth.CurrentUser()
		entries := a.diary.UserEntries(user.ID)
		if len(entries) == 0 {
			fmt.Println("Ton journal est vide. Écris ta première entrée avec: melio diary add")
			return nil
		}
		for _, e := range entries {
			marker := ""
			if !e.Synced {
				marker = " (non synchronisée)"
			}
			fmt.Printf("%s  %s  [%s]%s\n  %s\n", e.ID, e.Timestamp.Format("2006-01-02 15:04"), e.Mood, marker, e.Content)
		}
		if msg := a.diary.SyncError(); msg != "" {
			fmt.Println(msg)
		}
		return nil
	},
}

var diarySyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull the journal from the backend",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireUser(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		a.diary.Activate(cmd.Context())
		if msg := a.diary.SyncError(); msg != "" {
			fmt.Println(msg)
			return nil
		}
		fmt.Println("Journal synchronisé.")
		return nil
	},
}

var diaryDeleteCmd = &cobra.Command{
	Use:   "delete <entry-id>",
	Short: "Remove an entry from this device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireUser(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		a.diary.DeleteEntry(args[0])
		fmt.Println("Entrée supprimée de cet appareil.")
		return nil
	},
}

var diaryStreakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show journaling streaks and badges",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := requireUser(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		a.diary.Activate(cmd.Context())
		user := a.auth.CurrentUser()
		p := a.stats.Progress(user.ID)
		fmt.Printf("Série actuelle: %d jour(s) | record: %d jour(s) | %d entrée(s)\n",
			p.CurrentStreak, p.BestStreak, p.TotalEntries)
		for _, badge := range a.stats.Achievements(user.ID) {
			state := " "
			if badge.Unlocked {
				state = "x"
			}
			fmt.Printf("[%s] %s %s: %s\n", state, badge.Icon, badge.Name, badge.Description)
		}
		return nil
	},
}
