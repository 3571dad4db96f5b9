package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var libraryCategory string

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Browse the peer-support library",
}

func init() {
	libraryListCmd.Flags().StringVar(&libraryCategory, "category", "all", "bullying|emotions|friendship|self-esteem|help|all")
	libraryCmd.AddCommand(libraryListCmd, libraryShowCmd)
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List resources",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// The catalog ships with the app, no session needed.
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		resources := a.library.Resources(libraryCategory)
		if len(resources) == 0 {
			fmt.Println("Aucune ressource dans cette catégorie.")
			return nil
		}
		for _, r := range resources {
			fmt.Printf("%s  [%s] %s (%s)\n", r.ID, a.library.CategoryLabel(r.Category), r.Title, r.Type)
		}
		return nil
	},
}

var libraryShowCmd = &cobra.Command{
	Use:   "show <resource-id>",
	Short: "Show one resource",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		r, ok := a.library.Resource(args[0])
		if !ok {
			return fmt.Errorf("ressource %q introuvable", args[0])
		}
		fmt.Printf("%s (%s)\n", r.Title, a.library.CategoryLabel(r.Category))
		fmt.Println(r.Description)
		if r.Duration != "" {
			fmt.Printf("Durée: %s\n", r.Duration)
		}
		fmt.Printf("Par %s | note %.1f | %d vues\n", r.Author, r.Rating, r.Views)
		return nil
	},
}
