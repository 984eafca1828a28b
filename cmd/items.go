package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/api"
	"github.com/abhisek/prepdeck/internal/practice"
)

var itemsCmd = &cobra.Command{
	Use:   "items",
	Short: "Manage AI knowledge items on the backend",
}

var itemsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List knowledge items",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupCLI(cmd)
		if err != nil {
			return err
		}
		q := api.ItemQuery{}
		q.Q, _ = cmd.Flags().GetString("query")
		q.Tag, _ = cmd.Flags().GetString("tag")
		q.Difficulty, _ = cmd.Flags().GetString("difficulty")
		q.Page, _ = cmd.Flags().GetInt("page")
		q.PageSize, _ = cmd.Flags().GetInt("page-size")

		list, err := newClient(cfg, nil).ListItems(cmd.Context(), q)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No knowledge items found.")
			return nil
		}
		fmt.Fprintf(out, "%-36s  %-6s  %-40s  %s\n", "ID", "Level", "Question", "Tags")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, it := range list {
			fmt.Fprintf(out, "%-36s  %-6s  %-40s  %s\n",
				it.ID, practice.DifficultyBadge(it.Question.Difficulty),
				truncate(it.Question.Text, 40), strings.Join(it.Question.Tags, ", "))
		}
		return nil
	},
}

var itemsCreateCmd = &cobra.Command{
	Use:   "create <question>",
	Short: "Create a question and generate its knowledge item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupCLI(cmd)
		if err != nil {
			return err
		}
		tags, _ := cmd.Flags().GetStringSlice("tag")
		difficulty, _ := cmd.Flags().GetString("difficulty")

		fmt.Fprintln(cmd.ErrOrStderr(), "Generating...")
		it, err := newClient(cfg, nil).CreateAndGenerate(cmd.Context(), api.QuestionInput{
			Text:       args[0],
			Tags:       tags,
			Difficulty: difficulty,
		})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n\n%s\n", it.ID, it.Flashcard.Answer)
		for _, p := range it.Flashcard.Pitfalls {
			fmt.Fprintf(out, "  ! %s\n", p)
		}
		return nil
	},
}

var itemsDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete knowledge items",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupCLI(cmd)
		if err != nil {
			return err
		}
		c := newClient(cfg, nil)
		for _, id := range args {
			if err := c.DeleteItem(cmd.Context(), id); err != nil {
				return fmt.Errorf("delete %s: %w", id, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
		}
		return nil
	},
}

func init() {
	itemsListCmd.Flags().StringP("query", "q", "", "Search text")
	itemsListCmd.Flags().String("tag", "", "Filter by tag")
	itemsListCmd.Flags().String("difficulty", "", "Filter by difficulty (easy, medium, hard)")
	itemsListCmd.Flags().Int("page", 0, "Page number, starting at 1")
	itemsListCmd.Flags().Int("page-size", 0, "Items per page")

	itemsCreateCmd.Flags().StringSlice("tag", nil, "Tag, repeatable")
	itemsCreateCmd.Flags().String("difficulty", api.DifficultyMedium, "Difficulty (easy, medium, hard)")

	itemsCmd.AddCommand(itemsListCmd, itemsCreateCmd, itemsDeleteCmd)
}
