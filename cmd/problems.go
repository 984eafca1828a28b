package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/api"
	"github.com/abhisek/prepdeck/internal/practice"
)

var problemsCmd = &cobra.Command{
	Use:   "problems",
	Short: "List practice problems",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupCLI(cmd)
		if err != nil {
			return err
		}
		difficulty, _ := cmd.Flags().GetString("difficulty")
		tag, _ := cmd.Flags().GetString("tag")

		list, err := newClient(cfg, nil).ListProblems(cmd.Context(), api.ProblemFilter{Difficulty: difficulty, Tag: tag})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No problems found.")
			return nil
		}
		printProblems(out, list)
		return nil
	},
}

func printProblems(out io.Writer, list []api.ProblemSummary) {
	fmt.Fprintf(out, "%-24s  %-6s  %-32s  %s\n", "ID", "Level", "Title", "Tags")
	fmt.Fprintln(out, strings.Repeat("─", 80))
	for _, p := range list {
		fmt.Fprintf(out, "%-24s  %-6s  %-32s  %s\n",
			truncate(p.ID, 24), practice.DifficultyBadge(p.Difficulty), truncate(p.Title, 32), strings.Join(p.Tags, ", "))
	}
}

var problemCmd = &cobra.Command{
	Use:   "problem <id>",
	Short: "Show a problem with its test cases",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupCLI(cmd)
		if err != nil {
			return err
		}
		p, err := newClient(cfg, nil).GetProblem(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printProblem(cmd.OutOrStdout(), p)
		return nil
	},
}

func printProblem(out io.Writer, p *api.Problem) {
	fmt.Fprintf(out, "%s  [%s]\n", p.Title, practice.DifficultyBadge(p.Difficulty))
	if len(p.Tags) > 0 {
		fmt.Fprintf(out, "Tags:      %s\n", strings.Join(p.Tags, ", "))
	}
	if len(p.SolutionLanguages) > 0 {
		fmt.Fprintf(out, "Solutions: %s\n", strings.Join(p.SolutionLanguages, ", "))
	}
	if p.Description != "" {
		fmt.Fprintf(out, "\n%s\n", p.Description)
	}
	for i, tc := range p.TestCases {
		fmt.Fprintf(out, "\nCase %d\n  input:    %s\n  expected: %s\n", i+1, tc.Input, tc.ExpectedOutput)
	}
}

var solutionCmd = &cobra.Command{
	Use:   "solution <problem-id>",
	Short: "Print the reference solution of a problem",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupCLI(cmd)
		if err != nil {
			return err
		}
		lang, _ := cmd.Flags().GetString("lang")
		sol, err := newClient(cfg, nil).GetSolution(cmd.Context(), args[0], lang)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, sol.Code)
		if sol.Explanation != "" {
			fmt.Fprintf(out, "\n%s\n", sol.Explanation)
		}
		return nil
	},
}

var editorialCmd = &cobra.Command{
	Use:   "editorial <problem-id>",
	Short: "Print the editorial of a problem",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupCLI(cmd)
		if err != nil {
			return err
		}
		text, err := newClient(cfg, nil).GetEditorial(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <problem.yaml>",
	Short: "Import a problem with test cases and reference solutions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupCLI(cmd)
		if err != nil {
			return err
		}
		p, err := importFile(cmd.Context(), newClient(cfg, nil), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %q as %s\n", p.Title, p.ID)
		return nil
	},
}

type problemImporter interface {
	ImportProblem(ctx context.Context, p api.ProblemImport) (*api.Problem, error)
}

func importFile(ctx context.Context, c problemImporter, path string) (*api.Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	doc, err := practice.DecodeImport(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c.ImportProblem(ctx, doc)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func init() {
	problemsCmd.Flags().String("difficulty", "", "Filter by difficulty (easy, medium, hard)")
	problemsCmd.Flags().String("tag", "", "Filter by tag")
	solutionCmd.Flags().String("lang", practice.DefaultLanguage, "Solution language")
}
