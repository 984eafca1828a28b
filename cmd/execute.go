package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepdeck/internal/api"
	"github.com/abhisek/prepdeck/internal/practice"
)

// errCasesFailed is returned by submit when at least one case failed, so
// the process exits non-zero.
var errCasesFailed = errors.New("submission did not pass")

type executor interface {
	GetProblem(ctx context.Context, id string) (*api.Problem, error)
	Execute(ctx context.Context, req api.ExecutionRequest) (*api.ExecutionResult, error)
}

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a source file with custom input",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupCLI(cmd)
		if err != nil {
			return err
		}
		lang, _ := cmd.Flags().GetString("lang")
		stdin, _ := cmd.Flags().GetString("stdin")
		if stdinFile, _ := cmd.Flags().GetString("stdin-file"); stdinFile != "" {
			data, err := os.ReadFile(stdinFile)
			if err != nil {
				return err
			}
			stdin = string(data)
		}
		s, err := runSource(cmd.Context(), newClient(cfg, nil), args[0], lang, stdin)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), s.Result)
		return nil
	},
}

var submitCmd = &cobra.Command{
	Use:   "submit <problem-id> <file>",
	Short: "Judge a source file against a problem's test cases",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setupCLI(cmd)
		if err != nil {
			return err
		}
		lang, _ := cmd.Flags().GetString("lang")
		s, err := submitSource(cmd.Context(), newClient(cfg, nil), args[0], args[1], lang)
		if err != nil {
			return err
		}
		printResult(cmd.OutOrStdout(), s.Result)
		return verdict(s.Result)
	},
}

// verdict maps a finished submission to the command's exit error.
func verdict(r practice.Result) error {
	if !r.Accepted() {
		return errCasesFailed
	}
	return nil
}

// sourceSession reads path into a session using lang, or the language of
// the file extension when lang is empty.
func sourceSession(s *practice.Session, path, lang string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if lang == "" {
		lang = practice.LanguageForFile(path)
	}
	if lang == "" {
		return fmt.Errorf("cannot tell the language of %s, use --lang", path)
	}
	s.SwitchLanguage(lang)
	s.SetCode(string(data))
	return nil
}

func runSource(ctx context.Context, c executor, path, lang, stdin string) (*practice.Session, error) {
	s := practice.NewSession()
	if err := sourceSession(s, path, lang); err != nil {
		return nil, err
	}
	s.CustomInput = stdin
	req, err := s.BeginRun()
	if err != nil {
		return nil, err
	}
	return s, execute(ctx, c, s, req)
}

func submitSource(ctx context.Context, c executor, problemID, path, lang string) (*practice.Session, error) {
	p, err := c.GetProblem(ctx, problemID)
	if err != nil {
		return nil, err
	}
	s := practice.NewSession()
	s.LoadProblem(p)
	if err := sourceSession(s, path, lang); err != nil {
		return nil, err
	}
	req, _, err := s.BeginSubmit()
	if err != nil {
		return nil, err
	}
	return s, execute(ctx, c, s, req)
}

func execute(ctx context.Context, c executor, s *practice.Session, req api.ExecutionRequest) error {
	res, err := c.Execute(ctx, req)
	if err != nil {
		s.Fail(err)
		return err
	}
	s.Complete(res)
	return nil
}

func printResult(out io.Writer, r practice.Result) {
	fmt.Fprintf(out, "Status: %s", r.Status)
	if r.ExecutionTime != "" {
		fmt.Fprintf(out, "  time %s", r.ExecutionTime)
	}
	if r.Memory != "" {
		fmt.Fprintf(out, "  memory %s", r.Memory)
	}
	fmt.Fprintln(out)

	if len(r.Rows) > 0 {
		fmt.Fprintf(out, "\n%s  %d/%d\n", practice.Overall(r.Rows), practice.PassedCount(r.Rows), len(r.Rows))
		if r.Correlated < len(r.Rows) {
			fmt.Fprintf(out, "%d/%d cases correlated with known inputs\n", r.Correlated, len(r.Rows))
		}
		fmt.Fprintln(out, strings.Repeat("─", 60))
		for _, row := range r.Rows {
			mark := "✓"
			if !row.Passed {
				mark = "✗"
			}
			fmt.Fprintf(out, "%s case %s  input %q\n", mark, row.ID, row.Input)
			if !row.Passed {
				fmt.Fprintf(out, "    expected %q\n    actual   %q\n", row.Expected, row.Actual)
			}
		}
	}
	if len(r.Rows) == 0 && r.Passed != nil {
		badge := practice.BadgeFailed
		if *r.Passed {
			badge = practice.BadgePassed
		}
		fmt.Fprintf(out, "\n%s\n", badge)
	}
	if r.Stdout != "" {
		fmt.Fprintf(out, "\nstdout:\n%s\n", r.Stdout)
	}
	if r.Stderr != "" {
		fmt.Fprintf(out, "\nstderr:\n%s\n", r.Stderr)
	}
}

func init() {
	runCmd.Flags().String("lang", "", "Language (python, cpp, java, go); guessed from the extension when empty")
	runCmd.Flags().String("stdin", "", "Program input")
	runCmd.Flags().String("stdin-file", "", "Read program input from a file")
	submitCmd.Flags().String("lang", "", "Language (python, cpp, java, go); guessed from the extension when empty")
}
