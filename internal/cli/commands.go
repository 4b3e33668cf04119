package cli

import (
	"fmt"

	"github.com/funvibe/funpi/internal/prelude"
	"github.com/funvibe/funpi/internal/term"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Type check the terms of a document",
		Long: `Infer the type of every term in each document under the document's
context. Terms with a declared type must match it.`,
		Example: `  funpi check examples/identity.yaml
  funpi check --equality definitional examples/arith.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			return s.processFiles(cmd.OutOrStdout(), args, []string{stageCheck}, reportOptions{Type: true}, nil)
		},
	}
}

// NewEvalCommand creates the eval command.
func NewEvalCommand() *cobra.Command {
	var trace bool

	cmd := &cobra.Command{
		Use:   "eval <file>...",
		Short: "Evaluate the terms of a document",
		Long: `Reduce every term in each document to normal form without type
checking it first. Terms with a declared normal form must reach it.`,
		Example: `  funpi eval examples/arith.yaml
  funpi eval --trace --max-steps 50 examples/arith.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			var tf traceFunc
			if trace {
				out := cmd.OutOrStdout()
				tf = func(entry string, step int, e term.Expr) {
					_, _ = fmt.Fprintf(out, "%s %4d  %s\n", entry, step, s.Printer.Print(e))
				}
			}
			return s.processFiles(cmd.OutOrStdout(), args, []string{stageEval}, reportOptions{Normal: true}, tf)
		},
	}

	cmd.Flags().BoolVar(&trace, "trace", false, "print every reduction step")
	return cmd
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "run <file>...",
		Short: "Type check and evaluate the terms of a document",
		Long: `Type check every term, then evaluate the well-typed ones. Declared
types and normal forms are compared with the results. With --verify the
normal form is checked again and must keep the original type.`,
		Example: `  funpi run examples/arith.yaml
  funpi run --verify --equality definitional examples/arith.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			stages := []string{stageCheck, stageEval}
			if verify {
				stages = append(stages, stageVerify)
			}
			return s.processFiles(cmd.OutOrStdout(), args, stages, reportOptions{Type: true, Normal: true}, nil)
		},
	}

	cmd.Flags().BoolVar(&verify, "verify", false, "check that evaluation preserves types")
	return cmd
}

// NewPreludeCommand creates the prelude command.
func NewPreludeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prelude",
		Short: "List the prelude terms",
		Long: `List the terms available to documents through ref, with their types
under the configured equality.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			entries := prelude.Entries()
			width := lo.Max(lo.Map(entries, func(e prelude.Entry, _ int) int { return len(e.Name) }))
			out := cmd.OutOrStdout()
			for _, e := range entries {
				typ := "ill-typed under " + s.Config.Equality + " equality"
				if t, ok := s.Checker.TypeCheck(nil, e.Term); ok {
					typ = s.Printer.Print(t)
				}
				_, _ = fmt.Fprintf(out, "%-*s  %s\n%-*s    : %s\n", width, e.Name, e.Doc, width, "", typ)
			}
			return nil
		},
	}
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, commit string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display funpi version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "funpi v%s (%s)\n", version, commit)
		},
	}
}
