// Package cli provides the command-line interface for funpi.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/funvibe/funpi/internal/config"
	"github.com/spf13/cobra"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// sessionKey is used to store the session in the command context.
type sessionKey struct{}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "funpi",
		Short: "funpi - a small dependently typed lambda calculus",
		Long: `funpi type checks and evaluates terms of a minimal dependently typed
lambda calculus with Pi types, one universe and natural numbers with an
eliminator. Terms are read from YAML documents.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			s, err := NewSession(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cmd.SetContext(context.WithValue(cmd.Context(), sessionKey{}, s))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./"+config.ConfigFileName+")")
	pf.String("equality", "", "type equality (syntactic|alpha|definitional)")
	pf.String("capture", "", "substitution capture policy (rename|skip)")
	pf.String("backend", "", "evaluation backend (stack|tree)")
	pf.Int("max-steps", 0, "evaluation step budget, 0 for unbounded")
	pf.String("color", "", "colorize output (auto|always|never)")
	pf.String("log-level", "", "log level (debug|info|warn|error)")

	completions := map[string][]string{
		"equality":  {config.EqualitySyntactic, config.EqualityAlpha, config.EqualityDefinitional},
		"capture":   {config.CaptureRename, config.CaptureSkip},
		"backend":   {config.BackendStack, config.BackendTree},
		"color":     {config.ColorAuto, config.ColorAlways, config.ColorNever},
		"log-level": {"debug", "info", "warn", "error"},
	}
	for flag, values := range completions {
		_ = rootCmd.RegisterFlagCompletionFunc(flag, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			return values, cobra.ShellCompDirectiveNoFileComp
		})
	}

	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewEvalCommand())
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewPreludeCommand())
	rootCmd.AddCommand(NewVersionCommand(Version, GitCommit))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// GetSession retrieves the session from the command context.
func GetSession(ctx context.Context) *Session {
	if s, ok := ctx.Value(sessionKey{}).(*Session); ok {
		return s
	}
	return nil
}

func sessionFrom(cmd *cobra.Command) (*Session, error) {
	if s := GetSession(cmd.Context()); s != nil {
		return s, nil
	}
	cfg, err := config.Load("", nil)
	if err != nil {
		return nil, err
	}
	return NewSession(cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
