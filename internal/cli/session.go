package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/funvibe/funpi/internal/backend"
	"github.com/funvibe/funpi/internal/config"
	"github.com/funvibe/funpi/internal/document"
	"github.com/funvibe/funpi/internal/pipeline"
	"github.com/funvibe/funpi/internal/prettyprinter"
	"github.com/funvibe/funpi/internal/term"
	"github.com/funvibe/funpi/internal/typesystem"
	"github.com/google/uuid"
)

// Session is everything a command needs, built once from the configuration.
type Session struct {
	Config  *config.Config
	Logger  *slog.Logger
	Checker *typesystem.Checker
	Backend backend.Backend
	Printer *prettyprinter.Printer
}

// NewSession wires the checker, backend and printer selected by cfg. Logs go
// to logOut; color is resolved against out.
func NewSession(cfg *config.Config, out, logOut io.Writer) (*Session, error) {
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: cfg.Level()})).
		With("run", uuid.NewString())

	eq, err := typesystem.EqualityByName(cfg.Equality)
	if err != nil {
		return nil, err
	}
	subst := term.Substituter{Policy: capturePolicy(cfg.Capture)}

	b, err := backend.New(cfg.Backend, subst)
	if err != nil {
		return nil, err
	}

	checker := typesystem.New(
		typesystem.WithEquality(eq),
		typesystem.WithSubstituter(subst),
		typesystem.WithLogger(logger),
	)

	color := cfg.Color == config.ColorAlways
	if f, ok := out.(*os.File); ok {
		color = prettyprinter.UseColor(cfg.Color, f)
	}

	logger.Debug("session ready",
		"equality", cfg.Equality,
		"capture", subst.Policy,
		"backend", b.Name(),
		"max_steps", cfg.MaxSteps,
		"config", cfg.FileUsed)

	return &Session{
		Config:  cfg,
		Logger:  logger,
		Checker: checker,
		Backend: b,
		Printer: prettyprinter.New(prettyprinter.WithColor(color)),
	}, nil
}

func capturePolicy(name string) term.CapturePolicy {
	if name == config.CaptureSkip {
		return term.CaptureSkip
	}
	return term.CaptureRename
}

// traceFunc receives every intermediate term of an evaluation.
type traceFunc func(entry string, step int, e term.Expr)

// Stage names accepted by Process.
const (
	stageCheck  = "check"
	stageEval   = "eval"
	stageVerify = "verify"
)

// Process reads path and runs it through the document stage followed by
// the named stages.
func (s *Session) Process(path string, stages []string, trace traceFunc) (*pipeline.PipelineContext, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	processors := []pipeline.Processor{
		&document.DocumentProcessor{Options: document.Options{Prelude: true}},
	}
	for _, stage := range stages {
		switch stage {
		case stageCheck:
			processors = append(processors, typesystem.NewCheckProcessor(s.Checker))
		case stageEval:
			exec := backend.NewExecutionProcessor(s.Backend, s.Config.MaxSteps)
			exec.Trace = trace
			processors = append(processors, exec)
		case stageVerify:
			processors = append(processors, typesystem.NewPreservationProcessor(s.Checker))
		default:
			return nil, fmt.Errorf("unknown stage %q", stage)
		}
	}

	ctx := pipeline.NewContext(path, source)
	ctx.Logger = s.Logger.With("file", path)
	return pipeline.New(processors...).Run(ctx), nil
}
