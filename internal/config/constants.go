package config

// DocumentExt is the preferred term document extension.
const DocumentExt = ".yaml"

// DocumentExtensions are all recognized term document extensions
var DocumentExtensions = []string{".yaml", ".yml"}

// ConfigFileName is the project configuration file looked up in the
// working directory.
const ConfigFileName = "funpi.yaml"

// EnvPrefix prefixes environment variables that override configuration.
const EnvPrefix = "FUNPI_"

// Binder names used when the checker builds the expected type of an
// eliminator's step function:
//
//	Pi(n : Nat, Pi(ih : motive n, motive (Succ n)))
const (
	StepBinder       = "n"
	HypothesisBinder = "ih"
)

// Names accepted by the configuration.
const (
	EqualitySyntactic    = "syntactic"
	EqualityAlpha        = "alpha"
	EqualityDefinitional = "definitional"

	CaptureRename = "rename"
	CaptureSkip   = "skip"

	BackendStack = "stack"
	BackendTree  = "tree"

	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// DefaultNormalizeSteps bounds the strong normalization performed by
// definitional equality.
const DefaultNormalizeSteps = 100000
