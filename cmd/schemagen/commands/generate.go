package commands

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/erraggy/schemagen"
	"github.com/erraggy/schemagen/generator"
	"github.com/erraggy/schemagen/internal/cliutil"
	"github.com/erraggy/schemagen/parser"
)

// GenerateFlags contains flags for the generate command
type GenerateFlags struct {
	Output        string
	PackageName   string
	NoPointers    bool
	NoValidation  bool
	IncludeSchema bool
	Strict        bool
	NoWarnings    bool
	AutoTitle     bool
	Verbose       bool
}

// SetupGenerateFlags creates and configures a FlagSet for the generate command.
// Returns the FlagSet and a GenerateFlags struct with bound flag variables.
func SetupGenerateFlags() (*flag.FlagSet, *GenerateFlags) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := &GenerateFlags{}

	fs.StringVar(&flags.Output, "o", "", "output directory for generated files (required)")
	fs.StringVar(&flags.Output, "output", "", "output directory for generated files (required)")
	fs.StringVar(&flags.PackageName, "p", generator.DefaultPackageName, "Go package name for generated code")
	fs.StringVar(&flags.PackageName, "package", generator.DefaultPackageName, "Go package name for generated code")
	fs.BoolVar(&flags.NoPointers, "no-pointers", false, "don't use pointer types for optional fields")
	fs.BoolVar(&flags.NoValidation, "no-validation", false, "don't include validation tags")
	fs.BoolVar(&flags.IncludeSchema, "schema", false, "also write schema.json with the normalized schema")
	fs.BoolVar(&flags.Strict, "strict", false, "fail on any generation issues (even warnings)")
	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress info messages")
	fs.BoolVar(&flags.AutoTitle, "auto-title", false, "name untitled object schemas after their location")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log parsing and generation details to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schemagen generate [flags] <file|->\n\n")
		Writef(fs.Output(), "Generate Go types from a JSON Schema.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  schemagen generate -o ./petstore -p petstore pet.json\n")
		Writef(fs.Output(), "  schemagen generate --schema --no-pointers -o ./models schema.yaml\n")
		Writef(fs.Output(), "  cat schema.json | schemagen generate -o ./models -\n")
		Writef(fs.Output(), "\nNotes:\n")
		Writef(fs.Output(), "  - Every object schema becomes a struct, declared after the structs it uses\n")
		Writef(fs.Output(), "  - Object schemas need a title unless --auto-title is set\n")
	}

	return fs, flags
}

// HandleGenerate executes the generate command
func HandleGenerate(args []string) error {
	fs, flags := SetupGenerateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("generate command requires exactly one file path or '-' for stdin")
	}
	schemaPath := fs.Arg(0)

	if flags.Output == "" {
		fs.Usage()
		return fmt.Errorf("output directory is required (use -o or --output)")
	}

	startTime := time.Now()
	parseResult, err := LoadSchema(schemaPath, SchemaOptions{AutoTitle: flags.AutoTitle, Verbose: flags.Verbose})
	if err != nil {
		return err
	}

	opts := []generator.Option{
		generator.WithParsed(parseResult),
		generator.WithPackageName(flags.PackageName),
		generator.WithPointers(!flags.NoPointers),
		generator.WithValidation(!flags.NoValidation),
		generator.WithSchema(flags.IncludeSchema),
		generator.WithStrictMode(flags.Strict),
		generator.WithIncludeInfo(!flags.NoWarnings),
	}
	if logger := NewLogger(flags.Verbose); logger != nil {
		opts = append(opts, generator.WithLogger(logger))
	}
	result, err := generator.GenerateWithOptions(opts...)
	totalTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("generating code: %w", err)
	}

	Writef(stdout, "JSON Schema Code Generator\n")
	Writef(stdout, "==========================\n\n")
	Writef(stdout, "schemagen version: %s\n", schemagen.Version())
	Writef(stdout, "Schema: %s\n", FormatSchemaPath(schemaPath))
	Writef(stdout, "Source Size: %s\n", parser.FormatBytes(result.SourceSize))
	Writef(stdout, "Package: %s\n", result.PackageName)
	Writef(stdout, "Types: %d\n", len(result.GeneratedTypes))
	Writef(stdout, "Total Time: %v\n\n", totalTime)

	cliutil.WriteSection(stdout, "Generation Issues", result.Issues, generator.GenerateIssue.String)

	if err := result.WriteFiles(flags.Output); err != nil {
		return fmt.Errorf("writing files: %w", err)
	}

	cliutil.WriteSection(stdout, "Generated Files", result.Files, func(f generator.GeneratedFile) string {
		return fmt.Sprintf("- %s/%s (%d bytes)", flags.Output, f.Name, len(f.Content))
	})

	if !result.Success {
		Writef(stdout, "✗ Generation completed with %d critical issue(s)\n", result.CriticalCount)
		return fmt.Errorf("generation failed with %d critical issue(s)", result.CriticalCount)
	}
	Writef(stdout, "✓ Generation successful")
	if result.InfoCount > 0 || result.WarningCount > 0 {
		Writef(stdout, " (%d info, %d warnings)", result.InfoCount, result.WarningCount)
	}
	Writef(stdout, "\n")
	return nil
}
