package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/erraggy/schemagen/internal/fileutil"
	"github.com/erraggy/schemagen/internal/pathutil"
	"github.com/erraggy/schemagen/parser"
	"github.com/erraggy/schemagen/serializer"
)

// SerializeFlags contains flags for the serialize command
type SerializeFlags struct {
	Output    string
	Format    string
	Verify    bool
	AutoTitle bool
	Verbose   bool
}

// SetupSerializeFlags creates and configures a FlagSet for the serialize command.
// Returns the FlagSet and a SerializeFlags struct with bound flag variables.
func SetupSerializeFlags() (*flag.FlagSet, *SerializeFlags) {
	fs := flag.NewFlagSet("serialize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := &SerializeFlags{}

	fs.StringVar(&flags.Output, "o", "", "output file (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file (default: stdout)")
	fs.StringVar(&flags.Format, "format", FormatJSON, "output format: json or yaml")
	fs.BoolVar(&flags.Verify, "verify", false, "check that the output resolves in an independent draft-07 validator")
	fs.BoolVar(&flags.AutoTitle, "auto-title", false, "name untitled object schemas after their location")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log parsing details to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schemagen serialize [flags] <file|->\n\n")
		Writef(fs.Output(), "Compile a JSON Schema and write it back as a normalized draft-07 document.\n")
		Writef(fs.Output(), "Object schemas move under definitions and are referenced with $ref.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  schemagen serialize pet.yaml\n")
		Writef(fs.Output(), "  schemagen serialize --format yaml -o normalized.yaml pet.json\n")
		Writef(fs.Output(), "  schemagen serialize --verify pet.json\n")
	}

	return fs, flags
}

// HandleSerialize executes the serialize command
func HandleSerialize(args []string) error {
	fs, flags := SetupSerializeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("serialize command requires exactly one file path or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format, FormatJSON, FormatYAML); err != nil {
		return err
	}
	schemaPath := fs.Arg(0)

	parseResult, err := LoadSchema(schemaPath, SchemaOptions{AutoTitle: flags.AutoTitle, Verbose: flags.Verbose})
	if err != nil {
		return err
	}

	marshal := serializer.MarshalJSON
	if flags.Format == FormatYAML {
		marshal = serializer.MarshalYAML
	}
	data, err := marshal(parseResult.Elements()...)
	if err != nil {
		return fmt.Errorf("serializing schema: %w", err)
	}
	if flags.Verify {
		if err := verifyOutput(parseResult, data, flags.Format); err != nil {
			return err
		}
	}

	if flags.Output == "" {
		Writef(stdout, "%s", data)
		return nil
	}
	if schemaPath != StdinFilePath && sameFile(flags.Output, schemaPath) {
		return fmt.Errorf("output file %s would overwrite input file %s", flags.Output, schemaPath)
	}
	target, err := pathutil.SanitizeOutputPath(flags.Output)
	if err != nil {
		return err
	}
	if err := fileutil.WriteSchema(target, data); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	OutputSchemaHeader(schemaPath, parseResult)
	Writef(stderr, "Output: %s\n", target)
	return nil
}

// verifyOutput resolves the serialized document with an independent
// draft-07 implementation. YAML output is checked through its JSON twin.
func verifyOutput(res *parser.ParseResult, data []byte, format string) error {
	if format == FormatYAML {
		var err error
		if data, err = serializer.MarshalJSON(res.Elements()...); err != nil {
			return fmt.Errorf("serializing schema: %w", err)
		}
	}
	if _, err := serializer.Verify(data); err != nil {
		return fmt.Errorf("verifying output: %w", err)
	}
	Writef(stderr, "Verified: output resolves as a draft-07 schema\n")
	return nil
}

// sameFile reports whether a and b name the same existing file.
func sameFile(a, b string) bool {
	ia, errA := os.Stat(a)
	ib, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(ia, ib)
}
