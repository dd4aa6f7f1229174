package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/erraggy/schemagen/document"
	"github.com/erraggy/schemagen/element"
	"github.com/erraggy/schemagen/internal/issues"
	"github.com/erraggy/schemagen/parser"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	Definition string
	Format     string
	Quiet      bool
	AutoTitle  bool
	Verbose    bool
}

// ValidateOutput is the structured result of the validate command.
type ValidateOutput struct {
	Valid  bool          `json:"valid"            yaml:"valid"`
	Target string        `json:"target"           yaml:"target"`
	Errors []ErrorOutput `json:"errors,omitempty" yaml:"errors,omitempty"`
	Value  any           `json:"value,omitempty"  yaml:"value,omitempty"`
}

// ErrorOutput is one validation failure.
type ErrorOutput struct {
	Path    string `json:"path"              yaml:"path"`
	Keyword string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
	Message string `json:"message"           yaml:"message"`
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := &ValidateFlags{}

	fs.StringVar(&flags.Definition, "d", "", "validate against this entry of definitions/$defs instead of the root")
	fs.StringVar(&flags.Definition, "definition", "", "validate against this entry of definitions/$defs instead of the root")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.Quiet, "q", false, "quiet mode: only set the exit code")
	fs.BoolVar(&flags.Quiet, "quiet", false, "quiet mode: only set the exit code")
	fs.BoolVar(&flags.AutoTitle, "auto-title", false, "name untitled object schemas after their location")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log parsing details to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schemagen validate [flags] <schema> <data|->\n\n")
		Writef(fs.Output(), "Validate a JSON or YAML data file against a JSON Schema.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExamples:\n")
		Writef(fs.Output(), "  schemagen validate pet.json rex.json\n")
		Writef(fs.Output(), "  schemagen validate -d Pet store.json rex.yaml\n")
		Writef(fs.Output(), "  curl -s https://example.com/pets/1 | schemagen validate --format json pet.json -\n")
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Data is valid\n")
		Writef(fs.Output(), "  1    Data is invalid or could not be read\n")
	}

	return fs, flags
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return fmt.Errorf("validate command requires a schema path and a data path or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format, FormatText, FormatJSON, FormatYAML); err != nil {
		return err
	}
	schemaPath, dataPath := fs.Arg(0), fs.Arg(1)
	if schemaPath == StdinFilePath {
		return fmt.Errorf("the schema cannot be read from stdin; pass the data as '-' instead")
	}

	parseResult, err := LoadSchema(schemaPath, SchemaOptions{AutoTitle: flags.AutoTitle, Verbose: flags.Verbose})
	if err != nil {
		return err
	}
	target, err := validationTarget(parseResult, flags.Definition)
	if err != nil {
		return err
	}
	data, err := readData(dataPath)
	if err != nil {
		return err
	}
	value, err := document.DecodeInstance(data)
	if err != nil {
		return fmt.Errorf("decoding data: %w", err)
	}

	constructed, callErr := target.Call(value)
	output := ValidateOutput{Valid: callErr == nil, Target: target.Name()}
	if callErr == nil {
		output.Value = plainValue(constructed)
	}
	found := issues.FromError(callErr)
	for _, i := range found {
		output.Errors = append(output.Errors, ErrorOutput{Path: i.Path, Keyword: i.Keyword, Message: i.Message})
	}

	if !flags.Quiet {
		if flags.Format == FormatText {
			writeValidateText(FormatSchemaPath(dataPath), output, found)
		} else if err := OutputStructured(output, flags.Format); err != nil {
			return err
		}
	}

	if !output.Valid {
		return fmt.Errorf("validation failed with %d error(s)", len(output.Errors))
	}
	return nil
}

// validationTarget returns the root, or the named definition.
func validationTarget(res *parser.ParseResult, definition string) (*element.Element, error) {
	if definition == "" {
		return res.Root, nil
	}
	def, ok := res.Definition(definition)
	if !ok {
		return nil, fmt.Errorf("definition %q not found; available: %v", definition, res.DefinitionNames)
	}
	return def, nil
}

func readData(path string) ([]byte, error) {
	if path == StdinFilePath {
		data, err := io.ReadAll(io.LimitReader(stdin, parser.DefaultMaxFileSize+1))
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		if int64(len(data)) > parser.DefaultMaxFileSize {
			return nil, fmt.Errorf("data exceeds limit of %s", parser.FormatBytes(parser.DefaultMaxFileSize))
		}
		return data, nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by the user
	if err != nil {
		return nil, fmt.Errorf("reading data: %w", err)
	}
	return data, nil
}

func writeValidateText(dataPath string, output ValidateOutput, found []issues.Issue) {
	if output.Valid {
		Writef(stdout, "✓ %s is a valid %s\n", dataPath, output.Target)
		return
	}
	Writef(stdout, "✗ %s is not a valid %s (%d error(s)):\n", dataPath, output.Target, len(found))
	for _, i := range found {
		Writef(stdout, "  %s\n", i.String())
	}
}
