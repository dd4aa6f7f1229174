package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/schemagen/orderer"
)

// OrderFlags contains flags for the order command
type OrderFlags struct {
	Format    string
	AutoTitle bool
	Verbose   bool
}

// OrderOutput is the structured result of the order command.
type OrderOutput struct {
	Cyclic bool          `json:"cyclic"          yaml:"cyclic"`
	Cycle  string        `json:"cycle,omitempty" yaml:"cycle,omitempty"`
	Types  []OrderedType `json:"types"           yaml:"types"`
}

// OrderedType is one object schema and the objects it uses directly.
type OrderedType struct {
	Name      string   `json:"name"                 yaml:"name"`
	DependsOn []string `json:"depends_on,omitempty" yaml:"depends_on,omitempty"`
}

// SetupOrderFlags creates and configures a FlagSet for the order command.
// Returns the FlagSet and an OrderFlags struct with bound flag variables.
func SetupOrderFlags() (*flag.FlagSet, *OrderFlags) {
	fs := flag.NewFlagSet("order", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flags := &OrderFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, or yaml")
	fs.BoolVar(&flags.AutoTitle, "auto-title", false, "name untitled object schemas after their location")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log parsing details to stderr")

	fs.Usage = func() {
		Writef(fs.Output(), "Usage: schemagen order [flags] <file|->\n\n")
		Writef(fs.Output(), "List the object schemas of a JSON Schema in declaration order:\n")
		Writef(fs.Output(), "every object comes after the objects it uses.\n\n")
		Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		Writef(fs.Output(), "\nExit Codes:\n")
		Writef(fs.Output(), "  0    Objects were ordered\n")
		Writef(fs.Output(), "  1    Objects refer to each other in a cycle\n")
	}

	return fs, flags
}

// HandleOrder executes the order command
func HandleOrder(args []string) error {
	fs, flags := SetupOrderFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("order command requires exactly one file path or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format, FormatText, FormatJSON, FormatYAML); err != nil {
		return err
	}

	parseResult, err := LoadSchema(fs.Arg(0), SchemaOptions{AutoTitle: flags.AutoTitle, Verbose: flags.Verbose})
	if err != nil {
		return err
	}

	var output OrderOutput
	roots := parseResult.Elements()
	objects, orderErr := orderer.Order(roots...)
	if orderErr != nil {
		output.Cyclic = true
		output.Cycle = orderErr.Error()
		objects = orderer.Objects(roots...)
	}
	for _, obj := range objects {
		t := OrderedType{Name: obj.Name()}
		for _, dep := range orderer.Dependencies(obj) {
			if dep != obj.Name() {
				t.DependsOn = append(t.DependsOn, dep)
			}
		}
		output.Types = append(output.Types, t)
	}

	if flags.Format == FormatText {
		for i, t := range output.Types {
			Writef(stdout, "%d. %s", i+1, t.Name)
			if len(t.DependsOn) > 0 {
				Writef(stdout, " (uses %v)", t.DependsOn)
			}
			Writef(stdout, "\n")
		}
	} else if err := OutputStructured(output, flags.Format); err != nil {
		return err
	}

	if orderErr != nil {
		return fmt.Errorf("ordering objects: %w", orderErr)
	}
	return nil
}
