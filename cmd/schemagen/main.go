package main

import (
	"fmt"
	"io"
	"os"

	"github.com/erraggy/schemagen"
	"github.com/erraggy/schemagen/cmd/schemagen/commands"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}

	var handler func([]string) error
	switch command := args[0]; command {
	case "version", "-v", "--version":
		commands.Writef(stdout, "schemagen %s\n", schemagen.Version())
		if len(args) > 1 && args[1] == "--verbose" {
			commands.Writef(stdout, "%s\n", schemagen.BuildInfo())
		}
		return 0
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	case "generate":
		handler = commands.HandleGenerate
	case "validate":
		handler = commands.HandleValidate
	case "serialize":
		handler = commands.HandleSerialize
	case "order":
		handler = commands.HandleOrder
	case "mcp":
		handler = commands.HandleMCP
	default:
		commands.Writef(stderr, "Unknown command: %s\n\n", command)
		printUsage(stderr)
		return 1
	}

	if err := handler(args[1:]); err != nil {
		commands.Writef(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	_, _ = fmt.Fprint(w, `schemagen - JSON Schema compiler

Usage:
  schemagen <command> [options]

Commands:
  generate    Generate Go types from a JSON Schema
  validate    Validate JSON or YAML data against a JSON Schema
  serialize   Write a JSON Schema back as a normalized document
  order       List object schemas in declaration order
  mcp         Serve the tools above over MCP on stdio
  version     Show version information
  help        Show this help message

Examples:
  schemagen generate -o ./petstore -p petstore pet.json
  schemagen validate pet.json rex.json
  schemagen serialize --format yaml pet.json
  schemagen order store.yaml

Run 'schemagen <command> --help' for more information on a command.
`)
}
