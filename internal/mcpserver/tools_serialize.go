package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/schemagen/serializer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type serializeInput struct {
	Schema schemaInput `json:"schema"           jsonschema:"The JSON Schema to normalize"`
	Format string      `json:"format,omitempty" jsonschema:"Output format: json (default) or yaml"`
}

type serializeOutput struct {
	Format   string `json:"format"`
	Document string `json:"document"`
}

func handleSerialize(_ context.Context, _ *mcp.CallToolRequest, input serializeInput) (*mcp.CallToolResult, serializeOutput, error) {
	format := input.Format
	if format == "" {
		format = "json"
	}
	marshal := serializer.MarshalJSON
	switch format {
	case "json":
	case "yaml":
		marshal = serializer.MarshalYAML
	default:
		return errResult(fmt.Errorf("invalid format %q; valid values: json, yaml", input.Format)), serializeOutput{}, nil
	}

	parseResult, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), serializeOutput{}, nil
	}
	data, err := marshal(parseResult.Elements()...)
	if err != nil {
		return errResult(err), serializeOutput{}, nil
	}
	return nil, serializeOutput{Format: format, Document: string(data)}, nil
}
