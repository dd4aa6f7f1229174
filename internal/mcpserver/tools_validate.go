package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/schemagen/internal/issues"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type validateInput struct {
	Schema     schemaInput   `json:"schema"               jsonschema:"The JSON Schema to validate against"`
	Instance   instanceInput `json:"instance"             jsonschema:"The data to validate"`
	Definition string        `json:"definition,omitempty" jsonschema:"Validate against this entry of definitions/$defs instead of the root"`
	Offset     int           `json:"offset,omitempty"     jsonschema:"Skip the first N errors (for pagination)"`
	Limit      int           `json:"limit,omitempty"      jsonschema:"Maximum number of errors to return (default 100)"`
}

type validateOutput struct {
	Valid      bool          `json:"valid"`
	Target     string        `json:"target,omitempty"`
	ErrorCount int           `json:"error_count"`
	Returned   int           `json:"returned"`
	Errors     []issueOutput `json:"errors,omitempty"`
	Value      any           `json:"value,omitempty"`
}

func handleValidate(_ context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	parseResult, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	target := parseResult.Root
	if input.Definition != "" {
		def, ok := parseResult.Definition(input.Definition)
		if !ok {
			return errResult(fmt.Errorf("definition %q not found", input.Definition)), validateOutput{}, nil
		}
		target = def
	}

	value, err := input.Instance.decode()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	output := validateOutput{Target: target.Name()}
	constructed, err := target.Call(value)
	if err == nil {
		output.Valid = true
		output.Value = constructed
		return nil, output, nil
	}

	all := toIssueOutputs(issues.FromError(err))
	output.ErrorCount = len(all)
	output.Errors = paginate(all, input.Offset, input.Limit)
	output.Returned = len(output.Errors)
	return nil, output, nil
}
