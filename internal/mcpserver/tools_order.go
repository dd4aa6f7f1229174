package mcpserver

import (
	"context"

	"github.com/erraggy/schemagen/orderer"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type orderInput struct {
	Schema schemaInput `json:"schema" jsonschema:"The JSON Schema whose object schemas are ordered"`
}

type orderedType struct {
	Name      string   `json:"name"`
	DependsOn []string `json:"depends_on,omitempty"`
}

type orderOutput struct {
	Cyclic bool          `json:"cyclic"`
	Cycle  string        `json:"cycle,omitempty"`
	Count  int           `json:"count"`
	Types  []orderedType `json:"types"`
}

func handleOrder(_ context.Context, _ *mcp.CallToolRequest, input orderInput) (*mcp.CallToolResult, orderOutput, error) {
	parseResult, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), orderOutput{}, nil
	}

	var output orderOutput
	roots := parseResult.Elements()
	objects, err := orderer.Order(roots...)
	if err != nil {
		output.Cyclic = true
		output.Cycle = err.Error()
		objects = orderer.Objects(roots...)
	}

	output.Count = len(objects)
	output.Types = makeSlice[orderedType](len(objects))
	for _, obj := range objects {
		var deps []string
		for _, d := range orderer.Dependencies(obj) {
			if d != obj.Name() {
				deps = append(deps, d)
			}
		}
		output.Types = append(output.Types, orderedType{Name: obj.Name(), DependsOn: deps})
	}
	return nil, output, nil
}
