package mcpserver

import (
	"context"
	"fmt"

	"github.com/erraggy/schemagen/generator"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type generateInput struct {
	Schema        schemaInput `json:"schema"                   jsonschema:"The JSON Schema to generate code from"`
	PackageName   string      `json:"package_name,omitempty"   jsonschema:"Go package name for generated code (default: SCHEMAGEN_PACKAGE or schema)"`
	NoPointers    *bool       `json:"no_pointers,omitempty"    jsonschema:"Use value types for optional fields"`
	NoValidation  *bool       `json:"no_validation,omitempty"  jsonschema:"Omit validate struct tags"`
	IncludeSchema bool        `json:"include_schema,omitempty" jsonschema:"Also emit schema.json with the normalized schema"`
	OutputDir     string      `json:"output_dir,omitempty"     jsonschema:"Write generated files here instead of returning their content"`
}

type generatedFileInfo struct {
	Name    string `json:"name"`
	Size    int    `json:"size"`
	Content string `json:"content,omitempty"`
}

type generateOutput struct {
	Success        bool                `json:"success"`
	OutputDir      string              `json:"output_dir,omitempty"`
	PackageName    string              `json:"package_name"`
	Files          []generatedFileInfo `json:"files"`
	GeneratedTypes []string            `json:"generated_types,omitempty"`
	WarningCount   int                 `json:"warning_count"`
	CriticalCount  int                 `json:"critical_count"`
	Issues         []issueOutput       `json:"issues,omitempty"`
}

func handleGenerate(_ context.Context, _ *mcp.CallToolRequest, input generateInput) (*mcp.CallToolResult, generateOutput, error) {
	parseResult, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	usePointers := cfg.UsePointers
	if input.NoPointers != nil {
		usePointers = !*input.NoPointers
	}
	includeValidation := cfg.IncludeValidation
	if input.NoValidation != nil {
		includeValidation = !*input.NoValidation
	}
	packageName := cfg.PackageName
	if input.PackageName != "" {
		packageName = input.PackageName
	}

	result, err := generator.GenerateWithOptions(
		generator.WithParsed(parseResult),
		generator.WithPackageName(packageName),
		generator.WithPointers(usePointers),
		generator.WithValidation(includeValidation),
		generator.WithSchema(input.IncludeSchema),
	)
	if err != nil {
		return errResult(err), generateOutput{}, nil
	}

	if input.OutputDir != "" {
		if err := result.WriteFiles(input.OutputDir); err != nil {
			return errResult(fmt.Errorf("failed to write generated files: %w", err)), generateOutput{}, nil
		}
	}

	output := generateOutput{
		Success:        result.Success,
		OutputDir:      input.OutputDir,
		PackageName:    result.PackageName,
		GeneratedTypes: result.GeneratedTypes,
		WarningCount:   result.WarningCount,
		CriticalCount:  result.CriticalCount,
		Issues:         toIssueOutputs(result.Issues),
	}
	output.Files = makeSlice[generatedFileInfo](len(result.Files))
	for _, f := range result.Files {
		info := generatedFileInfo{Name: f.Name, Size: len(f.Content)}
		if input.OutputDir == "" {
			info.Content = string(f.Content)
		}
		output.Files = append(output.Files, info)
	}
	return nil, output, nil
}
