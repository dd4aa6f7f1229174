// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes schemagen capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/erraggy/schemagen"
	"github.com/erraggy/schemagen/internal/issues"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `schemagen MCP server: compiles JSON Schema documents, validates data against them, generates Go types and re-serializes schemas.

Every tool takes a "schema" with exactly one of file or content. Set auto_title=true for schemas whose nested objects have no title.

Configuration comes from SCHEMAGEN_* environment variables set in your MCP client config:
- SCHEMAGEN_PACKAGE (default: schema): package name for generated code
- SCHEMAGEN_NO_POINTERS (default: false): use value types for optional fields
- SCHEMAGEN_NO_VALIDATION (default: false): omit validate struct tags
- SCHEMAGEN_MAX_INPUT_SIZE (default: 10MB): limit for schema and instance inputs
- SCHEMAGEN_RESULT_LIMIT (default: 100): default page size for validation errors
- SCHEMAGEN_CACHE_ENABLED (default: true), SCHEMAGEN_CACHE_TTL (default: 15m): compiled schema cache`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	if cfg.CacheEnabled {
		schemaCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "schemagen", Version: schemagen.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate data against a JSON Schema. Provide the data as instance.content (JSON or YAML) or instance.file. Use definition to validate against a named entry of definitions/$defs instead of the root. Returns each failure with its path, keyword and message, plus the constructed value when the data is valid. Use offset/limit to page through errors.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "generate",
		Description: "Generate Go type declarations from a JSON Schema. Every object schema becomes a struct, declared after the structs it uses. Returns the generated files inline, or writes them to output_dir when it is set. Issues report lossy mappings such as compositions emitted as any.",
	}, handleGenerate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "serialize",
		Description: "Compile a JSON Schema and serialize it back as a normalized draft-07 document: object schemas move under definitions and are referenced with $ref. Format is json (default) or yaml.",
	}, handleSerialize)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "order",
		Description: "List the object schemas of a JSON Schema in declaration order, each after the objects it depends on, with its direct dependencies. Reports cyclic=true and falls back to discovery order when objects refer to each other.",
	}, handleOrder)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ResultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ResultLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// issueOutput is the wire form of an issues.Issue.
type issueOutput struct {
	Path     string `json:"path"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Keyword  string `json:"keyword,omitempty"`
	Context  string `json:"context,omitempty"`
}

func toIssueOutputs(list []issues.Issue) []issueOutput {
	out := makeSlice[issueOutput](len(list))
	for _, i := range list {
		out = append(out, issueOutput{
			Path:     i.Path,
			Message:  i.Message,
			Severity: i.Severity.String(),
			Keyword:  i.Keyword,
			Context:  i.Context,
		})
	}
	return out
}

// pathPattern matches absolute filesystem paths in error messages so they
// are not leaked to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
