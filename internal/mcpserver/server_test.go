package mcpserver

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/erraggy/schemagen/internal/issues"
	"github.com/erraggy/schemagen/internal/severity"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := []int{0, 1, 2, 3, 4}

	tests := []struct {
		name   string
		offset int
		limit  int
		want   []int
	}{
		{"default limit returns all", 0, 0, []int{0, 1, 2, 3, 4}},
		{"explicit limit", 0, 2, []int{0, 1}},
		{"offset only", 2, 0, []int{2, 3, 4}},
		{"offset and limit", 1, 2, []int{1, 2}},
		{"offset at end", 5, 0, nil},
		{"negative offset", -1, 0, nil},
		{"limit beyond end", 3, 10, []int{3, 4}},
		{"overflowing limit", 1, math.MaxInt, []int{1, 2, 3, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(items, tt.offset, tt.limit))
		})
	}
}

func TestPaginate_UsesConfiguredLimit(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.ResultLimit = 2 })
	assert.Equal(t, []int{0, 1}, paginate([]int{0, 1, 2}, 0, 0))
}

func TestMakeSlice(t *testing.T) {
	assert.Nil(t, makeSlice[string](0))
	s := makeSlice[string](3)
	assert.NotNil(t, s)
	assert.Empty(t, s)
	assert.Equal(t, 3, cap(s))
}

func TestSanitizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("plain message"), "plain message"},
		{fmt.Errorf("open /home/user/schemas/pet.json: no such file"), "open <path>: no such file"},
		{fmt.Errorf("read /tmp/x.yaml and /var/lib/y.json"), "read <path> and <path>"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeError(tt.err))
	}
}

func TestErrResult(t *testing.T) {
	result := errResult(errors.New("bad /root/secret/file.json"))
	require.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "bad <path>", text.Text)
}

func TestToIssueOutputs(t *testing.T) {
	assert.Nil(t, toIssueOutputs(nil))

	out := toIssueOutputs([]issues.Issue{{
		Path:     "pets[0].id",
		Message:  "Must be greater than or equal to 1.",
		Severity: severity.SeverityError,
		Keyword:  "minimum",
	}})
	require.Len(t, out, 1)
	assert.Equal(t, issueOutput{
		Path:     "pets[0].id",
		Message:  "Must be greater than or equal to 1.",
		Severity: "error",
		Keyword:  "minimum",
	}, out[0])
}
