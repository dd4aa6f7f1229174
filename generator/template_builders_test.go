package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/schemagen/element"
)

func TestFieldComment(t *testing.T) {
	tests := []struct {
		name     string
		el       *element.Element
		required bool
		want     string
	}{
		{"nothing", element.NewString(nil), false, ""},
		{"required", element.NewString(nil), true, "Required."},
		{"default", element.NewString(element.Keywords{element.KwDefault: "x"}), false, `Default: "x".`},
		{"required with default", element.NewString(element.Keywords{element.KwDefault: "x"}), true, `Required. Default: "x".`},
		{
			"description first",
			element.NewInteger(element.Keywords{element.KwDescription: "Page size", element.KwDefault: int64(20)}),
			true,
			"Page size. Required. Default: 20.",
		},
		{"nil element", nil, true, "Required."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fieldComment(tt.el, tt.required))
		})
	}
}
