package generator

import (
	"embed"
	"strconv"
	"text/template"

	"golang.org/x/tools/imports"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").
	Funcs(template.FuncMap{"quote": strconv.Quote}).
	ParseFS(templateFS, "templates/*.tmpl"))

// executeTemplate renders the named template for typeCount declared types,
// then runs goimports over the result. Source that goimports rejects is
// returned as rendered.
func executeTemplate(name string, data any, typeCount int) ([]byte, error) {
	buf := getTemplateBuffer(typeCount)
	defer putTemplateBuffer(buf)
	if err := templates.ExecuteTemplate(buf, name, data); err != nil {
		return nil, err
	}
	src := append([]byte(nil), buf.Bytes()...)

	formatted, err := imports.Process(TypesFile, src, nil)
	if err != nil {
		// nolint:nilerr // unformatted output is still usable
		return src, nil
	}
	return formatted, nil
}
