package generator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/schemagen/element"
	"github.com/erraggy/schemagen/internal/issues"
	"github.com/erraggy/schemagen/orderer"
)

// typesGenerator builds types.go for a set of object elements.
type typesGenerator struct {
	g       *Generator
	result  *GenerateResult
	objects []*element.Element
	// typeNames maps object names to their Go type names
	typeNames map[string]string
	// deps maps object names to the objects they refer to
	deps map[string][]string
}

func newTypesGenerator(g *Generator, result *GenerateResult, objects []*element.Element) *typesGenerator {
	cg := &typesGenerator{
		g:         g,
		result:    result,
		objects:   objects,
		typeNames: make(map[string]string, len(objects)),
		deps:      make(map[string][]string, len(objects)),
	}
	used := make(map[string]bool, len(objects))
	for _, obj := range objects {
		base := toTypeName(obj.Name())
		name := base
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s%d", base, n)
		}
		if name != base {
			cg.addIssue(obj.Name(), fmt.Sprintf("type name %s already used; declared as %s", base, name), SeverityWarning)
		}
		used[name] = true
		cg.typeNames[obj.Name()] = name
		cg.deps[obj.Name()] = orderer.Dependencies(obj)
	}
	return cg
}

// generateTypes renders types.go.
func (cg *typesGenerator) generateTypes() error {
	data := cg.buildTypesFileData()
	formatted, err := executeTemplate("types", data, len(data.Types))
	if err != nil {
		cg.addIssue(TypesFile, fmt.Sprintf("failed to execute template: %v", err), SeverityCritical)
		return err
	}
	cg.result.Files = append(cg.result.Files, GeneratedFile{
		Name:    TypesFile,
		Content: formatted,
	})
	return nil
}

// buildTypesFileData builds the template data for types.go.
func (cg *typesGenerator) buildTypesFileData() *fileData {
	data := &fileData{Package: cg.result.PackageName}
	needsTime := false
	for _, obj := range cg.objects {
		s := cg.buildStructData(obj)
		for _, f := range s.Fields {
			if strings.Contains(f.Type, "time.Time") {
				needsTime = true
			}
		}
		data.Types = append(data.Types, s)
		cg.result.GeneratedTypes = append(cg.result.GeneratedTypes, s.Name)
		cg.g.log().Debug("emitted type", "type", s.Name, "fields", len(s.Fields))
	}

	if needsTime {
		data.Imports = []string{"time"}
	}
	return data
}

// typeName returns the Go type name of an object element.
func (cg *typesGenerator) typeName(obj *element.Element) string {
	if name, ok := cg.typeNames[obj.Name()]; ok {
		return name
	}
	return toTypeName(obj.Name())
}

// reaches reports whether object to can be reached from object from by
// following object references.
func (cg *typesGenerator) reaches(from, to string) bool {
	seen := map[string]bool{from: true}
	queue := []string{from}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		for _, dep := range cg.deps[name] {
			if dep == to {
				return true
			}
			if !seen[dep] {
				seen[dep] = true
				queue = append(queue, dep)
			}
		}
	}
	return false
}

// buildStructData builds a struct declaration from an object element.
func (cg *typesGenerator) buildStructData(obj *element.Element) structDecl {
	s := structDecl{
		Name:   cg.typeName(obj),
		Schema: obj.Name(),
	}
	if desc := obj.Description(); desc != "" {
		s.Doc = cleanDescription(desc)
	}

	required := obj.Required()
	usedFieldNames := make(map[string]int)
	for _, p := range obj.Properties() {
		field := cg.buildFieldData(obj, p, slices.Contains(required, p.Source))

		// Property names are already unique; Go field names may not be
		baseName := field.Name
		if count, exists := usedFieldNames[baseName]; exists {
			field.Name = fmt.Sprintf("%s%d", baseName, count+1)
		}
		usedFieldNames[baseName]++

		s.Fields = append(s.Fields, field)
	}

	path := obj.Name()
	switch ap := obj.AdditionalProperties(); {
	case ap != nil && !element.IsNothing(ap):
		s.Extra = cg.valueType(ap, issues.JoinPath(path, "additionalProperties"))
	case ap == nil && len(obj.PatternProperties()) > 0:
		s.Extra = "any"
		cg.addIssue(path, "patternProperties collected in AdditionalProperties", SeverityInfo)
	}
	return s
}

// buildFieldData builds field data for one property of obj.
func (cg *typesGenerator) buildFieldData(obj *element.Element, p *element.Property, required bool) fieldDecl {
	path := issues.JoinPath(obj.Name(), p.Source)
	info := cg.goType(p.Element, path)
	goType := info.Type

	recursive := info.Object != nil && (info.Object == obj || cg.reaches(info.Object.Name(), obj.Name()))
	optional := !required && cg.g.UsePointers
	if pointerable(goType) && (optional || info.Nullable || recursive) {
		goType = "*" + goType
		if recursive {
			cg.addIssue(path, fmt.Sprintf("recursive reference to %s uses pointer indirection", info.Type), SeverityInfo)
		}
	}

	jsonTag := p.Source
	if !required {
		jsonTag += ",omitempty"
	}
	tags := fmt.Sprintf("json:%q", jsonTag)
	if cg.g.IncludeValidation {
		if validateTag := buildValidateTag(info.Element, required); validateTag != "" {
			tags += fmt.Sprintf(" validate:%q", validateTag)
		}
	}

	return fieldDecl{
		Name: toFieldName(p.Name),
		Type: goType,
		Tag:  tags,
		Doc:  fieldComment(p.Element, required),
	}
}

// fieldComment describes a property: its description, whether it is
// required, then its default.
func fieldComment(e *element.Element, required bool) string {
	var parts []string
	if e != nil {
		if desc := e.Description(); desc != "" {
			parts = append(parts, strings.TrimSuffix(cleanDescription(desc), ".")+".")
		}
	}
	if required {
		parts = append(parts, "Required.")
	}
	if e != nil {
		if def, ok := e.Default(); ok {
			parts = append(parts, fmt.Sprintf("Default: %s.", formatValue(def)))
		}
	}
	return strings.Join(parts, " ")
}

// buildValidateTag builds a validate tag from the keywords of e.
func buildValidateTag(e *element.Element, required bool) string {
	var parts []string
	if required {
		parts = append(parts, "required")
	}
	if e == nil {
		return strings.Join(parts, ",")
	}

	bound := func(kw, tag string) {
		if v := e.Keyword(kw); !element.IsNotProvided(v) {
			parts = append(parts, fmt.Sprintf("%s=%v", tag, v))
		}
	}

	switch e.Kind() {
	case element.KindString:
		bound(element.KwMinLength, "min")
		bound(element.KwMaxLength, "max")
		switch format(e) {
		case "email":
			parts = append(parts, "email")
		case "uri", "url":
			parts = append(parts, "url")
		case "uuid":
			parts = append(parts, "uuid")
		case "ipv4":
			parts = append(parts, "ipv4")
		case "ipv6":
			parts = append(parts, "ipv6")
		case "hostname":
			parts = append(parts, "hostname")
		}
	case element.KindInteger, element.KindNumber:
		bound(element.KwMinimum, "gte")
		bound(element.KwExclusiveMinimum, "gt")
		bound(element.KwMaximum, "lte")
		bound(element.KwExclusiveMaximum, "lt")
	case element.KindArray:
		bound(element.KwMinItems, "min")
		bound(element.KwMaxItems, "max")
		if unique, _ := e.Keyword(element.KwUniqueItems).(bool); unique {
			parts = append(parts, "unique")
		}
	}

	if values, ok := e.Keyword(element.KwEnum).([]any); ok {
		if oneOf, ok := oneOfTag(values); ok {
			parts = append(parts, oneOf)
		}
	}
	return strings.Join(parts, ",")
}

// oneOfTag renders enum values as a oneof rule. Values that cannot be
// written in one (non-scalars, strings with spaces or commas) leave the
// enum unchecked.
func oneOfTag(values []any) (string, bool) {
	out := make([]string, 0, len(values))
	for _, v := range values {
		var s string
		switch t := v.(type) {
		case string:
			if t == "" || strings.ContainsAny(t, " ,|'\"") {
				return "", false
			}
			s = t
		case int64, float64, int:
			s = fmt.Sprint(t)
		default:
			return "", false
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return "", false
	}
	return "oneof=" + strings.Join(out, " "), true
}

// addIssue adds a generation issue
func (cg *typesGenerator) addIssue(path, message string, severity Severity) {
	cg.result.Issues = append(cg.result.Issues, GenerateIssue{
		Path:     path,
		Message:  message,
		Severity: severity,
	})
}
