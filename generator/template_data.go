package generator

// fileData is the input of the "types" template.
type fileData struct {
	Package string
	Imports []string
	Types   []structDecl
}

// structDecl is one generated struct.
type structDecl struct {
	Name string
	// Schema is the element name the struct was generated from
	Schema string
	Doc    string
	Fields []fieldDecl
	// Extra is the value type of the AdditionalProperties map, or "" when
	// the struct has none
	Extra string
}

type fieldDecl struct {
	Name string
	Type string
	Tag  string
	Doc  string
}
