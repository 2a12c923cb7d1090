package model

// RawModel is the language-independent input produced by a front-end adapter
// (the tree-sitter extractor, or an external tool emitting the JSON form).
// It is consumed once by Build; afterwards only the frozen Model is used.
type RawModel struct {
	Classes []RawClass `json:"classes" yaml:"classes"`
}

// RawClass describes one class as extracted from source
type RawClass struct {
	Name      string   `json:"name" yaml:"name"`
	FilePath  string   `json:"file_path,omitempty" yaml:"file_path,omitempty"`
	StartLine int      `json:"start_line,omitempty" yaml:"start_line,omitempty"`
	EndLine   int      `json:"end_line,omitempty" yaml:"end_line,omitempty"`
	Bases     []string `json:"bases,omitempty" yaml:"bases,omitempty"`

	Fields  []RawField  `json:"fields,omitempty" yaml:"fields,omitempty"`
	Methods []RawMethod `json:"methods,omitempty" yaml:"methods,omitempty"`

	// TypeRefs are class names referenced by field, parameter, or local
	// variable type annotations within the class body
	TypeRefs []string `json:"type_refs,omitempty" yaml:"type_refs,omitempty"`
}

// RawField describes a declared field. The type tag is kept for accounting
// but carries no semantics beyond CBO type references.
type RawField struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
}

// RawMethod describes a declared method with its access and call records
type RawMethod struct {
	Name      string `json:"name" yaml:"name"`
	Signature string `json:"signature,omitempty" yaml:"signature,omitempty"`

	FieldAccesses []RawFieldAccess `json:"field_accesses,omitempty" yaml:"field_accesses,omitempty"`
	Calls         []RawCall        `json:"calls,omitempty" yaml:"calls,omitempty"`
}

// RawFieldAccess records one field access. An empty Class means the method's
// own class.
type RawFieldAccess struct {
	Class string `json:"class,omitempty" yaml:"class,omitempty"`
	Field string `json:"field" yaml:"field"`
}

// RawCall records one call site. An empty Receiver means the target type is
// unknown (dynamic dispatch, free function); such calls are excluded from
// RFC and CBO.
type RawCall struct {
	Receiver string `json:"receiver,omitempty" yaml:"receiver,omitempty"`
	Method   string `json:"method" yaml:"method"`
}

// ClassEntity is a class in the frozen model. It owns its methods and fields
// by composition; inheritance and call references are identity links resolved
// through the Model.
type ClassEntity struct {
	Name      string
	FilePath  string
	StartLine int
	EndLine   int

	// Bases are the declared direct superclass names, in declaration order,
	// including names that resolve to no modeled class
	Bases []string

	// TypeRefs are type annotation references collected from the class body
	TypeRefs []string

	Methods []*MethodEntity
	Fields  []*FieldEntity

	fieldIndex map[string]*FieldEntity
}

// Field looks up a declared field by name
func (c *ClassEntity) Field(name string) (*FieldEntity, bool) {
	f, ok := c.fieldIndex[name]
	return f, ok
}

// HasMethod reports whether the class declares a method with the given name
func (c *ClassEntity) HasMethod(name string) bool {
	for _, m := range c.Methods {
		if m.Name == name {
			return true
		}
	}
	return false
}

// MethodEntity is a method declared on a class. Signature distinguishes
// overloads for languages that have them; for Python input it is the name
// plus parameter arity.
type MethodEntity struct {
	Class     *ClassEntity
	Name      string
	Signature string

	FieldAccesses []RawFieldAccess
	Calls         []CallSite
}

// FieldEntity is a field declared on a class
type FieldEntity struct {
	Class *ClassEntity
	Name  string
	Type  string
}

// CallSite is one call record attached to its caller. Receiver and Method are
// identities; classification into local/remote/external happens in the
// resolver, never here.
type CallSite struct {
	Caller   *MethodEntity
	Receiver string
	Method   string
}
