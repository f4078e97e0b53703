package domain

// Accessibility is the declared visibility of a method or container.
type Accessibility string

const (
	// AccessPublic is visible everywhere.
	AccessPublic Accessibility = "public"
	// AccessInternal is visible within the compiled script only.
	AccessInternal Accessibility = "internal"
	// AccessProtected is visible to derived containers.
	AccessProtected Accessibility = "protected"
	// AccessPrivate is visible to the declaring container only.
	AccessPrivate Accessibility = "private"
)

// Parameter describes one declared parameter of a candidate method.
type Parameter struct {
	Name       string
	Type       TypeTag
	ByRef      bool
	HasDefault bool
}

// Scope describes one containing type in the chain between a method and the root container.
type Scope struct {
	Name          string
	Accessibility Accessibility
	IsStatic      bool
}

// Candidate is a method discovered by source analysis and proposed as a task.
// It carries everything validation needs, captured when the descriptor is built.
type Candidate struct {
	Accessibility Accessibility
	IsStatic      bool
	ReturnsVoid   bool
	GenericArity  int
	Parameters    []Parameter

	// Scopes lists the containing types from the innermost outwards, ending with the root container.
	Scopes []Scope

	// Signature is the fully qualified display signature, e.g. "Group.Sub.Build(int)".
	Signature string

	// Documentation is the raw documentation comment, or nil when the method has none.
	Documentation *string
}
