package domain

// Script is the analyzed form of one build script: the task candidates discovered in it,
// the declared dependency edges between them and the entry points they bind to.
type Script struct {
	// Root is the name of the container every task is declared beneath.
	Root string

	// Digest identifies the content the script was loaded from.
	Digest string

	Candidates  []Candidate
	Edges       []Edge
	EntryPoints []EntryPoint
}

// Edge declares that Dependent requires Dependency. Both are qualified task names.
type Edge struct {
	Dependent  string
	Dependency string
}

// EntryPoint is the executable body of a compiled method.
type EntryPoint struct {
	DeclaringType string
	Name          string
	Command       []string
	Environment   map[string]string
	WorkingDir    string
}
