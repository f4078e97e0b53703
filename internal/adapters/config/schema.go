package config

// Manifest represents the structure of the taskscript.yaml file: the analyzed form of one build script.
type Manifest struct {
	Version string    `yaml:"version"`
	Root    string    `yaml:"root"`
	Tasks   []TaskDTO `yaml:"tasks"`
}

// TaskDTO represents one candidate method in the manifest.
// Static and Void default to true and Access to public when omitted.
type TaskDTO struct {
	Signature    string            `yaml:"signature"`
	Access       string            `yaml:"access"`
	Static       *bool             `yaml:"static"`
	Void         *bool             `yaml:"void"`
	GenericArity int               `yaml:"genericArity"`
	Scopes       []ScopeDTO        `yaml:"scopes"`
	Doc          *string           `yaml:"doc"`
	Params       []ParamDTO        `yaml:"params"`
	DependsOn    []string          `yaml:"dependsOn"`
	Cmd          []string          `yaml:"cmd"`
	Environment  map[string]string `yaml:"environment"`
	WorkingDir   string            `yaml:"workingDir"`
}

// ScopeDTO represents a containing type of a candidate, innermost first.
type ScopeDTO struct {
	Name   string `yaml:"name"`
	Access string `yaml:"access"`
	Static *bool  `yaml:"static"`
}

// ParamDTO represents a declared parameter.
type ParamDTO struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Default bool   `yaml:"default"`
	ByRef   bool   `yaml:"byRef"`
}
