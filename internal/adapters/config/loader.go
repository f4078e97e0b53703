// Package config provides the task manifest loader.
package config

import (
	_ "crypto/sha256" // registers the digest algorithm
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opencontainers/go-digest"
	"go.trai.ch/taskscript/internal/core/domain"
	"go.trai.ch/taskscript/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFilename is the manifest file searched for when no path is given.
	DefaultFilename = "taskscript.yaml"

	supportedVersion = "1"
)

var (
	// ErrManifestNotFound is returned when no manifest exists in the working directory or any parent.
	ErrManifestNotFound = zerr.New("task manifest not found")

	// ErrUnsupportedVersion is returned for a manifest version this loader does not understand.
	ErrUnsupportedVersion = zerr.New("unsupported manifest version")

	// ErrInvalidManifest is returned when a manifest entry is structurally incomplete.
	ErrInvalidManifest = zerr.New("invalid manifest")
)

// FileConfigLoader implements ports.ConfigLoader using a YAML file.
type FileConfigLoader struct {
	Filename string
	logger   ports.Logger
}

// NewLoader creates a loader that looks for DefaultFilename.
func NewLoader(log ports.Logger) *FileConfigLoader {
	return &FileConfigLoader{
		Filename: DefaultFilename,
		logger:   log,
	}
}

// Load reads the manifest at path. A directory is searched for the loader's Filename, and an
// empty path searches the working directory and its parents.
// Relative working directories in the manifest are resolved against the manifest's directory.
func (l *FileConfigLoader) Load(path string) (*domain.Script, error) {
	resolved, err := l.resolve(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read manifest"), "path", resolved)
	}

	script, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", resolved)
	}

	dir := filepath.Dir(resolved)
	for i := range script.EntryPoints {
		ep := &script.EntryPoints[i]
		switch {
		case ep.WorkingDir == "":
			ep.WorkingDir = dir
		case !filepath.IsAbs(ep.WorkingDir):
			ep.WorkingDir = filepath.Join(dir, ep.WorkingDir)
		}
	}

	if l.logger != nil {
		l.logger.Debug(fmt.Sprintf("loaded %d tasks from %s (%s)", len(script.Candidates), resolved, script.Digest))
	}
	return script, nil
}

func (l *FileConfigLoader) resolve(path string) (string, error) {
	filename := l.Filename
	if filename == "" {
		filename = DefaultFilename
	}

	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", zerr.Wrap(err, "failed to get working directory")
		}
		return discover(cwd, filename)
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to stat manifest"), "path", path)
	}
	if info.IsDir() {
		return filepath.Join(path, filename), nil
	}
	return path, nil
}

// discover walks from dir up to the filesystem root looking for filename.
func discover(dir, filename string) (string, error) {
	for {
		candidate := filepath.Join(dir, filename)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", zerr.With(zerr.Wrap(ErrManifestNotFound, "searched up to the filesystem root"), "filename", filename)
		}
		dir = parent
	}
}

// Parse decodes a manifest and returns the script it describes.
// Duplicate task names and dependencies on unknown tasks are rejected.
func Parse(data []byte) (*domain.Script, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.Wrap(err, "failed to parse manifest")
	}

	if manifest.Version != supportedVersion {
		return nil, zerr.With(zerr.Wrap(ErrUnsupportedVersion, "expected version "+supportedVersion), "version", manifest.Version)
	}

	root := manifest.Root
	if root == "" {
		root = domain.DefaultRootContainer
	}

	script := &domain.Script{
		Root:        root,
		Digest:      digest.FromBytes(data).String(),
		Candidates:  make([]domain.Candidate, 0, len(manifest.Tasks)),
		EntryPoints: make([]domain.EntryPoint, 0, len(manifest.Tasks)),
	}

	// First pass: collect all qualified names to verify dependencies later.
	names := make(map[string]bool, len(manifest.Tasks))
	for i, dto := range manifest.Tasks {
		if strings.TrimSpace(dto.Signature) == "" {
			return nil, zerr.With(zerr.Wrap(ErrInvalidManifest, "task has no signature"), "index", i)
		}
		full := domain.FullNameOf(dto.Signature)
		if names[full] {
			return nil, zerr.With(zerr.Wrap(domain.ErrTaskAlreadyExists, "duplicate task in manifest"), "task_name", full)
		}
		names[full] = true
	}

	// Second pass: build candidates, edges and entry points.
	for _, dto := range manifest.Tasks {
		full := domain.FullNameOf(dto.Signature)

		for _, dep := range dto.DependsOn {
			if !names[dep] {
				err := zerr.With(zerr.Wrap(domain.ErrMissingDependency, "dependency is not declared in the manifest"), "dependency", dep)
				return nil, zerr.With(err, "task_name", full)
			}
			script.Edges = append(script.Edges, domain.Edge{Dependent: full, Dependency: dep})
		}

		script.Candidates = append(script.Candidates, toCandidate(root, dto))
		script.EntryPoints = append(script.EntryPoints, domain.EntryPoint{
			DeclaringType: domain.DeclaringTypeOf(root, full),
			Name:          domain.ShortNameOf(full),
			Command:       dto.Cmd,
			Environment:   dto.Environment,
			WorkingDir:    dto.WorkingDir,
		})
	}

	return script, nil
}

func toCandidate(root string, dto TaskDTO) domain.Candidate {
	params := make([]domain.Parameter, len(dto.Params))
	types := make([]string, len(dto.Params))
	for i, p := range dto.Params {
		params[i] = domain.Parameter{
			Name:       p.Name,
			Type:       domain.TypeTag(p.Type),
			ByRef:      p.ByRef,
			HasDefault: p.Default,
		}
		types[i] = p.Type
	}

	signature := dto.Signature
	if !strings.Contains(signature, "(") {
		signature += "(" + strings.Join(types, ", ") + ")"
	}

	scopes := make([]domain.Scope, len(dto.Scopes))
	for i, s := range dto.Scopes {
		scopes[i] = domain.Scope{
			Name:          s.Name,
			Accessibility: access(s.Access),
			IsStatic:      orTrue(s.Static),
		}
	}
	if len(scopes) == 0 {
		scopes = synthesizeScopes(root, domain.FullNameOf(signature))
	}

	return domain.Candidate{
		Accessibility: access(dto.Access),
		IsStatic:      orTrue(dto.Static),
		ReturnsVoid:   orTrue(dto.Void),
		GenericArity:  dto.GenericArity,
		Parameters:    params,
		Scopes:        scopes,
		Signature:     signature,
		Documentation: dto.Doc,
	}
}

// synthesizeScopes returns public static containers mirroring the qualified name,
// innermost first, followed by the root container.
func synthesizeScopes(root, fullName string) []domain.Scope {
	segments := strings.Split(fullName, ".")
	scopes := make([]domain.Scope, 0, len(segments))
	for i := len(segments) - 2; i >= 0; i-- {
		scopes = append(scopes, domain.Scope{Name: segments[i], Accessibility: domain.AccessPublic, IsStatic: true})
	}
	return append(scopes, domain.Scope{Name: root, Accessibility: domain.AccessPublic, IsStatic: true})
}

func access(s string) domain.Accessibility {
	if s == "" {
		return domain.AccessPublic
	}
	return domain.Accessibility(strings.ToLower(s))
}

func orTrue(b *bool) bool {
	return b == nil || *b
}
