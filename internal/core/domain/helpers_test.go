package domain_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/taskscript/internal/core/domain"
	"go.trai.ch/zerr"
)

// candidate returns a valid candidate for signature, nested in public static containers
// that mirror the qualified name.
func candidate(signature string, params ...domain.Parameter) domain.Candidate {
	full := domain.FullNameOf(signature)
	segments := strings.Split(full, ".")

	scopes := make([]domain.Scope, 0, len(segments))
	for i := len(segments) - 2; i >= 0; i-- {
		scopes = append(scopes, domain.Scope{Name: segments[i], Accessibility: domain.AccessPublic, IsStatic: true})
	}
	scopes = append(scopes, domain.Scope{Name: domain.DefaultRootContainer, Accessibility: domain.AccessPublic, IsStatic: true})

	return domain.Candidate{
		Accessibility: domain.AccessPublic,
		IsStatic:      true,
		ReturnsVoid:   true,
		Parameters:    params,
		Scopes:        scopes,
		Signature:     signature,
	}
}

func mustTask(t *testing.T, signature string, params ...domain.Parameter) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(candidate(signature, params...))
	require.NoError(t, err)
	return task
}

func metadata(t *testing.T, err error) map[string]any {
	t.Helper()
	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	return zErr.Metadata()
}

// fakeModule resolves entry points from a map keyed by "DeclaringType.Name".
type fakeModule map[string]domain.Callable

func (m fakeModule) EntryPoint(declaringType, name string) (domain.Callable, error) {
	c, ok := m[declaringType+"."+name]
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrEntryPointNotFound, "no such method"), "type", declaringType)
	}
	return c, nil
}

// recorder is a callable that records every call it receives.
type recorder struct {
	calls [][]domain.TaskArgument
	err   error
}

func (r *recorder) Call(_ context.Context, args []domain.TaskArgument) error {
	r.calls = append(r.calls, args)
	return r.err
}

func strPtr(s string) *string {
	return &s
}
