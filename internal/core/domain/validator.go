package domain

import (
	"go.trai.ch/zerr"
)

// Validator checks candidates against the structural rules a task must satisfy.
type Validator struct {
	// RootContainer is the name of the outermost container tasks must be declared beneath.
	RootContainer string
}

// NewValidator returns a Validator for the given root container.
// An empty root selects DefaultRootContainer.
func NewValidator(root string) *Validator {
	if root == "" {
		root = DefaultRootContainer
	}
	return &Validator{RootContainer: root}
}

// Validate runs the signature, placement and documentation checks in that order and
// returns the documentation summary. The first failing check aborts validation.
func (v *Validator) Validate(c Candidate) (string, error) {
	if err := checkSignature(c); err != nil {
		return "", zerr.With(err, "signature", c.Signature)
	}
	if err := v.checkPlacement(c); err != nil {
		return "", zerr.With(err, "signature", c.Signature)
	}
	summary, err := ParseSummary(c.Documentation)
	if err != nil {
		return "", zerr.With(err, "signature", c.Signature)
	}
	return summary, nil
}

func checkSignature(c Candidate) error {
	switch {
	case c.Accessibility != AccessPublic:
		return zerr.With(zerr.Wrap(ErrSignatureViolation, "method is not public"), "accessibility", string(c.Accessibility))
	case !c.IsStatic:
		return zerr.Wrap(ErrSignatureViolation, "method is not static")
	case !c.ReturnsVoid:
		return zerr.Wrap(ErrSignatureViolation, "method does not return void")
	case c.GenericArity > 0:
		return zerr.With(zerr.Wrap(ErrSignatureViolation, "method is generic"), "generic_arity", c.GenericArity)
	}

	for _, p := range c.Parameters {
		if p.ByRef {
			return zerr.With(zerr.Wrap(ErrSignatureViolation, "parameter is passed by reference"), "parameter", p.Name)
		}
		if !p.Type.Supported() {
			err := zerr.With(zerr.Wrap(ErrSignatureViolation, "parameter type is not supported"), "parameter", p.Name)
			return zerr.With(err, "type", p.Type.String())
		}
	}
	return nil
}

// checkPlacement walks the containing scopes outwards. Every container below the root
// must be public and static, and the chain must end at the root container.
func (v *Validator) checkPlacement(c Candidate) error {
	if len(c.Scopes) == 0 || c.Scopes[len(c.Scopes)-1].Name != v.RootContainer {
		return zerr.With(zerr.Wrap(ErrPlacementViolation, "method is not declared beneath the root container"), "root", v.RootContainer)
	}

	for _, s := range c.Scopes[:len(c.Scopes)-1] {
		if s.Accessibility != AccessPublic || !s.IsStatic {
			return zerr.With(zerr.Wrap(ErrPlacementViolation, "containing type is not public and static"), "scope", s.Name)
		}
	}
	return nil
}
