package domain

import (
	"strings"
	"unicode"
)

const (
	// DefaultRootContainer is the container every script's tasks are declared beneath.
	DefaultRootContainer = "Script"

	nameSeparator    = "."
	nestedTypeJoiner = "+"
	parameterStart   = "("
)

// FullNameOf returns the qualified name of a display signature: everything before the parameter list.
func FullNameOf(signature string) string {
	if i := strings.Index(signature, parameterStart); i >= 0 {
		return signature[:i]
	}
	return signature
}

// IsGlobalName reports whether a qualified name is declared directly under the root container.
func IsGlobalName(fullName string) bool {
	return !strings.Contains(fullName, nameSeparator)
}

// ShortNameOf returns the last segment of a qualified name.
func ShortNameOf(fullName string) string {
	if i := strings.LastIndex(fullName, nameSeparator); i >= 0 {
		return fullName[i+len(nameSeparator):]
	}
	return fullName
}

// DeclaringTypeOf returns the path of the compiled type that declares fullName,
// e.g. "Script+Group+Sub" for "Group.Sub.Build".
func DeclaringTypeOf(root, fullName string) string {
	i := strings.LastIndex(fullName, nameSeparator)
	if i < 0 {
		return root
	}
	return root + nestedTypeJoiner + strings.ReplaceAll(fullName[:i], nameSeparator, nestedTypeJoiner)
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}
