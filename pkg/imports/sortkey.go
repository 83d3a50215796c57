package imports

import "strings"

// Character classes, in ascending sort order
const (
	symbolClass    = '0'
	uppercaseClass = '1'
	otherClass     = '2'
)

// BuildKey returns the comparison key of a name: each character is prefixed
// with its class digit. With caseInsensitive the name is lower-cased first.
func BuildKey(name string, caseInsensitive bool) string {
	if caseInsensitive {
		name = strings.ToLower(name)
	}

	var key strings.Builder
	key.Grow(len(name) * 2)
	for _, char := range name {
		switch {
		case char >= 'A' && char <= 'Z':
			key.WriteByte(uppercaseClass)
			key.WriteRune(char + ('a' - 'A'))
		case (char >= 'a' && char <= 'z') || (char >= '0' && char <= '9'):
			key.WriteByte(otherClass)
			key.WriteRune(char)
		default:
			key.WriteByte(symbolClass)
			key.WriteRune(char)
		}
	}
	return key.String()
}
