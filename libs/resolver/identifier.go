package resolver

import "regexp"

const IdentifierLength = 8

// Identifier is the student id embedded in a requester's display label.
type Identifier string

var identifierPattern = regexp.MustCompile(`[0-9]{8}`)

// ExtractIdentifier returns the leftmost run of eight digits in label. A
// longer digit run yields its first eight digits.
func ExtractIdentifier(label string) (Identifier, bool) {
	match := identifierPattern.FindString(label)
	if match == "" {
		return "", false
	}
	return Identifier(match), true
}
