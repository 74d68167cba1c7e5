package menu

import "strings"

// Delimiters is the opening/closing pair that brackets the payload.
type Delimiters struct {
	Open  byte
	Close byte
}

var (
	ObjectDelimiters = Delimiters{Open: '{', Close: '}'}
	ArrayDelimiters  = Delimiters{Open: '[', Close: ']'}
)

// DelimitersFor maps "object" and "array" to their delimiter pair.
func DelimitersFor(shape string) (Delimiters, bool) {
	switch shape {
	case "object":
		return ObjectDelimiters, true
	case "array":
		return ArrayDelimiters, true
	default:
		return Delimiters{}, false
	}
}

// Extract returns the text from the first d.Open to the last d.Close,
// inclusive. It reports false when either delimiter is missing.
//
// This is not a bracket matcher: prose around the payload is tolerated, but a
// stray delimiter in the prose widens the candidate. When the last closing
// delimiter precedes the first opening one the candidate is empty and decoding
// fails.
func Extract(text string, d Delimiters) (string, bool) {
	first := strings.IndexByte(text, d.Open)
	last := strings.LastIndexByte(text, d.Close)
	if first == -1 || last == -1 {
		return "", false
	}
	if first > last {
		return "", true
	}
	return text[first : last+1], true
}
