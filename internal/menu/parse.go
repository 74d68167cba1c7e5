package menu

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var (
	// ErrNoPayload means the reply holds no delimiter pair of the requested kind.
	ErrNoPayload = errors.New("no structured payload in reply")
	// ErrDecode means the sanitized candidate is not valid JSON.
	ErrDecode = errors.New("payload is not valid JSON")
	// ErrUnrecognizedShape means the payload is valid JSON of an unknown layout.
	ErrUnrecognizedShape = errors.New("unrecognized menu shape")
)

// Candidate extracts and sanitizes the payload block of reply.
func Candidate(reply string, d Delimiters) (string, bool) {
	raw, ok := Extract(reply, d)
	if !ok {
		return "", false
	}
	return Sanitize(raw), true
}

// Parse runs the full pipeline. The error is always one of ErrNoPayload,
// ErrDecode (possibly wrapped) or ErrUnrecognizedShape.
func Parse(reply string, d Delimiters) (*Menu, error) {
	candidate, ok := Candidate(reply, d)
	if !ok {
		return nil, ErrNoPayload
	}
	if tooDeep(candidate, MaxDepth) {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrDecode, MaxDepth)
	}
	if !gjson.Valid(candidate) {
		return nil, fmt.Errorf("%w: %d byte candidate", ErrDecode, len(candidate))
	}
	return Normalize([]byte(candidate))
}

// MaxDepth bounds array/object nesting. gjson validates recursively, so
// deeper candidates are rejected before they reach it.
const MaxDepth = 10000

// tooDeep reports whether s nests arrays and objects more than limit levels,
// ignoring brackets inside strings.
func tooDeep(s string, limit int) bool {
	depth := 0
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
			if depth > limit {
				return true
			}
		case '}', ']':
			depth--
		}
	}
	return false
}

// FromReply is Parse with every failure collapsed to nil, which is how the
// chat surface treats them: the reply is still shown, just without a menu.
func FromReply(reply string, d Delimiters) *Menu {
	m, err := Parse(reply, d)
	if err != nil {
		return nil
	}
	return m
}
