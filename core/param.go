package core

import (
	"strconv"
	"strings"

	"github.com/huangsam/scorecard/schema"
)

// Substitute replaces every $name and ${name} placeholder in text with its
// value from params. "$$" writes a literal "$". Text without "$" is returned
// unchanged and params is not consulted.
//
// A name is a letter or underscore followed by letters, digits or underscores.
// A "$" that starts no valid placeholder is an InvalidPredicateError and a
// name absent from params is an UnresolvedParameterError.
func Substitute(text string, params map[string]string) (string, error) {
	first := strings.IndexByte(text, '$')
	if first < 0 {
		return text, nil
	}

	var sb strings.Builder
	sb.Grow(len(text))
	sb.WriteString(text[:first])

	for i := first; i < len(text); {
		ch := text[i]
		if ch != '$' {
			sb.WriteByte(ch)
			i++
			continue
		}
		if i+1 >= len(text) {
			return "", malformedPlaceholder(text, "dangling $ at end of text")
		}

		var name string
		switch next := text[i+1]; {
		case next == '$':
			sb.WriteByte('$')
			i += 2
			continue
		case next == '{':
			end := strings.IndexByte(text[i+2:], '}')
			if end < 0 {
				return "", malformedPlaceholder(text, "unterminated ${")
			}
			name = text[i+2 : i+2+end]
			if !isParamName(name) {
				return "", malformedPlaceholder(text, "invalid parameter name "+strconv.Quote(name))
			}
			i += end + 3
		case isNameStart(next):
			j := i + 2
			for j < len(text) && isNameChar(text[j]) {
				j++
			}
			name = text[i+1 : j]
			i = j
		default:
			return "", malformedPlaceholder(text, "$ must be followed by a name, { or $")
		}

		value, ok := params[name]
		if !ok {
			return "", &schema.UnresolvedParameterError{Name: name, Text: text}
		}
		sb.WriteString(value)
	}
	return sb.String(), nil
}

// HasPlaceholder reports whether text contains a placeholder marker.
func HasPlaceholder(text string) bool {
	return strings.IndexByte(text, '$') >= 0
}

func malformedPlaceholder(text, reason string) error {
	return &schema.InvalidPredicateError{Rule: text, Reason: "malformed placeholder: " + reason}
}

func isParamName(name string) bool {
	if name == "" || !isNameStart(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isNameChar(name[i]) {
			return false
		}
	}
	return true
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}
