package tags

import (
	"bytes"
	"strings"

	"github.com/viant/parsly"
)

func matchPair(cursor *parsly.Cursor) (string, string) {
	key := ""
	value := ""

	eqIndex := bytes.IndexByte(cursor.Input[cursor.Pos:], '=')
	comaIndex := bytes.IndexByte(cursor.Input[cursor.Pos:], ',')
	hasKey := eqIndex != -1 && (comaIndex == -1 || eqIndex < comaIndex)
	if !hasKey {
		match := cursor.MatchAny(comaTerminatorMatcher)
		switch match.Code {
		case comaTerminatorToken:
			value = match.Text(cursor)
			value = value[:len(value)-1] //exclude ,
		default:
			if cursor.Pos < len(cursor.Input) {
				value = string(cursor.Input[cursor.Pos:])
				cursor.Pos = len(cursor.Input)
			}
		}
		return strings.TrimSpace(value), ""
	}

	match := cursor.MatchAny(eqTerminatorMatcher)
	if match.Code != eqTerminatorToken {
		cursor.Pos = len(cursor.Input)
		return "", ""
	}
	key = match.Text(cursor)
	key = strings.TrimSpace(key[:len(key)-1]) //exclude =

	match = cursor.MatchAny(scopeBlockMatcher, quotedMatcher, comaTerminatorMatcher)
	switch match.Code {
	case scopeBlockToken, quotedToken:
		value = match.Text(cursor)
		value = value[1 : len(value)-1] //exclude enclosure
		match = cursor.MatchAny(comaTerminatorMatcher)
	case comaTerminatorToken:
		value = match.Text(cursor)
		value = value[:len(value)-1]
	default:
		if cursor.Pos < len(cursor.Input) {
			value = string(cursor.Input[cursor.Pos:])
			cursor.Pos = len(cursor.Input)
		}
	}
	return key, value
}

func matchElement(cursor *parsly.Cursor) string {
	value := ""
	match := cursor.MatchAfterOptional(whitespaceMatcher, scopeBlockMatcher, quotedMatcher, comaTerminatorMatcher)
	switch match.Code {
	case scopeBlockToken, quotedToken:
		value = match.Text(cursor)
		value = value[1 : len(value)-1]
		match = cursor.MatchAny(comaTerminatorMatcher)
	case comaTerminatorToken:
		value = match.Text(cursor)
		value = value[:len(value)-1] //exclude ,
	default:
		if cursor.Pos < len(cursor.Input) {
			value = string(cursor.Input[cursor.Pos:])
			cursor.Pos = len(cursor.Input)
		}
	}
	return value
}
