package tagutil

import (
	"github.com/viant/parsly"
	"github.com/viant/parsly/matcher"
)

const (
	comaTerminatorToken = iota
	scopeBlockToken
)

var (
	comaTerminatorMatcher = parsly.NewToken(comaTerminatorToken, "coma", matcher.NewTerminator(',', true))
	scopeBlockMatcher     = parsly.NewToken(scopeBlockToken, "{ .... }", matcher.NewBlock('{', '}', '\\'))
)

// matchSegment returns the next comma separated segment; a {...} block keeps embedded commas.
func matchSegment(cursor *parsly.Cursor) string {
	match := cursor.MatchAny(scopeBlockMatcher, comaTerminatorMatcher)
	switch match.Code {
	case scopeBlockToken:
		value := match.Text(cursor)
		cursor.MatchAny(comaTerminatorMatcher)
		return value[1 : len(value)-1]
	case comaTerminatorToken:
		value := match.Text(cursor)
		return value[:len(value)-1]
	}
	value := string(cursor.Input[cursor.Pos:])
	cursor.Pos = len(cursor.Input)
	return value
}
