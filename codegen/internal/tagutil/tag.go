// Package tagutil parses binding struct tags of the form `epoxy:"key,option,option=value"`.
package tagutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/viant/parsly"
)

// Tag represents a parsed binding tag.
type Tag struct {
	Name    string
	Ignore  bool
	Options map[string]string
}

// Parse parses an encoded tag value. The first segment is the JSON key, the remaining
// segments are flags or key=value options; option keys are case insensitive.
func Parse(encoded string) (*Tag, error) {
	ret := &Tag{Options: map[string]string{}}
	if encoded == "-" {
		ret.Ignore = true
		return ret, nil
	}
	cursor := parsly.NewCursor("", []byte(encoded), 0)
	for i := 0; cursor.Pos < len(cursor.Input); i++ {
		segment := strings.TrimSpace(matchSegment(cursor))
		if i == 0 {
			ret.Name = segment
			continue
		}
		if segment == "" {
			continue
		}
		key, value := segment, "true"
		if index := strings.Index(segment, "="); index != -1 {
			key, value = strings.TrimSpace(segment[:index]), strings.TrimSpace(segment[index+1:])
		}
		if key == "" {
			return nil, fmt.Errorf("invalid tag option %q in %q", segment, encoded)
		}
		ret.Options[strings.ToLower(key)] = value
	}
	return ret, nil
}

// Has reports whether option key is set to a true value, a non boolean value is an error.
func (t *Tag) Has(key string) (bool, error) {
	value, ok := t.Options[strings.ToLower(key)]
	if !ok {
		return false, nil
	}
	enabled, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("option %v must be a boolean, but had %q", key, value)
	}
	return enabled, nil
}

// Get returns the option value of key.
func (t *Tag) Get(key string) string {
	return t.Options[strings.ToLower(key)]
}
