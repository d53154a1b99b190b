// Package duedate parses user-supplied due date strings.
//
// Exact layouts ("2006-01-02", optionally with a time) are tried first so
// ISO input is never reinterpreted; anything else goes through the
// natural-language parser ("tomorrow", "next friday at 5pm").
package duedate

import (
	"fmt"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

var layouts = []string{
	"2006-01-02",
	"2006-01-02 15:04",
	time.RFC3339,
}

var parser *when.Parser

func init() {
	parser = when.New(nil)
	parser.Add(en.All...)
	parser.Add(common.All...)
}

// Parse converts s into a due date. Relative expressions are resolved
// against base.
func Parse(s string, base time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty due date")
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}

	r, err := parser.Parse(s, base)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse due date %q: %w", s, err)
	}
	if r == nil {
		return time.Time{}, fmt.Errorf("could not understand due date %q", s)
	}

	return r.Time, nil
}
