// Package docs holds the articles printed by `monozip docs`.
package docs

import (
	"fmt"
	"strings"
)

// Topic is one article.
type Topic struct {
	Name    string
	Aliases []string // alternate names, e.g. "api" for server
	Title   string
	Summary string
	Content string // plain text, no ANSI
}

// All returns every topic in display order.
func All() []Topic {
	return topics
}

// Get resolves a topic by name or alias, case-insensitively. A prefix that
// matches exactly one topic (by name or alias) also resolves, so "form"
// finds formatters.
func Get(query string) (Topic, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Topic{}, fmt.Errorf("no topic given (run 'monozip docs' to list available topics)")
	}
	for _, t := range topics {
		if t.Name == q {
			return t, nil
		}
		for _, a := range t.Aliases {
			if a == q {
				return t, nil
			}
		}
	}

	var matches []Topic
	for _, t := range topics {
		if hasPrefix(t, q) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return Topic{}, fmt.Errorf("unknown topic %q (run 'monozip docs' to list available topics)", query)
	}
	names := make([]string, len(matches))
	for i, t := range matches {
		names[i] = t.Name
	}
	return Topic{}, fmt.Errorf("topic %q is ambiguous: %s", query, strings.Join(names, ", "))
}

func hasPrefix(t Topic, q string) bool {
	if strings.HasPrefix(t.Name, q) {
		return true
	}
	for _, a := range t.Aliases {
		if strings.HasPrefix(a, q) {
			return true
		}
	}
	return false
}
