package routing

import (
	"sort"
	"strings"
)

// Classifier answers gate questions about a request path using
// longest-prefix matching over the manifest rules.
type Classifier struct {
	rules []Rule
}

func NewClassifier(rules []Rule) *Classifier {
	copied := make([]Rule, 0, len(rules))
	for _, rule := range rules {
		rule.Prefix = strings.TrimSpace(rule.Prefix)
		if rule.Prefix == "" {
			continue
		}
		copied = append(copied, rule)
	}

	sort.SliceStable(copied, func(i, j int) bool {
		return len(copied[i].Prefix) > len(copied[j].Prefix)
	})

	return &Classifier{rules: copied}
}

func (c *Classifier) match(path string) (Rule, bool) {
	for _, rule := range c.rules {
		if HasPathPrefixOnBoundary(path, rule.Prefix) {
			return rule, true
		}
	}
	return Rule{}, false
}

// IsPublic reports whether the path is declared public. Unknown paths are
// never public.
func (c *Classifier) IsPublic(path string) bool {
	rule, ok := c.match(path)
	return ok && rule.Public
}

// RequiredFeature returns the feature tag a path subtree declares, if any.
func (c *Classifier) RequiredFeature(path string) (string, bool) {
	rule, ok := c.match(path)
	if !ok || rule.Feature == "" {
		return "", false
	}
	return rule.Feature, true
}

func HasPathPrefixOnBoundary(path, prefix string) bool {
	if prefix == "" {
		return false
	}

	if prefix == "/" {
		return strings.HasPrefix(path, "/")
	}

	if !strings.HasPrefix(path, prefix) {
		return false
	}

	if len(path) == len(prefix) {
		return true
	}

	if strings.HasSuffix(prefix, "/") {
		return true
	}

	return path[len(prefix)] == '/'
}
