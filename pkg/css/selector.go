package css

import (
	"strings"

	"unveil/pkg/html"
)

// Selector is a parsed compound selector: an optional element name plus
// any number of #id, .class, and [attr] conditions, all of which must hold.
type Selector struct {
	Raw        string
	Element    string
	ID         string
	Classes    []string
	Attributes []AttributeSelector
}

// AttributeSelector is a single [name], [name=value], [name^=value], etc.
// condition. An empty Operator checks existence only.
type AttributeSelector struct {
	Name     string
	Operator string
	Value    string
}

// SplitGroup splits a comma-separated selector group into its selectors.
func SplitGroup(group string) []string {
	parts := strings.Split(group, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseSelector parses a single compound selector such as
// "img.lazy#hero[data-src]". Combinators are not supported; the portion
// after the last whitespace is used, so "div img.lazy" degrades to
// "img.lazy".
func ParseSelector(s string) Selector {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexAny(s, " \t>"); i >= 0 {
		s = s[i+1:]
	}
	sel := Selector{Raw: s}

	for len(s) > 0 {
		switch s[0] {
		case '#':
			token, rest := readToken(s[1:])
			sel.ID = token
			s = rest
		case '.':
			token, rest := readToken(s[1:])
			if token != "" {
				sel.Classes = append(sel.Classes, token)
			}
			s = rest
		case '[':
			attr, rest := readAttribute(s[1:])
			if attr.Name != "" {
				sel.Attributes = append(sel.Attributes, attr)
			}
			s = rest
		case '*':
			s = s[1:]
		default:
			token, rest := readToken(s)
			sel.Element = strings.ToLower(token)
			s = rest
		}
	}
	return sel
}

func readToken(s string) (string, string) {
	i := 0
	for i < len(s) && s[i] != '#' && s[i] != '.' && s[i] != '[' {
		i++
	}
	return s[:i], s[i:]
}

func readAttribute(s string) (AttributeSelector, string) {
	end := strings.IndexByte(s, ']')
	if end < 0 {
		end = len(s)
	}
	body := s[:end]
	rest := ""
	if end < len(s) {
		rest = s[end+1:]
	}

	for _, op := range []string{"^=", "$=", "*=", "~=", "|=", "="} {
		if i := strings.Index(body, op); i >= 0 {
			value := strings.Trim(body[i+len(op):], `"'`)
			return AttributeSelector{
				Name:     strings.ToLower(strings.TrimSpace(body[:i])),
				Operator: op,
				Value:    value,
			}, rest
		}
	}
	return AttributeSelector{Name: strings.ToLower(strings.TrimSpace(body))}, rest
}

// Matches reports whether the node satisfies every condition of the selector.
func Matches(node *html.Node, sel Selector) bool {
	if node.Type != html.ElementNode || node.TagName == "document" {
		return false
	}

	if sel.Element != "" && node.TagName != sel.Element {
		return false
	}

	if sel.ID != "" {
		if id, ok := node.GetAttribute("id"); !ok || id != sel.ID {
			return false
		}
	}

	for _, class := range sel.Classes {
		if !node.HasClass(class) {
			return false
		}
	}

	for _, attr := range sel.Attributes {
		if !matchesAttribute(node, attr) {
			return false
		}
	}

	return true
}

func matchesAttribute(node *html.Node, attr AttributeSelector) bool {
	value, ok := node.GetAttribute(attr.Name)
	if !ok {
		return false
	}

	switch attr.Operator {
	case "":
		return true
	case "=":
		return value == attr.Value
	case "^=":
		return strings.HasPrefix(value, attr.Value)
	case "$=":
		return strings.HasSuffix(value, attr.Value)
	case "*=":
		return strings.Contains(value, attr.Value)
	case "~=":
		for _, word := range strings.Fields(value) {
			if word == attr.Value {
				return true
			}
		}
		return false
	case "|=":
		return value == attr.Value || strings.HasPrefix(value, attr.Value+"-")
	}
	return false
}

// QueryAll returns every element under root (excluding root itself) that
// matches any selector in the comma-separated group, in document order.
// A node matching several selectors of the group appears once.
func QueryAll(root *html.Node, group string) []*html.Node {
	selectors := make([]Selector, 0, 2)
	for _, raw := range SplitGroup(group) {
		selectors = append(selectors, ParseSelector(raw))
	}
	if len(selectors) == 0 {
		return nil
	}

	var results []*html.Node
	root.Walk(func(n *html.Node) bool {
		if n == root {
			return false
		}
		for _, sel := range selectors {
			if Matches(n, sel) {
				results = append(results, n)
				break
			}
		}
		return false
	})
	return results
}
