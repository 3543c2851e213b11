package dom

import (
	"strconv"
	"strings"
)

// compound is a parsed compound selector: optional tag plus #id, .class and
// [attr] / [attr=val] qualifiers. No combinators.
type compound struct {
	tag     string
	id      string
	classes []string
	attrs   [][2]string // name, value; value "" with present==false means existence test
	exists  []string    // bare [attr] existence tests
}

// mustParseSelector parses a compound selector, panicking on malformed input.
// A selector is configuration, so a bad one is a programmer error.
func mustParseSelector(s string) compound {
	sel, ok := parseSelector(s)
	if !ok {
		panic("dom: invalid selector " + strconv.Quote(s))
	}
	return sel
}

func parseSelector(s string) (compound, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsAny(s, " \t>+~,") {
		return compound{}, false
	}

	var sel compound
	i := 0
	// Leading tag name.
	for i < len(s) && s[i] != '#' && s[i] != '.' && s[i] != '[' {
		i++
	}
	if i > 0 {
		sel.tag = strings.ToLower(s[:i])
		if !validIdent(sel.tag) && sel.tag != "*" {
			return compound{}, false
		}
	}

	for i < len(s) {
		switch s[i] {
		case '#', '.':
			kind := s[i]
			i++
			start := i
			for i < len(s) && s[i] != '#' && s[i] != '.' && s[i] != '[' {
				i++
			}
			name := s[start:i]
			if !validIdent(name) {
				return compound{}, false
			}
			if kind == '#' {
				sel.id = name
			} else {
				sel.classes = append(sel.classes, name)
			}
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return compound{}, false
			}
			body := s[i+1 : i+end]
			i += end + 1
			if body == "" {
				return compound{}, false
			}
			if eq := strings.IndexByte(body, '='); eq >= 0 {
				name := body[:eq]
				value := strings.Trim(body[eq+1:], `"'`)
				if !validIdent(name) {
					return compound{}, false
				}
				sel.attrs = append(sel.attrs, [2]string{name, value})
			} else {
				if !validIdent(body) {
					return compound{}, false
				}
				sel.exists = append(sel.exists, body)
			}
		default:
			return compound{}, false
		}
	}
	return sel, true
}

func validIdent(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

func (sel compound) matches(e *Element) bool {
	if e.nodeType != ElementNode {
		return false
	}
	if sel.tag != "" && sel.tag != "*" && sel.tag != e.tag {
		return false
	}
	if sel.id != "" && e.ID() != sel.id {
		return false
	}
	for _, class := range sel.classes {
		if !e.HasClass(class) {
			return false
		}
	}
	for _, name := range sel.exists {
		if !e.HasAttr(name) {
			return false
		}
	}
	for _, kv := range sel.attrs {
		if e.Attr(kv[0]) != kv[1] {
			return false
		}
	}
	return true
}
