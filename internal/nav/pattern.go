package nav

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mesh-intelligence/searchnav/pkg/types"
)

// pattern is a parsed state URL: a path of literal and ":name" segments,
// optionally followed by "?a&b&c" naming the query parameters.
type pattern struct {
	raw      string
	segments []string
	query    []string
}

// parsePattern parses raw. A pattern that does not start with "/" is
// appended to base (the parent's path), so a child declared as "search?q"
// under "/" becomes "/search?q".
func parsePattern(base pattern, raw string) (pattern, error) {
	path, rawQuery, _ := strings.Cut(raw, "?")

	var p pattern
	if !strings.HasPrefix(path, "/") {
		p.segments = append(p.segments, base.segments...)
		p.query = append(p.query, base.query...)
	}
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if seg == "" {
			continue
		}
		if seg == ":" {
			return pattern{}, fmt.Errorf("%w: empty placeholder in %q", types.ErrInvalidStateDecl, raw)
		}
		p.segments = append(p.segments, seg)
	}

	seen := make(map[string]bool)
	for _, name := range p.placeholders() {
		seen[name] = true
	}
	if rawQuery != "" {
		for _, name := range strings.Split(rawQuery, "&") {
			if name == "" || seen[name] {
				return pattern{}, fmt.Errorf("%w: bad or duplicate query param %q in %q", types.ErrInvalidStateDecl, name, raw)
			}
			seen[name] = true
			p.query = append(p.query, name)
		}
	}

	p.raw = p.String()
	return p, nil
}

// placeholders returns the names of the ":name" path segments.
func (p pattern) placeholders() []string {
	var out []string
	for _, seg := range p.segments {
		if strings.HasPrefix(seg, ":") {
			out = append(out, seg[1:])
		}
	}
	return out
}

// names returns every URL parameter name the pattern carries.
func (p pattern) names() []string {
	return append(p.placeholders(), p.query...)
}

// match reports whether path matches the pattern and returns the raw values
// of the path placeholders.
func (p pattern) match(path string) (url.Values, bool) {
	var parts []string
	for _, s := range strings.Split(strings.Trim(path, "/"), "/") {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) != len(p.segments) {
		return nil, false
	}

	values := url.Values{}
	for i, seg := range p.segments {
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			v, err := url.PathUnescape(parts[i])
			if err != nil || v == "" {
				return nil, false
			}
			values.Set(name, v)
			continue
		}
		if seg != parts[i] {
			return nil, false
		}
	}
	return values, true
}

// build renders the path with placeholders filled from values, followed by
// the query parameters the pattern declares.
func (p pattern) build(values url.Values) (string, error) {
	var b strings.Builder
	for _, seg := range p.segments {
		b.WriteByte('/')
		if name, ok := strings.CutPrefix(seg, ":"); ok {
			v := values.Get(name)
			if v == "" {
				return "", fmt.Errorf("missing path param %q", name)
			}
			b.WriteString(url.PathEscape(v))
			continue
		}
		b.WriteString(seg)
	}
	if b.Len() == 0 {
		b.WriteByte('/')
	}

	q := url.Values{}
	for _, name := range p.query {
		if v := values.Get(name); v != "" {
			q.Set(name, v)
		}
	}
	if len(q) > 0 {
		b.WriteByte('?')
		b.WriteString(q.Encode())
	}
	return b.String(), nil
}

// String renders the pattern in its declaration syntax.
func (p pattern) String() string {
	s := "/" + strings.Join(p.segments, "/")
	if len(p.query) > 0 {
		s += "?" + strings.Join(p.query, "&")
	}
	return s
}
