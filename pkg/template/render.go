package template

import (
	"html"
	"strings"
)

// scope is the evaluation context of a node. item is set inside an
// {{#each}} body and is what "this" refers to.
type scope struct {
	root   Record
	item   Value
	inLoop bool
}

// Render substitutes data into tmpl and returns the resulting HTML.
//
// Scalars are HTML-escaped; values built with Raw are inserted verbatim.
// A placeholder whose path does not resolve to a scalar is left in the
// output unchanged. Render never fails and does not modify its inputs.
func Render(tmpl string, data Record) (out string) {
	out = Parse(tmpl).Execute(data)
	return out
}

// Execute renders the parsed template against data.
func (t *Template) Execute(data Record) (out string) {
	var b strings.Builder
	b.Grow(len(t.source))
	renderNodes(&b, t.nodes, scope{root: data})
	out = b.String()
	return out
}

// Escape HTML-escapes the five characters &, <, >, " and '.
func Escape(s string) (escaped string) {
	escaped = html.EscapeString(s)
	return escaped
}

func renderNodes(b *strings.Builder, nodes []node, sc scope) {
	for _, n := range nodes {
		n.render(b, sc)
	}
}

func (n textNode) render(b *strings.Builder, _ scope) {
	b.WriteString(n.text)
}

func (n variableNode) render(b *strings.Builder, sc scope) {
	v, local := sc.resolve(n.segments)

	switch {
	case v.Kind() == KindRaw:
		b.WriteString(v.Text())
	case v.IsScalar():
		b.WriteString(Escape(v.Text()))
	case local:
		// Missing or non-scalar fields of a loop item render as nothing so
		// that template syntax never leaks into the output.
	default:
		b.WriteString(n.raw)
	}
}

func (n ifNode) render(b *strings.Builder, sc scope) {
	v, _ := sc.resolve(n.segments)
	if v.Truthy() {
		renderNodes(b, n.body, sc)
	}
}

func (n eachNode) render(b *strings.Builder, sc scope) {
	v, _ := sc.resolve(n.segments)
	if v.Kind() != KindList {
		return
	}

	for i, item := range v.Items() {
		if i > 0 {
			b.WriteByte('\n')
		}
		renderNodes(b, n.body, scope{root: sc.root, item: item, inLoop: true})
	}
}

// resolve looks up a path. Inside a loop, paths rooted at "this" resolve
// against the current item and report local=true; all other paths resolve
// against the root record.
func (sc scope) resolve(segments []string) (v Value, local bool) {
	if sc.inLoop && segments[0] == thisKey {
		v, _ = lookupSegments(sc.item, segments[1:])
		local = true
		return v, local
	}

	v, _ = lookupSegments(Map(sc.root), segments)
	return v, local
}
