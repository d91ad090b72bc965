package template

import (
	"fmt"
	"sort"
	"strings"
)

// node is one element of a parsed template.
type node interface {
	render(b *strings.Builder, sc scope)
}

type textNode struct {
	text string
}

type variableNode struct {
	path     string
	segments []string
	raw      string
}

type ifNode struct {
	path     string
	segments []string
	body     []node
}

type eachNode struct {
	path     string
	segments []string
	body     []node
}

// Diagnostic describes markup that the renderer passes through literally
// instead of interpreting.
type Diagnostic struct {
	Offset  int    `json:"offset"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// String formats the diagnostic as line:column: message.
func (d Diagnostic) String() (s string) {
	s = fmt.Sprintf("%d:%d: %s %s", d.Line, d.Column, d.Message, d.Tag)
	return s
}

// Template is a parsed template. It is immutable and may be executed
// concurrently.
type Template struct {
	source      string
	nodes       []node
	paths       []string
	diagnostics []Diagnostic
}

// Parse compiles template text. Parsing never fails; malformed markup is
// kept as literal text and reported through Diagnostics.
func Parse(src string) (t *Template) {
	p := &parser{
		src:    src,
		tokens: lex(src),
		paths:  make(map[string]struct{}),
	}
	p.matchBlocks()
	nodes := p.build(0, len(p.tokens))

	t = &Template{
		source:      src,
		nodes:       nodes,
		diagnostics: p.sortedDiagnostics(),
		paths:       p.sortedPaths(),
	}
	return t
}

// Source returns the template text the Template was parsed from.
func (t *Template) Source() (src string) {
	return t.source
}

// Diagnostics returns unmatched block tags and tags with invalid content,
// ordered by position.
func (t *Template) Diagnostics() (diags []Diagnostic) {
	diags = make([]Diagnostic, len(t.diagnostics))
	copy(diags, t.diagnostics)
	return diags
}

// Paths returns the distinct data paths referenced by placeholders and
// blocks, sorted.
func (t *Template) Paths() (paths []string) {
	paths = make([]string, len(t.paths))
	copy(paths, t.paths)
	return paths
}

type parser struct {
	src    string
	tokens []token
	// pairs maps the index of an open tag to the index of its close tag.
	pairs       map[int]int
	diagnostics []Diagnostic
	paths       map[string]struct{}
	// newlines holds the offsets of every "\n" in src, filled on first report.
	newlines []int
}

// matchBlocks pairs block tags with a stack. A close tag pairs with the
// nearest unmatched open tag of the same kind; open tags stacked above that
// one are left unmatched. Every open tag is pushed and popped once.
func (p *parser) matchBlocks() {
	p.pairs = make(map[int]int)

	// stack holds token indexes of open tags; byKind holds, per block kind,
	// the positions in stack of that kind's open tags.
	var stack []int
	byKind := make(map[blockKind][]int)

	for i, tok := range p.tokens {
		switch {
		case tok.invalid:
			p.report(tok, "invalid tag")
		case tok.kind == tokenOpen:
			byKind[tok.block] = append(byKind[tok.block], len(stack))
			stack = append(stack, i)
		case tok.kind == tokenClose:
			positions := byKind[tok.block]
			if len(positions) == 0 {
				p.report(tok, "close tag without open")
				continue
			}
			at := positions[len(positions)-1]
			for _, skipped := range stack[at+1:] {
				kind := p.tokens[skipped].block
				byKind[kind] = byKind[kind][:len(byKind[kind])-1]
				p.report(p.tokens[skipped], "unterminated block")
			}
			byKind[tok.block] = byKind[tok.block][:len(byKind[tok.block])-1]
			p.pairs[stack[at]] = i
			stack = stack[:at]
		}
	}

	for _, open := range stack {
		p.report(p.tokens[open], "unterminated block")
	}
}

// build turns tokens[lo:hi] into nodes. Matched pairs always nest inside
// the range they were opened in. Runs of literal tokens are contiguous in
// src, so each run becomes one slice of it.
func (p *parser) build(lo, hi int) (nodes []node) {
	textStart, textEnd := -1, -1
	flush := func() {
		if textStart >= 0 {
			nodes = append(nodes, textNode{text: p.src[textStart:textEnd]})
			textStart = -1
		}
	}
	literal := func(tok token) {
		if tok.raw == "" {
			return
		}
		if textStart < 0 {
			textStart = tok.offset
		}
		textEnd = tok.offset + len(tok.raw)
	}

	for i := lo; i < hi; i++ {
		tok := p.tokens[i]
		switch tok.kind {
		case tokenVariable:
			p.paths[tok.path] = struct{}{}
			flush()
			nodes = append(nodes, variableNode{path: tok.path, segments: splitPath(tok.path), raw: tok.raw})
		case tokenOpen:
			closeIdx, ok := p.pairs[i]
			if !ok {
				literal(tok)
				continue
			}
			p.paths[tok.path] = struct{}{}
			flush()
			body := p.build(i+1, closeIdx)
			if tok.block == blockIf {
				nodes = append(nodes, ifNode{path: tok.path, segments: splitPath(tok.path), body: body})
			} else {
				nodes = append(nodes, eachNode{path: tok.path, segments: splitPath(tok.path), body: body})
			}
			i = closeIdx
		default:
			literal(tok)
		}
	}
	flush()
	return nodes
}

func (p *parser) report(tok token, message string) {
	if p.newlines == nil {
		p.newlines = make([]int, 0, strings.Count(p.src, "\n"))
		for i := 0; i < len(p.src); i++ {
			if p.src[i] == '\n' {
				p.newlines = append(p.newlines, i)
			}
		}
	}

	// before is the number of newlines ahead of the tag.
	before := sort.SearchInts(p.newlines, tok.offset)
	line := 1 + before
	column := tok.offset + 1
	if before > 0 {
		column = tok.offset - p.newlines[before-1]
	}
	p.diagnostics = append(p.diagnostics, Diagnostic{
		Offset:  tok.offset,
		Line:    line,
		Column:  column,
		Tag:     tok.raw,
		Message: message,
	})
}

func (p *parser) sortedDiagnostics() (diags []Diagnostic) {
	diags = p.diagnostics
	sort.SliceStable(diags, func(i, j int) bool {
		return diags[i].Offset < diags[j].Offset
	})
	return diags
}

func (p *parser) sortedPaths() (paths []string) {
	paths = make([]string, 0, len(p.paths))
	for path := range p.paths {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}
