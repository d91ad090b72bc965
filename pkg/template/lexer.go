package template

import (
	"strings"
	"unicode"
)

const (
	leftDelim  = "{{"
	rightDelim = "}}"
	thisKey    = "this"
)

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenVariable
	tokenOpen
	tokenClose
)

type blockKind int

const (
	blockIf blockKind = iota + 1
	blockEach
)

func (b blockKind) String() (name string) {
	switch b {
	case blockIf:
		name = "if"
	case blockEach:
		name = "each"
	}
	return name
}

// token is one lexical unit of a template. raw always holds the exact source
// text so that unmatched or invalid markup can be emitted verbatim.
type token struct {
	kind   tokenKind
	raw    string
	path   string
	block  blockKind
	offset int
	// invalid marks a delimited tag whose content is neither a path nor a
	// known block keyword. It is emitted as text.
	invalid bool
}

// lex splits a template into text and tag tokens. It never fails: anything
// that does not form a well-delimited tag is text.
func lex(src string) (tokens []token) {
	pos := 0
	textStart := 0

	flushText := func(end int) {
		if end > textStart {
			tokens = append(tokens, token{kind: tokenText, raw: src[textStart:end], offset: textStart})
		}
	}

	for pos < len(src) {
		open := strings.Index(src[pos:], leftDelim)
		if open < 0 {
			break
		}
		open += pos

		closeRel := strings.Index(src[open+len(leftDelim):], rightDelim)
		if closeRel < 0 {
			// No closing delimiter anywhere after this point.
			break
		}
		end := open + len(leftDelim) + closeRel

		// A later "{{" before the closing delimiter starts the real tag.
		inner := src[open+len(leftDelim) : end]
		if nested := strings.LastIndex(inner, leftDelim); nested >= 0 {
			pos = open + len(leftDelim) + nested
			continue
		}

		flushText(open)
		tagEnd := end + len(rightDelim)
		tokens = append(tokens, classify(src[open:tagEnd], inner, open))
		pos = tagEnd
		textStart = tagEnd
	}

	flushText(len(src))
	tokens = mergeText(tokens)
	return tokens
}

// classify turns the content of one delimited tag into a token.
func classify(raw, content string, offset int) (tok token) {
	tok = token{raw: raw, offset: offset, kind: tokenText}
	content = strings.TrimSpace(content)

	switch {
	case strings.HasPrefix(content, "#"):
		fields := strings.Fields(content[1:])
		if len(fields) != 2 || !validPath(fields[1]) {
			tok.invalid = true
			return tok
		}
		block := parseBlockKeyword(fields[0])
		if block == 0 {
			tok.invalid = true
			return tok
		}
		tok.kind = tokenOpen
		tok.block = block
		tok.path = fields[1]
	case strings.HasPrefix(content, "/"):
		block := parseBlockKeyword(content[1:])
		if block == 0 {
			tok.invalid = true
			return tok
		}
		tok.kind = tokenClose
		tok.block = block
	case validPath(content):
		tok.kind = tokenVariable
		tok.path = content
	default:
		tok.invalid = true
	}

	return tok
}

func parseBlockKeyword(word string) (block blockKind) {
	switch word {
	case "if":
		block = blockIf
	case "each":
		block = blockEach
	}
	return block
}

// validPath reports whether s is a dotted key path with non-empty segments
// and no whitespace or delimiter characters.
func validPath(s string) (ok bool) {
	if s == "" {
		return false
	}
	for _, segment := range strings.Split(s, ".") {
		if segment == "" {
			return false
		}
		for _, r := range segment {
			if unicode.IsSpace(r) || r == '{' || r == '}' || r == '#' || r == '/' {
				return false
			}
		}
	}
	return true
}

func splitPath(path string) (segments []string) {
	segments = strings.Split(path, ".")
	return segments
}

// mergeText joins adjacent text tokens, which keeps the parser's literal
// nodes coarse.
func mergeText(tokens []token) (merged []token) {
	merged = make([]token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.kind == tokenText && !tok.invalid && len(merged) > 0 {
			last := &merged[len(merged)-1]
			if last.kind == tokenText && !last.invalid {
				last.raw += tok.raw
				continue
			}
		}
		merged = append(merged, tok)
	}
	return merged
}
