package fileblocks

import (
	"path"
	"regexp"
	"strings"
)

// FileBlock represents a single file recovered from pasted text.
type FileBlock struct {
	Path    string // e.g. "src/main.rs"
	Content string // trimmed text between this marker and the next
}

// pathMarkerRe matches a line consisting only of a relative path ending in an
// extension. Path elements may use any Unicode letter or digit; the extension
// is ASCII. Any such line is a boundary, even inside file content.
var pathMarkerRe = regexp.MustCompile(`^[\p{L}\p{N}_\-/.]+\.[a-zA-Z0-9]+$`)

// lineBreaks folds every line separator a paste may carry into "\n".
var lineBreaks = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\v", "\n",
	"\f", "\n",
	"\x1c", "\n",
	"\x1d", "\n",
	"\x1e", "\n",
	"\u0085", "\n",
	"\u2028", "\n",
	"\u2029", "\n",
)

// DefaultNoise lists UI captions that chat and code viewers emit around code
// blocks. Lines equal to one of these (case-insensitive) are dropped.
var DefaultNoise = []string{"tsx", "ts", "js", "jsx", "download", "copy code", "wrap"}

type parseState int

const (
	stateAwaitingPath parseState = iota
	stateAccumulating
)

// Parser segments pasted text into file blocks.
type Parser struct {
	noise map[string]bool
}

// NewParser returns a parser that discards DefaultNoise plus any extra tokens.
func NewParser(extraNoise ...string) *Parser {
	p := &Parser{noise: make(map[string]bool, len(DefaultNoise)+len(extraNoise))}
	for _, tok := range DefaultNoise {
		p.noise[tok] = true
	}
	for _, tok := range extraNoise {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok != "" {
			p.noise[tok] = true
		}
	}
	return p
}

// Parse uses the default noise set.
func Parse(text string) []FileBlock {
	return NewParser().Parse(text)
}

// isPathMarker reports whether the trimmed line would start a new block.
func isPathMarker(line string) bool {
	return pathMarkerRe.MatchString(strings.TrimSpace(line))
}

// Parse splits text into blocks. A marker line such as
//
//	src/main.rs
//
// opens a block; every following line up to the next marker belongs to it.
// Text before the first marker is dropped, and a block with no non-blank
// lines produces nothing. Returns blocks in order of appearance.
func (p *Parser) Parse(text string) []FileBlock {
	text = lineBreaks.Replace(text)

	var blocks []FileBlock
	state := stateAwaitingPath
	var current string
	var buf []string

	flush := func() {
		if state != stateAccumulating || !hasContent(buf) {
			return
		}
		blocks = append(blocks, FileBlock{
			Path:    current,
			Content: strings.TrimSpace(strings.Join(buf, "\n")),
		})
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if isPathMarker(trimmed) {
			flush()
			state = stateAccumulating
			current = trimmed
			buf = buf[:0]
			continue
		}
		if p.noise[strings.ToLower(trimmed)] {
			continue
		}
		if state == stateAccumulating {
			buf = append(buf, line)
		}
	}
	flush()

	return blocks
}

func hasContent(lines []string) bool {
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			return true
		}
	}
	return false
}

// LanguageTag returns the extension of the last path element without the dot,
// or "" when it has none.
func LanguageTag(p string) string {
	base := path.Base(p)
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return base[i+1:]
}
