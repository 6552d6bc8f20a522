package script

import (
	"sort"
	"strconv"
	"strings"
)

const (
	maxMacroRepeat   = 10000
	maxExpandedBytes = 4 << 20
	// maxLoopIterations counts iterations across all loops of one expansion,
	// so nested loops with empty bodies still terminate quickly.
	maxLoopIterations = 1 << 20
)

// MacroNode is one node of a parsed macro tree.
type MacroNode interface {
	macroNode()
}

// MacroBlob is literal text copied through unchanged. Pos is where Text
// starts in the source.
type MacroBlob struct {
	Text string
	Pos  Position
}

// MacroPlaceholder is a run of `$` bound to the innermost enclosing loop.
// Depth 1 is the current element, 2 the next and 3 the one after.
type MacroPlaceholder struct {
	Depth int
}

// MacroNumericLoop repeats Body Count times with indices 1..Count.
type MacroNumericLoop struct {
	Count int
	Body  *MacroSequence
	Pos   Position
}

// MacroLetterLoop repeats Body once per letter.
type MacroLetterLoop struct {
	Letters string
	Body    *MacroSequence
	Pos     Position
}

// MacroSequence is an ordered list of nodes.
type MacroSequence struct {
	Nodes []MacroNode
}

func (*MacroBlob) macroNode()        {}
func (*MacroPlaceholder) macroNode() {}
func (*MacroNumericLoop) macroNode() {}
func (*MacroLetterLoop) macroNode()  {}
func (*MacroSequence) macroNode()    {}

type macroParser struct {
	src  string
	scan *scanner
}

// ExpandTree parses the macro structure of source without rendering it.
func ExpandTree(source string) (*MacroSequence, error) {
	p := &macroParser{src: source, scan: newScanner(source)}
	return p.parseSequence(false, Position{}, "")
}

// Expand unrolls every `@spec{body}` macro in source. The result contains no
// macro syntax; `Math.` qualifiers are dropped along the way.
func Expand(source string) (string, error) {
	expanded, _, err := ExpandWithMap(source)
	return expanded, err
}

// ExpandWithMap is Expand that also returns a map from positions in the
// expanded text back to the source.
func ExpandWithMap(source string) (string, *SourceMap, error) {
	tree, err := ExpandTree(source)
	if err != nil {
		return "", nil, err
	}
	r := &macroRenderer{source: source, sm: &SourceMap{}}
	if err := r.render(tree, nil); err != nil {
		return "", nil, err
	}
	r.sm.expanded = r.out.String()
	return r.sm.expanded, r.sm, nil
}

// SourceMap relates expanded text to the source it came from. Text outside
// macros maps to itself; everything a loop produced maps to its `@`.
type SourceMap struct {
	expanded string
	spans    []mapSpan
}

type mapSpan struct {
	out      int
	src      Position
	verbatim bool
}

// SourcePosition translates a position in the expanded text. Positions
// without a line are returned unchanged.
func (m *SourceMap) SourcePosition(pos Position) Position {
	if m == nil || pos.Line == 0 || len(m.spans) == 0 {
		return pos
	}
	i := sort.Search(len(m.spans), func(i int) bool { return m.spans[i].out > pos.Offset }) - 1
	if i < 0 {
		return pos
	}
	span := m.spans[i]
	if !span.verbatim {
		return span.src
	}
	end := min(pos.Offset, len(m.expanded))
	return advancePosition(span.src, m.expanded[span.out:end])
}

func advancePosition(pos Position, text string) Position {
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
		pos.Offset++
	}
	return pos
}

func (p *macroParser) eof() bool {
	return p.scan.offset >= len(p.src)
}

func (p *macroParser) cur() byte {
	return p.src[p.scan.offset]
}

// parseSequence reads until EOF or, inside braces, the matching close.
func (p *macroParser) parseSequence(inLoop bool, open Position, unterminated string) (*MacroSequence, error) {
	seq := &MacroSequence{}
	var text strings.Builder
	var textAt Position
	write := func(c byte) {
		if text.Len() == 0 {
			textAt = p.scan.pos()
		}
		text.WriteByte(c)
	}
	flush := func() {
		if text.Len() > 0 {
			seq.Nodes = append(seq.Nodes, &MacroBlob{Text: text.String(), Pos: textAt})
			text.Reset()
		}
	}

	for !p.eof() {
		c := p.cur()
		switch {
		case c == '@':
			flush()
			loop, err := p.parseMacro()
			if err != nil {
				return nil, err
			}
			seq.Nodes = append(seq.Nodes, loop)
		case c == '$' && inLoop:
			flush()
			n := 0
			for !p.eof() && p.cur() == '$' {
				n++
				p.scan.advance(1)
			}
			for ; n >= 3; n -= 3 {
				seq.Nodes = append(seq.Nodes, &MacroPlaceholder{Depth: 3})
			}
			if n > 0 {
				seq.Nodes = append(seq.Nodes, &MacroPlaceholder{Depth: n})
			}
		case c == '{':
			write(c)
			braceAt := p.scan.pos()
			p.scan.advance(1)
			flush()
			inner, err := p.parseSequence(true, braceAt, "unbalanced '{'")
			if err != nil {
				return nil, err
			}
			closeAt := p.scan.pos()
			closeAt.Offset--
			closeAt.Column--
			seq.Nodes = append(seq.Nodes, inner, &MacroBlob{Text: "}", Pos: closeAt})
		case c == '}' && inLoop:
			flush()
			p.scan.advance(1)
			return seq, nil
		default:
			write(c)
			p.scan.advance(1)
		}
	}
	if inLoop {
		return nil, newError(MacroSyntaxError, p.src, open, "%s", unterminated)
	}
	flush()
	return seq, nil
}

func (p *macroParser) parseMacro() (MacroNode, error) {
	at := p.scan.pos()
	p.scan.advance(1)
	begin := p.scan.offset
	for !p.eof() && p.cur() != '{' {
		if c := p.cur(); !isLetter(c) && !isDigit(c) {
			return nil, newError(MacroSyntaxError, p.src, at, "malformed macro spec %q", p.src[begin:p.scan.offset+1])
		}
		p.scan.advance(1)
	}
	spec := p.src[begin:p.scan.offset]
	if p.eof() {
		return nil, newError(MacroSyntaxError, p.src, at, "macro %q is missing its body", "@"+spec)
	}
	if spec == "" {
		return nil, newError(MacroSyntaxError, p.src, at, "empty macro spec")
	}
	p.scan.advance(1)

	switch {
	case allDigits(spec):
		count, err := strconv.Atoi(spec)
		if err != nil || count > maxMacroRepeat {
			return nil, newError(MacroSyntaxError, p.src, at, "repeat count %s exceeds %d", spec, maxMacroRepeat)
		}
		body, err := p.parseSequence(true, at, "unterminated macro body")
		if err != nil {
			return nil, err
		}
		return &MacroNumericLoop{Count: count, Body: body, Pos: at}, nil
	case allLetters(spec):
		body, err := p.parseSequence(true, at, "unterminated macro body")
		if err != nil {
			return nil, err
		}
		return &MacroLetterLoop{Letters: spec, Body: body, Pos: at}, nil
	default:
		return nil, newError(MacroSyntaxError, p.src, at, "malformed macro spec %q", spec)
	}
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func allLetters(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isLetter(s[i]) {
			return false
		}
	}
	return true
}

// loopBinding holds the substitutions for $, $$ and $$$ of one iteration.
type loopBinding [3]string

type macroRenderer struct {
	source     string
	out        strings.Builder
	iterations int
	sm         *SourceMap
	// depth counts the loops being rendered; only depth 0 output is mapped.
	depth int
}

func (r *macroRenderer) mark(src Position, verbatim bool) {
	if r.depth == 0 {
		r.sm.spans = append(r.sm.spans, mapSpan{out: r.out.Len(), src: src, verbatim: verbatim})
	}
}

// writeBlob copies text without its `Math.` qualifiers, marking each kept
// piece at its own source position.
func (r *macroRenderer) writeBlob(n *MacroBlob) {
	pos := n.Pos
	for _, piece := range strings.SplitAfter(n.Text, "Math.") {
		kept := strings.TrimSuffix(piece, "Math.")
		if kept != "" {
			r.mark(pos, true)
			r.out.WriteString(kept)
		}
		pos = advancePosition(pos, piece)
	}
}

func (r *macroRenderer) iterate(pos Position) error {
	r.iterations++
	if r.iterations > maxLoopIterations {
		return newError(MacroSyntaxError, r.source, pos, "expansion exceeds %d loop iterations", maxLoopIterations)
	}
	return nil
}

func (r *macroRenderer) render(node MacroNode, binding *loopBinding) error {
	if r.out.Len() > maxExpandedBytes {
		return newError(MacroSyntaxError, r.source, Position{}, "expansion exceeds %d bytes", maxExpandedBytes)
	}
	switch n := node.(type) {
	case *MacroBlob:
		r.writeBlob(n)
	case *MacroPlaceholder:
		if binding == nil {
			r.out.WriteString(strings.Repeat("$", n.Depth))
			return nil
		}
		r.out.WriteString(binding[n.Depth-1])
	case *MacroSequence:
		for _, child := range n.Nodes {
			if err := r.render(child, binding); err != nil {
				return err
			}
		}
	case *MacroNumericLoop:
		r.mark(n.Pos, false)
		r.depth++
		defer func() { r.depth-- }()
		for i := 1; i <= n.Count; i++ {
			if err := r.iterate(n.Pos); err != nil {
				return err
			}
			b := loopBinding{
				strconv.Itoa(i),
				strconv.Itoa(i%n.Count + 1),
				strconv.Itoa((i+1)%n.Count + 1),
			}
			if err := r.render(n.Body, &b); err != nil {
				return err
			}
		}
	case *MacroLetterLoop:
		r.mark(n.Pos, false)
		r.depth++
		defer func() { r.depth-- }()
		k := len(n.Letters)
		for i := 0; i < k; i++ {
			if err := r.iterate(n.Pos); err != nil {
				return err
			}
			b := loopBinding{
				n.Letters[i : i+1],
				n.Letters[(i+1)%k : (i+1)%k+1],
				n.Letters[(i+2)%k : (i+2)%k+1],
			}
			if err := r.render(n.Body, &b); err != nil {
				return err
			}
		}
	}
	return nil
}
