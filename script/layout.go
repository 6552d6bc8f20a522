package script

import "strings"

// doc is a node of a Wadler-style layout document. A group renders flat
// when it fits in the remaining width and breaks every line it directly
// contains otherwise.
type doc interface {
	isDoc()
}

type (
	textDoc   string
	lineDoc   struct{ soft, hard bool }
	nestDoc   struct {
		indent int
		body   doc
	}
	groupDoc  struct{ body doc }
	concatDoc []doc
)

func (textDoc) isDoc()   {}
func (lineDoc) isDoc()   {}
func (nestDoc) isDoc()   {}
func (groupDoc) isDoc()  {}
func (concatDoc) isDoc() {}

func text(s string) doc { return textDoc(s) }

// line renders as a space when flat.
func line() doc { return lineDoc{} }

// softline renders as nothing when flat.
func softline() doc { return lineDoc{soft: true} }

// hardline always breaks and forces enclosing groups to break.
func hardline() doc { return lineDoc{hard: true} }

func nest(indent int, body ...doc) doc { return nestDoc{indent: indent, body: concat(body...)} }
func group(body ...doc) doc            { return groupDoc{body: concat(body...)} }

func concat(parts ...doc) doc {
	if len(parts) == 1 {
		return parts[0]
	}
	return concatDoc(parts)
}

func join(parts []doc, sep ...doc) doc {
	out := make(concatDoc, 0, len(parts)*(len(sep)+1))
	for i, p := range parts {
		if i > 0 {
			out = append(out, sep...)
		}
		out = append(out, p)
	}
	return out
}

type layoutMode int

const (
	modeFlat layoutMode = iota
	modeBreak
)

type layoutItem struct {
	indent int
	mode   layoutMode
	d      doc
}

// render lays d out within width columns.
func render(d doc, width int) string {
	var b strings.Builder
	col := 0
	stack := []layoutItem{{indent: 0, mode: modeBreak, d: d}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch n := it.d.(type) {
		case textDoc:
			b.WriteString(string(n))
			col += len(n)
		case lineDoc:
			if it.mode == modeFlat && !n.hard {
				if !n.soft {
					b.WriteByte(' ')
					col++
				}
				continue
			}
			b.WriteByte('\n')
			b.WriteString(strings.Repeat(" ", it.indent))
			col = it.indent
		case nestDoc:
			stack = append(stack, layoutItem{indent: it.indent + n.indent, mode: it.mode, d: n.body})
		case groupDoc:
			mode := modeBreak
			if !containsHardline(n.body) && fits(width-col, layoutItem{indent: it.indent, mode: modeFlat, d: n.body}, stack) {
				mode = modeFlat
			}
			stack = append(stack, layoutItem{indent: it.indent, mode: mode, d: n.body})
		case concatDoc:
			for i := len(n) - 1; i >= 0; i-- {
				stack = append(stack, layoutItem{indent: it.indent, mode: it.mode, d: n[i]})
			}
		}
	}
	return b.String()
}

// fits measures first in flat mode, then the trailing content up to the
// next line break that the enclosing layout would take.
func fits(remaining int, first layoutItem, rest []layoutItem) bool {
	pending := []layoutItem{first}
	restIdx := len(rest) - 1
	for remaining >= 0 {
		if len(pending) == 0 {
			if restIdx < 0 {
				return true
			}
			pending = append(pending, rest[restIdx])
			restIdx--
		}
		it := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		switch n := it.d.(type) {
		case textDoc:
			remaining -= len(n)
		case lineDoc:
			if it.mode == modeBreak || n.hard {
				return true
			}
			if !n.soft {
				remaining--
			}
		case nestDoc:
			pending = append(pending, layoutItem{indent: it.indent + n.indent, mode: it.mode, d: n.body})
		case groupDoc:
			pending = append(pending, layoutItem{indent: it.indent, mode: it.mode, d: n.body})
		case concatDoc:
			for i := len(n) - 1; i >= 0; i-- {
				pending = append(pending, layoutItem{indent: it.indent, mode: it.mode, d: n[i]})
			}
		}
	}
	return false
}

func containsHardline(d doc) bool {
	switch n := d.(type) {
	case lineDoc:
		return n.hard
	case nestDoc:
		return containsHardline(n.body)
	case groupDoc:
		return containsHardline(n.body)
	case concatDoc:
		for _, part := range n {
			if containsHardline(part) {
				return true
			}
		}
	}
	return false
}
