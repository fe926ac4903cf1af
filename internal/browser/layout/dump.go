// internal/browser/layout/dump.go
package layout

import (
	"fmt"
	"strconv"

	tp "github.com/xlab/treeprint"

	"github.com/xkilldash9x/mpdf/internal/browser/dom"
)

// Dump renders the box tree as indented text, one line per box with its
// source tag and absolute geometry.
func Dump(doc *dom.Document, root *LayoutElement) string {
	p := tp.New()
	dumpBox(p, doc, root)
	return p.String()
}

func dumpBox(p tp.Tree, doc *dom.Document, box *LayoutElement) {
	label := describe(doc, box)
	if len(box.Children) == 0 {
		p.AddNode(label)
		return
	}
	branch := p.AddBranch(label)
	for _, child := range box.Children {
		dumpBox(branch, doc, child)
	}
}

func describe(doc *dom.Document, box *LayoutElement) string {
	tag := "?"
	if el, ok := doc.Lookup(box.Element); ok {
		tag = el.Tag
		if el.IsTextNode() {
			tag += " " + strconv.Quote(el.Text)
		}
	}
	return fmt.Sprintf("%s #%d (%g, %g) %gx%g", tag, box.Element, box.X, box.Y, box.Width, box.Height)
}
