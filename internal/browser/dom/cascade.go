// internal/browser/dom/cascade.go
package dom

// CascadeElementStyles resolves the styles of every descendant of start,
// top-down. Each child's store is replaced by Merge(child, parent), so by
// the time a level is processed its parent already carries the inherited
// values of all of its own ancestors. The start element itself is left
// unchanged.
func (d *Document) CascadeElementStyles(start int) {
	parent, ok := d.Lookup(start)
	if !ok {
		return
	}
	for _, handle := range parent.Children {
		child := d.elements[handle]
		child.style = Merge(child.style, parent.style)
		d.CascadeElementStyles(handle)
	}
}

// Cascade runs CascadeElementStyles from the root.
func (d *Document) Cascade() {
	d.CascadeElementStyles(d.root)
}
