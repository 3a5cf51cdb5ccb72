package document

// OrderStride is the spacing between consecutive order indices at assignment
// time. The gap leaves room for midpoint insertion during interactive
// reordering without renumbering the page.
const OrderStride = 10

// midpoint returns an unused order index strictly between a and b, or false
// when the interval has no interior.
func midpoint(a, b int) (int, bool) {
	if b-a < 2 {
		return 0, false
	}
	return a + (b-a)/2, true
}

// renumberLocked reassigns stride-spaced order indices across one page,
// preserving the current reading order. Caller holds the write lock.
func renumberLocked(pg *Page) {
	for i, p := range pg.sortedByOrder() {
		p.Order = (i + 1) * OrderStride
	}
}

// orderAfterLocked computes an order index that places a paragraph directly
// after the anchor. When the gap between the anchor and its successor is
// exhausted the page is renumbered first, so the returned index is always
// unique on the page. Caller holds the write lock.
func (d *Document) orderAfterLocked(pg *Page, anchor *Paragraph) int {
	successor := pg.successorOf(anchor.Order)
	if successor == nil {
		return anchor.Order + OrderStride
	}
	if mid, ok := midpoint(anchor.Order, successor.Order); ok {
		return mid
	}
	renumberLocked(pg)
	successor = pg.successorOf(anchor.Order)
	if successor == nil {
		return anchor.Order + OrderStride
	}
	mid, _ := midpoint(anchor.Order, successor.Order)
	return mid
}
