package model

// Fragment represents one atomic positioned text unit from extraction or OCR.
// Fragments are immutable once produced; all mutation in the pipeline happens
// at the paragraph level.
type Fragment struct {
	// Text is the fragment's text content
	Text string `json:"text"`

	// BBox is the fragment's bounding box in page points
	BBox BBox `json:"bbox"`

	// Page is the 0-based index of the page the fragment belongs to
	Page int `json:"page"`

	// Confidence is the OCR confidence (0-100), or 0 for native extraction
	Confidence float64 `json:"confidence,omitempty"`
}

// pageFragments holds the immutable fragment set for one page.
type pageFragments struct {
	width     float64
	height    float64
	fragments []Fragment
}

// FragmentStore owns the raw fragments for every page of a source document.
// Pages are added once, at parse/OCR time, and never mutated afterwards.
type FragmentStore struct {
	pages []pageFragments
}

// NewFragmentStore creates an empty fragment store
func NewFragmentStore() *FragmentStore {
	return &FragmentStore{}
}

// AddPage records the fragments for the next page and returns its 0-based
// index. The fragment slice is copied and each fragment's Page field is
// stamped with the new index.
func (s *FragmentStore) AddPage(width, height float64, fragments []Fragment) int {
	index := len(s.pages)
	copied := make([]Fragment, len(fragments))
	copy(copied, fragments)
	for i := range copied {
		copied[i].Page = index
	}
	s.pages = append(s.pages, pageFragments{
		width:     width,
		height:    height,
		fragments: copied,
	})
	return index
}

// PageCount returns the number of pages in the store
func (s *FragmentStore) PageCount() int {
	return len(s.pages)
}

// Page returns a copy of the fragments for the given page, or nil if the
// page index is out of range.
func (s *FragmentStore) Page(index int) []Fragment {
	if index < 0 || index >= len(s.pages) {
		return nil
	}
	fragments := make([]Fragment, len(s.pages[index].fragments))
	copy(fragments, s.pages[index].fragments)
	return fragments
}

// PageSize returns the dimensions of the given page in points. Zero values
// are returned for an out-of-range index.
func (s *FragmentStore) PageSize(index int) (width, height float64) {
	if index < 0 || index >= len(s.pages) {
		return 0, 0
	}
	return s.pages[index].width, s.pages[index].height
}
