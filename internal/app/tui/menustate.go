package tui

// DefaultPageSize is the number of options shown on one menu page.
const DefaultPageSize = 10

// MenuState tracks the cursor of a single menu run. The index is always
// within [0, count-1] and the page is always index / pageSize.
type MenuState struct {
	count    int
	pageSize int
	paged    bool
	index    int
}

// NewMenuState returns the initial state: page 0, index 0.
// A non-positive pageSize falls back to DefaultPageSize.
func NewMenuState(count, pageSize int, paged bool) MenuState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if count < 0 {
		count = 0
	}
	return MenuState{count: count, pageSize: pageSize, paged: paged}
}

func (s MenuState) Count() int { return s.count }
func (s MenuState) Index() int { return s.index }

// PageSize is the number of rows per page. Without pagination the whole
// list is a single page.
func (s MenuState) PageSize() int {
	if !s.paged {
		return maxInt(s.count, 1)
	}
	return s.pageSize
}

func (s MenuState) Page() int {
	return s.index / s.PageSize()
}

// TotalPages is ceil(count / pageSize), never less than 1.
func (s MenuState) TotalPages() int {
	size := s.PageSize()
	pages := (s.count + size - 1) / size
	return maxInt(pages, 1)
}

// Bounds returns the [start, end) slice of options on the current page.
func (s MenuState) Bounds() (int, int) {
	start := s.Page() * s.PageSize()
	end := minInt(start+s.PageSize(), s.count)
	return start, end
}

// Move shifts the index by delta and clamps at both ends.
func (s MenuState) Move(delta int) MenuState {
	if s.count == 0 {
		return s
	}
	s.index = clampInt(s.index+delta, 0, s.count-1)
	return s
}

// MovePage jumps delta pages and lands on the first option of the target
// page. It is a no-op without pagination, with a single page, or at the
// first/last page.
func (s MenuState) MovePage(delta int) MenuState {
	if !s.paged || s.TotalPages() <= 1 {
		return s
	}
	target := clampInt(s.Page()+delta, 0, s.TotalPages()-1)
	if target == s.Page() {
		return s
	}
	s.index = target * s.pageSize
	return s
}

func (s MenuState) First() MenuState {
	s.index = 0
	return s
}

func (s MenuState) Last() MenuState {
	if s.count == 0 {
		return s
	}
	s.index = s.count - 1
	return s
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func clampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
