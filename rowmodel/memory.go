package rowmodel

import (
	"sort"
	"strings"
)

// Memory is the reference in-memory Engine. It filters, sorts, and
// paginates an in-process row set, or passes rows through verbatim in
// manual mode. Derived slices are cached so repeated reads return stable
// references until state changes.
//
// Memory is not safe for concurrent use; like the rest of the grid it is
// driven from a single UI goroutine.
type Memory struct {
	rows    []*Row
	byID    map[string]*Row
	filters []Filter
	sorting []Sort
	page    Pagination

	hidden   map[string]bool
	selected map[string]bool

	// manualTotal < 0 means automatic mode.
	manualTotal int

	visibleCache  []*Row
	visibleValid  bool
	selectedCache []*Row
	selectedValid bool
}

// NewMemory creates an empty automatic-mode engine with the default page
// size.
func NewMemory() *Memory {
	return &Memory{
		byID:        make(map[string]*Row),
		hidden:      make(map[string]bool),
		selected:    make(map[string]bool),
		page:        Pagination{PageSize: DefaultPageSize},
		manualTotal: -1,
	}
}

func (m *Memory) SetRows(rows []*Row) {
	m.rows = rows
	m.byID = make(map[string]*Row, len(rows))
	for _, r := range rows {
		m.byID[r.ID] = r
	}
	// Selection survives a data swap only for ids that still exist.
	for id := range m.selected {
		if _, ok := m.byID[id]; !ok {
			delete(m.selected, id)
		}
	}
	m.invalidate()
	m.selectedValid = false
}

func (m *Memory) Rows() []*Row {
	if !m.visibleValid {
		m.visibleCache = m.computeVisible()
		m.visibleValid = true
	}
	return m.visibleCache
}

func (m *Memory) RowByID(id string) *Row {
	return m.byID[id]
}

func (m *Memory) SetFilters(filters []Filter) {
	m.filters = filters
	m.page.PageIndex = 0
	m.invalidate()
}

func (m *Memory) Filters() []Filter {
	return m.filters
}

func (m *Memory) SetSorting(sorts []Sort) {
	m.sorting = sorts
	m.invalidate()
}

func (m *Memory) Sorting() []Sort {
	return m.sorting
}

func (m *Memory) SetPageIndex(index int) {
	if index < 0 {
		index = 0
	}
	if last := m.PageCount() - 1; index > last {
		index = last
	}
	if index == m.page.PageIndex {
		return
	}
	m.page.PageIndex = index
	m.invalidate()
}

func (m *Memory) SetPageSize(size int) {
	if size < 1 {
		size = DefaultPageSize
	}
	if size == m.page.PageSize {
		return
	}
	m.page = Pagination{PageIndex: 0, PageSize: size}
	m.invalidate()
}

func (m *Memory) Pagination() Pagination {
	return m.page
}

func (m *Memory) PageCount() int {
	total := m.manualTotal
	if total < 0 {
		total = len(m.filtered())
	}
	count := (total + m.page.PageSize - 1) / m.page.PageSize
	if count < 1 {
		count = 1
	}
	return count
}

func (m *Memory) SetColumnVisible(key string, visible bool) {
	if visible {
		delete(m.hidden, key)
	} else {
		m.hidden[key] = true
	}
}

func (m *Memory) ColumnVisible(key string) bool {
	return !m.hidden[key]
}

func (m *Memory) SetSelected(id string, selected bool) {
	if _, ok := m.byID[id]; !ok {
		return
	}
	if selected {
		m.selected[id] = true
	} else {
		delete(m.selected, id)
	}
	m.selectedValid = false
}

func (m *Memory) ToggleSelected(id string) {
	if _, ok := m.byID[id]; !ok {
		return
	}
	m.SetSelected(id, !m.selected[id])
}

func (m *Memory) ClearSelection() {
	if len(m.selected) == 0 {
		return
	}
	m.selected = make(map[string]bool)
	m.selectedValid = false
}

func (m *Memory) SelectedRows() []*Row {
	if !m.selectedValid {
		m.selectedCache = make([]*Row, 0, len(m.selected))
		for _, r := range m.rows {
			if m.selected[r.ID] {
				m.selectedCache = append(m.selectedCache, r)
			}
		}
		m.selectedValid = true
	}
	return m.selectedCache
}

func (m *Memory) SetManualTotal(total int) {
	if total < 0 {
		total = -1
	}
	if total == m.manualTotal {
		return
	}
	m.manualTotal = total
	m.invalidate()
}

func (m *Memory) Manual() bool {
	return m.manualTotal >= 0
}

func (m *Memory) invalidate() {
	m.visibleValid = false
}

// computeVisible derives the current page. Manual mode returns the row set
// verbatim: the supplier already filtered, sorted, and paginated.
func (m *Memory) computeVisible() []*Row {
	if m.Manual() {
		return m.rows
	}

	rows := m.filtered()
	rows = m.sorted(rows)

	start := m.page.PageIndex * m.page.PageSize
	if start >= len(rows) {
		return []*Row{}
	}
	end := start + m.page.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

func (m *Memory) filtered() []*Row {
	if len(m.filters) == 0 {
		return m.rows
	}
	out := make([]*Row, 0, len(m.rows))
	for _, r := range m.rows {
		if MatchesAll(r, m.filters) {
			out = append(out, r)
		}
	}
	return out
}

func (m *Memory) sorted(rows []*Row) []*Row {
	if len(m.sorting) == 0 {
		return rows
	}
	out := make([]*Row, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		for _, s := range m.sorting {
			c := compareValues(out[i].Value(s.Column), out[j].Value(s.Column))
			if c == 0 {
				continue
			}
			if s.Desc {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return out
}

// compareValues orders two cell values: numbers numerically, everything
// else by case-folded string form. Nil sorts first.
func compareValues(a, b any) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}
	if fa, fb, ok := numericPair(a, b); ok {
		switch {
		case fa < fb:
			return -1
		case fa > fb:
			return 1
		}
		return 0
	}
	return strings.Compare(foldString(a), foldString(b))
}
