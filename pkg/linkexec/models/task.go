package models

// LinkTypeKeyword is the constant link type of every generated task.
const LinkTypeKeyword = "Keyword"

// DescriptionMap maps a lowercased, trimmed URL to its description text.
type DescriptionMap map[string]string

// TaskRow is one link-building task of the execution list.
type TaskRow struct {
	// SNo is the 1-based sequence number, assigned after sorting.
	SNo int `json:"s_no"`
	// Activity is the display-cased category.
	Activity string `json:"activity"`
	// Category is the normalized category the row was generated for.
	Category Category `json:"category"`
	// TargetURL is the page being promoted.
	TargetURL string `json:"target_url"`
	// Description is the rendered description, possibly containing an HTML anchor.
	Description string `json:"description"`
	// Website is the backlink site placeholder.
	Website string `json:"website"`
	// LinkType is always LinkTypeKeyword.
	LinkType string `json:"link_type"`
	// Keyword is the promoted keyword as it appeared in the plan.
	Keyword string `json:"keyword"`
	DA      string `json:"da"`
	PA      string `json:"pa"`
	MozRank string `json:"moz_rank"`
	SS      string `json:"ss"`
}

// Stats counts generated tasks per display-cased category, remembering the
// order in which categories were first seen.
type Stats struct {
	counts map[string]int
	order  []string
}

// Add increments the count for activity by n.
func (s *Stats) Add(activity string, n int) {
	if s.counts == nil {
		s.counts = make(map[string]int)
	}
	if _, ok := s.counts[activity]; !ok {
		s.order = append(s.order, activity)
	}
	s.counts[activity] += n
}

// Get returns the count for activity.
func (s *Stats) Get(activity string) int {
	return s.counts[activity]
}

// Activities returns the counted activities in first-seen order.
func (s *Stats) Activities() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Total returns the sum of all counts.
func (s *Stats) Total() int {
	total := 0
	for _, n := range s.counts {
		total += n
	}
	return total
}

// Len returns the number of distinct activities.
func (s *Stats) Len() int {
	return len(s.order)
}

// Result is the successful outcome of one plan run.
type Result struct {
	// Rows is the sorted, numbered execution list.
	Rows []TaskRow `json:"rows"`
	// Stats holds per-activity task counts.
	Stats Stats `json:"-"`
	// HeaderRow is the 0-based index of the detected header row.
	HeaderRow int `json:"header_row"`
	// Columns lists the mapped activity columns.
	Columns ColumnMap `json:"columns"`
}
