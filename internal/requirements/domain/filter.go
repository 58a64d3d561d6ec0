package domain

// StageFilter is the dashboard's "show only this stage" toggle. The zero value
// shows everything.
type StageFilter struct {
	selected Stage
	active   bool
}

// NewStageFilter returns a filter preset to s.
func NewStageFilter(s Stage) StageFilter {
	return StageFilter{selected: s, active: true}
}

// Select toggles s: selecting the active stage clears the filter, selecting
// any other stage replaces it.
func (f *StageFilter) Select(s Stage) {
	if f.active && f.selected == s {
		f.Clear()
		return
	}
	f.selected = s
	f.active = true
}

func (f *StageFilter) Clear() {
	f.selected = ""
	f.active = false
}

// Selected returns the active stage, if any.
func (f StageFilter) Selected() (Stage, bool) {
	return f.selected, f.active
}

// Apply returns the requirements matching the filter in their original order.
// With no active stage the input slice is returned as is.
func (f StageFilter) Apply(reqs []Requirement) []Requirement {
	if !f.active {
		return reqs
	}
	out := make([]Requirement, 0, len(reqs))
	for _, r := range reqs {
		if r.Stage == f.selected {
			out = append(out, r)
		}
	}
	return out
}
