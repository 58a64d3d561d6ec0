package domain

import "strings"

// Directory is a snapshot of the member list, kept in the order it was
// fetched (alphabetical by name).
type Directory struct {
	members []Member
}

func NewDirectory(members []Member) *Directory {
	return &Directory{members: members}
}

// Match returns the members whose name contains input, ignoring case, in
// directory order. Blank input matches everyone.
func (d *Directory) Match(input string) []Member {
	if strings.TrimSpace(input) == "" {
		return d.members
	}

	needle := strings.ToLower(input)
	out := make([]Member, 0, len(d.members))
	for _, m := range d.members {
		if strings.Contains(strings.ToLower(m.Name), needle) {
			out = append(out, m)
		}
	}
	return out
}

// Lookup finds the member whose name equals input ignoring case.
func (d *Directory) Lookup(input string) (Member, bool) {
	needle := strings.ToLower(input)
	for _, m := range d.members {
		if strings.ToLower(m.Name) == needle {
			return m, true
		}
	}
	return Member{}, false
}

// IsValidMember reports whether input is exactly a member's name, ignoring case.
func (d *Directory) IsValidMember(input string) bool {
	_, ok := d.Lookup(input)
	return ok
}
