package domain

import "sort"

// CategorySelection describes how much of a category a permission set covers.
type CategorySelection string

const (
	SelectionNone    CategorySelection = "none"
	SelectionPartial CategorySelection = "partial"
	SelectionFull    CategorySelection = "full"
)

// PermissionSet is a set of catalog ids. Ids outside the catalog are never
// admitted, so a set is always a subset of the catalog.
type PermissionSet map[string]struct{}

// NewPermissionSet builds a set from ids, silently dropping unknown ones.
func NewPermissionSet(ids ...string) PermissionSet {
	s := make(PermissionSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id when it is a catalog entry and reports whether it was admitted.
func (s PermissionSet) Add(id string) bool {
	if _, ok := catalogIndex[id]; !ok {
		return false
	}
	s[id] = struct{}{}
	return true
}

func (s PermissionSet) Remove(id string) {
	delete(s, id)
}

func (s PermissionSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the members in catalog order.
func (s PermissionSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return catalogIndex[ids[i]] < catalogIndex[ids[j]] })
	return ids
}

// Permissions returns the catalog entries of the members in catalog order.
func (s PermissionSet) Permissions() []Permission {
	ids := s.IDs()
	out := make([]Permission, 0, len(ids))
	for _, id := range ids {
		out = append(out, catalog[catalogIndex[id]])
	}
	return out
}

// CategoryState is full when every permission of c is present, partial when
// some but not all are, none otherwise.
func (s PermissionSet) CategoryState(c PermissionCategory) CategorySelection {
	total, present := 0, 0
	for _, p := range catalog {
		if p.Category != c {
			continue
		}
		total++
		if s.Has(p.ID) {
			present++
		}
	}
	switch {
	case total == 0 || present == 0:
		return SelectionNone
	case present == total:
		return SelectionFull
	default:
		return SelectionPartial
	}
}

// ToggleCategory selects every permission of c, or removes every one of them
// when selected is false. Permissions in other categories are untouched.
func (s PermissionSet) ToggleCategory(c PermissionCategory, selected bool) {
	for _, p := range catalog {
		if p.Category != c {
			continue
		}
		if selected {
			s[p.ID] = struct{}{}
		} else {
			delete(s, p.ID)
		}
	}
}
