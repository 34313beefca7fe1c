package selection

// ExpansionSet remembers which entities are unfolded in the UI. Purely
// cosmetic; selection derivation never consults it. The engine keeps one
// set for groups and one for recurring events.
type ExpansionSet map[string]bool

func (s ExpansionSet) IsExpanded(id string) bool {
	return s[id]
}

func (s ExpansionSet) Toggle(id string) {
	if s[id] {
		delete(s, id)
	} else {
		s[id] = true
	}
}

func (s ExpansionSet) ExpandAll(ids []string) {
	for _, id := range ids {
		s[id] = true
	}
}

func (s ExpansionSet) CollapseAll() {
	clear(s)
}
