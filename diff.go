package blogwatch

// NewItems returns the items of current whose title does not appear in
// previous, in the order of current. Titles are compared byte for byte.
// Changed dates, excerpts, or links do not make an item new, and items that
// disappeared from current are not reported.
func NewItems(current, previous []*Item) []*Item {
	seen := Titles(previous)

	var fresh []*Item
	for _, item := range current {
		if _, ok := seen[item.Title]; ok {
			continue
		}
		fresh = append(fresh, item)
	}
	return fresh
}
