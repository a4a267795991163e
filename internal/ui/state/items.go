package state

// Item is one candidate row. ID is the value handed back on acceptance and
// Label is what the row shows.
type Item struct {
	ID    string
	Label string
}

// CloneItems produces a shallow copy of the provided items.
func CloneItems(items []Item) []Item {
	dup := make([]Item, len(items))
	copy(dup, items)
	return dup
}

// ItemsFromNames builds items whose ID and Label are both the name.
func ItemsFromNames(names []string) []Item {
	items := make([]Item, len(names))
	for i, name := range names {
		items[i] = Item{ID: name, Label: name}
	}
	return items
}
