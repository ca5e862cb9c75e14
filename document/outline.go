package document

// Bookmark describes one document outline entry.
type Bookmark struct {
	Title    string
	Page     int
	Children []Bookmark
}

// TOCEntry is a flattened bookmark entry with its nesting depth.
type TOCEntry struct {
	Title string
	Page  int
	Depth int
}

// FlattenOutline walks a bookmark tree depth-first and returns the entries
// in reading order.
func FlattenOutline(bookmarks []Bookmark) []TOCEntry {
	var entries []TOCEntry
	var walk func(items []Bookmark, depth int)
	walk = func(items []Bookmark, depth int) {
		for _, item := range items {
			entries = append(entries, TOCEntry{
				Title: item.Title,
				Page:  item.Page,
				Depth: depth,
			})
			if len(item.Children) > 0 {
				walk(item.Children, depth+1)
			}
		}
	}
	walk(bookmarks, 0)
	return entries
}
