package entity

// Course is a free-form document. Only "title" and "price" are checked on create;
// every other author field is stored as given. "id" is owned by the store.
type Course map[string]any

// ID returns the stored identifier, empty when the document has none.
func (c Course) ID() string {
	id, _ := c["id"].(string)
	return id
}

// Title is used by the search index; empty when absent or not a string.
func (c Course) Title() string {
	t, _ := c["title"].(string)
	return t
}
