package models

// Item is the demo resource used by the example CRUD routes.
type Item struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Validate reports why the item is not acceptable as a create/update payload.
// The returned slice is empty when the item is valid.
func (i Item) Validate() []string {
	var problems []string
	if i.ID <= 0 {
		problems = append(problems, "id must be a positive integer")
	}
	if i.Name == "" {
		problems = append(problems, "name is required")
	}
	if len(i.Name) > 255 {
		problems = append(problems, "name must be at most 255 characters")
	}
	return problems
}
