package domain

// Tag labels questions. Tags are shared by every question that uses the
// same name and are never deleted once created.
type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
