package models

// User is the authenticated principal attached to demo secure routes.
type User struct {
	ID       int      `json:"id"`
	Username string   `json:"username"`
	Scopes   []string `json:"scopes"`
}
