package models

// Entry is a single journal record. UserID identifies the owner and is kept
// out of API responses.
type Entry struct {
	ID       int64  `json:"entryId"`
	UserID   int64  `json:"-"`
	Title    string `json:"title"`
	Notes    string `json:"notes"`
	PhotoURL string `json:"photoUrl"`
}
