package models

// User is an account record. Accounts are optional: anonymous visitors are
// mapped to a default user id.
type User struct {
	ID       int    `json:"id" firestore:"id"`
	Username string `json:"username" firestore:"username"`
	Password string `json:"-" firestore:"password"` // bcrypt hash
}
