package model

// User is one persisted credential record. The hash is stored under the
// "password" key to stay compatible with existing db.json files.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"password"`
}
