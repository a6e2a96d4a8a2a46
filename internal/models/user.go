package models

// User is an identity held by the credential store. Records are seeded at
// process start and never mutated afterwards.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
}
