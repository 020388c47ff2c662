package domain

// User is the credential record used for authentication.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsActive     bool
	IsSuperuser  bool
	Metadata
}
