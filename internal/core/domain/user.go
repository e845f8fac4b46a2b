package domain

// User is an account that can authenticate and own tasks. Token holds the
// currently valid session credential; a user has at most one live session.
type User struct {
	ID           int
	Username     string `validate:"required,email,max=255"`
	PasswordHash string
	Token        *string
}

func (u *User) HasSession() bool {
	return u.Token != nil && *u.Token != ""
}
