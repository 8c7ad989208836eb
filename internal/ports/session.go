package ports

// Session exposes the signed-in user
type Session interface {
	// UserID returns the current user's ID, or an error when nobody is signed in
	UserID() (string, error)

	// SignOut forgets the current user
	SignOut() error
}
