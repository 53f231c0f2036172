package auth

// Principal is the caller identity resolved from a request.
type Principal struct {
	UserID  string
	Email   string
	Name    string
	Role    string
	IsGuest bool
}
