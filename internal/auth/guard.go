package auth

// Principal is what the guards look at.
type Principal interface {
	IsAuthenticated() bool
	IsAdmin() bool
}

// Require stands in for the redirect to the login page.
func Require(p Principal) error {
	if p == nil || !p.IsAuthenticated() {
		return ErrUserNotAuthenticated
	}
	return nil
}

func RequireAdmin(p Principal) error {
	if err := Require(p); err != nil {
		return err
	}
	if !p.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
