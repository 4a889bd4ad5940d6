package domain

const (
	RoleCustomer   = "CUSTOMER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// User models the authenticated actor as reported by the salon API.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
}

// FullName joins first and last name, trimming when one side is empty.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Session is one browser's cached identity: a user paired with the upstream
// token set. The invariant is that User and Token are replaced and cleared
// together, never one without the other. Anonymous (guest) sessions carry an
// ID only.
type Session struct {
	ID           string `json:"id"`
	User         *User  `json:"user,omitempty"`
	Token        string `json:"-"`
	RefreshToken string `json:"-"`
}

// Authenticated reports whether the session holds both a user and a token.
func (s *Session) Authenticated() bool {
	return s != nil && s.User != nil && s.Token != ""
}

// Admin reports whether the session belongs to an admin or super-admin.
func (s *Session) Admin() bool {
	if !s.Authenticated() {
		return false
	}
	return s.User.Role == RoleAdmin || s.User.Role == RoleSuperAdmin
}
