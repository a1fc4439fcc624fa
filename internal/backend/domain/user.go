package domain

import "time"

// User is an account on the platform. Email is the login identifier.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string // argon2 encoded, or an unusable marker
	IsStaff      bool
	IsSuperuser  bool
	IsActive     bool
	DateJoined   time.Time
	LastLogin    *time.Time
	UpdatedAt    time.Time
}

// ExtraFields carries optional flag overrides for account creation. A nil
// field was not supplied by the caller.
type ExtraFields struct {
	IsStaff     *bool
	IsSuperuser *bool
	IsActive    *bool
}

// Bool returns a pointer to v, for filling ExtraFields.
func Bool(v bool) *bool { return &v }

// SetDefault sets *field to v only when the caller left it unset.
func SetDefault(field **bool, v bool) {
	if *field == nil {
		*field = Bool(v)
	}
}

// Apply copies the flags onto u, leaving the model defaults (not staff, not
// superuser, active) where a field is unset.
func (e ExtraFields) Apply(u *User) {
	u.IsStaff = valueOr(e.IsStaff, false)
	u.IsSuperuser = valueOr(e.IsSuperuser, false)
	u.IsActive = valueOr(e.IsActive, true)
}

func valueOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
