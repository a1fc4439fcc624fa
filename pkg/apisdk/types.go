package apisdk

import "time"

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// ValidationErrorResponse is returned with 400 when request fields are
// missing or malformed.
type ValidationErrorResponse struct {
	// Code is always "validation_error".
	Code string `json:"code"`

	Message string `json:"message"`

	// Details maps field names to what is wrong with them.
	Details map[string]string `json:"details,omitempty"`
}

// ============================================================================
// Users
// ============================================================================

// CreateUserRequest is the body of POST /api/create-user.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminCreateUserRequest is the body of POST /admin/users/. Nil flags take
// the account defaults; setting is_staff or is_superuser needs a superuser
// session.
type AdminCreateUserRequest struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	IsStaff     *bool  `json:"is_staff,omitempty"`
	IsSuperuser *bool  `json:"is_superuser,omitempty"`
	IsActive    *bool  `json:"is_active,omitempty"`
}

// UserResponse is the public view of an account. It never carries the
// password hash.
type UserResponse struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Username    string     `json:"username"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
	IsActive    bool       `json:"is_active"`
	DateJoined  time.Time  `json:"date_joined"`
	LastLogin   *time.Time `json:"last_login"`
}

// UserListResponse is one page of GET /admin/users/.
type UserListResponse struct {
	Users  []UserResponse `json:"users"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// ============================================================================
// Admin console
// ============================================================================

// AdminLoginResponse is returned alongside the session cookie.
type AdminLoginResponse struct {
	User      UserResponse `json:"user"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// AdminModel describes one entry on the admin index.
type AdminModel struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AdminIndexResponse is the body of GET /admin/.
type AdminIndexResponse struct {
	SiteName string       `json:"site_name"`
	Models   []AdminModel `json:"models"`
	User     UserResponse `json:"user"`
}

// ============================================================================
// Misc
// ============================================================================

// TestResponse is the body of GET /api/test.
type TestResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of each dependency.
type HealthChecks struct {
	Database string `json:"database"`
}
