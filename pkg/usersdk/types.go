package usersdk

// RegisterRequest is the body of both registration endpoints. Roles is
// accepted for wire compatibility but the server assigns roles itself.
type RegisterRequest struct {
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	SponsorID *int64   `json:"sponsorId,omitempty"`
	Password  string   `json:"password"`
	Roles     []string `json:"roles,omitempty"`
}

// RegisterResponse is returned on successful registration.
type RegisterResponse struct {
	Succeeded bool           `json:"succeeded"`
	User      AccountSummary `json:"user"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// AccountSummary is the outward view of an account. It never carries the
// password hash.
type AccountSummary struct {
	ID          string   `json:"id"`
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	SponsorID   *int64   `json:"sponsorId,omitempty"`
	SponsorName string   `json:"sponsorName,omitempty"`
	Roles       []string `json:"roles"`
}

type AssignRolesRequest struct {
	Roles []string `json:"roles"`
}

type ListRolesResponse struct {
	Roles []string `json:"roles"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status  string            `json:"status"`
	Uptime  string            `json:"uptime"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}
