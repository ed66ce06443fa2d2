package models

// Role values carried by the access token's role claim. Anything the backend
// sends that is not "admin" maps to customer.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// TokenPair holds the credentials returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest mirrors the backend's registration payload. Role is a
// numeric enum on the wire.
type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	PhoneNumber     string `json:"phoneNumber"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            int    `json:"role"`
}

// User is the profile derived from access token claims and cached locally.
type User struct {
	ID          string `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
	IsActive    bool   `json:"isActive"`
}

// AuthState is the published authentication snapshot. Zero value means
// unauthenticated.
type AuthState struct {
	Authenticated bool
	User          *User
	AccessToken   string
}
