package models

// LoginRequest is the payload for POST /login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the issued token together with the identity of the
// authenticated user.
type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Identity is the user info persisted alongside the session token.
type Identity struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}
