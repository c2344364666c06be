package identity

// AuthRequest is the body of the register and login endpoints.
type AuthRequest struct {
	Handle   string `json:"handle" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned after a successful login.
type AuthResponse struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
	Token  string `json:"token"`
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	ID     string `json:"id"`
	Handle string `json:"handle"`
}
