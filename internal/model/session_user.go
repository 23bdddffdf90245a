package model

// SessionUser is the commenter identity carried by the session token claims.
type SessionUser struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}
