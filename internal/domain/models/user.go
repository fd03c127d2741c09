package models

// UserProfile is an account as the admin user-management screen sees it.
// Password material never travels through this type.
type UserProfile struct {
	Meta
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Role     string `json:"role"` // admin | supervisor
	Active   bool   `json:"active"`
}
