package model

// AdminLoginRequest is the payload for admin authentication against the
// singleton credential row.
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required,min=1,max=128"`
}

// ChangePasswordRequest is the payload for rotating the admin secret.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required,min=1,max=128"`
	NewPassword string `json:"new_password" binding:"required,min=1,max=128"`
}
