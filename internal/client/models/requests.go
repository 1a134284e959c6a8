package models

// Request payloads sent to the backend. The validate tags describe the
// client-side checks performed before any network call; the backend applies
// its own rules independently.

// RegisterRequest creates a new account.
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	EmailConfirm    string `json:"email_confirm" validate:"required,eqfield=Email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
	Name            string `json:"name" validate:"required,max=100"`
	Surname         string `json:"surname" validate:"required,max=100"`
}

// ForgotPasswordRequest asks the backend to mail a reset link.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest consumes a reset token.
type ResetPasswordRequest struct {
	Token              string `json:"token" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required,eqfield=NewPassword"`
}

// ChangePasswordRequest changes the password of the logged-in user.
type ChangePasswordRequest struct {
	CurrentPassword    string `json:"current_password" validate:"required"`
	NewPassword        string `json:"new_password" validate:"required"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required,eqfield=NewPassword"`
}

// SetPasswordRequest is the admin variant of a password change.
type SetPasswordRequest struct {
	NewPassword        string `json:"new_password" validate:"required"`
	NewPasswordConfirm string `json:"new_password_confirm" validate:"required,eqfield=NewPassword"`
}

// CreateAdminRequest creates an administrator account.
type CreateAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Password string `json:"password" validate:"required"`
}

// PromoteAdminRequest grants administrator rights to an existing account.
type PromoteAdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// DeleteUserRequest carries the confirmation password required when the
// deleted account is itself an administrator. The value is opaque to the
// client.
type DeleteUserRequest struct {
	AdminPassword string `json:"admin_password,omitempty"`
}

// Upload is one image file attached to a multipart request.
type Upload struct {
	Filename string
	Data     []byte
}

const (
	MaxAdImages      = 9
	MaxAdTitle       = 60
	MaxAdDescription = 500
)

// NewAd is the multipart payload of an ad creation.
type NewAd struct {
	Title       string   `validate:"required,max=60"`
	Description string   `validate:"required,max=500"`
	UserID      ID       `validate:"required"`
	Images      []Upload `validate:"min=1,max=9"`
}

// AdEdit is the multipart payload of an ad update. NewImages are appended to
// the images the ad already has.
type AdEdit struct {
	Title       string   `validate:"required,max=60"`
	Description string   `validate:"required,max=500"`
	NewImages   []Upload `validate:"max=9"`
}

const MaxContactMessage = 500

// ContactMessage is submitted through the contact form.
type ContactMessage struct {
	Subject string `validate:"required,min=3,max=120"`
	Message string `validate:"required,min=10,max=500"`
	Email   string
}
