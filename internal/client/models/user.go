package models

// UserProfile is the user record returned by the backend. It is only ever
// mutated by server responses, except for the optimistic admin-panel patches.
type UserProfile struct {
	ID        ID     `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Surname   string `json:"surname,omitempty"`
	IsAdmin   bool   `json:"is_admin"`
	IsBlocked bool   `json:"is_blocked"`
}

// FullName joins name and surname, skipping empty parts.
func (u UserProfile) FullName() string {
	switch {
	case u.Name == "":
		return u.Surname
	case u.Surname == "":
		return u.Name
	default:
		return u.Name + " " + u.Surname
	}
}
