package user

import "strings"

// Profile is the record stored at users/{userId} after registration.
type Profile struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// NewProfile synthesizes the profile written once at registration.
func NewProfile(userID, email, firstName, lastName string) *Profile {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	return &Profile{
		UserID:      userID,
		Email:       strings.TrimSpace(email),
		FirstName:   firstName,
		LastName:    lastName,
		DisplayName: strings.TrimSpace(firstName + " " + lastName),
	}
}

// Name returns the display name, falling back to the email.
func (p *Profile) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Email
}
