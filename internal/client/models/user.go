// Package models defines client-side data models used by the Bottlerun app:
// the cached user profile, the locally persisted session, and cart/order
// value types.
package models

import (
	"encoding/json"
	"fmt"
)

// Image is a remote image reference as returned by the backend.
type Image struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

// Address is the structured shipping/billing address embedded in a profile.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// UserProfile is the full profile object the backend returns on login,
// signup and profile update. It is the value cached in the credential
// store and rendered by the UI. It never carries the bearer token.
type UserProfile struct {
	ID         string  `json:"_id"`
	Username   string  `json:"username"`
	Firstname  string  `json:"firstname"`
	Lastname   string  `json:"lastname"`
	Email      string  `json:"email"`
	Address    Address `json:"address"`
	Phone      string  `json:"phone"`
	Image      Image   `json:"image"`
	IsVerified bool    `json:"isVerified"`
	IsAdmin    bool    `json:"isAdmin"`
}

// Session is the single durable session row: the bearer token plus a
// mirror of the profile fields. The address is stored serialized, so the
// row maps one-to-one onto the users table.
type Session struct {
	UserID        string
	Token         string
	Username      string
	Firstname     string
	Lastname      string
	Email         string
	Address       string
	Phone         string
	ImagePublicID string
	ImageURL      string
	IsVerified    bool
	IsAdmin       bool
	PushToken     string
}

// SessionFromProfile builds a session row from a profile and a bearer token.
func SessionFromProfile(p *UserProfile, token string) (*Session, error) {
	addr, err := json.Marshal(p.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize address: %w", err)
	}
	return &Session{
		UserID:        p.ID,
		Token:         token,
		Username:      p.Username,
		Firstname:     p.Firstname,
		Lastname:      p.Lastname,
		Email:         p.Email,
		Address:       string(addr),
		Phone:         p.Phone,
		ImagePublicID: p.Image.PublicID,
		ImageURL:      p.Image.URL,
		IsVerified:    p.IsVerified,
		IsAdmin:       p.IsAdmin,
	}, nil
}
