// Package api talks to the Bottlerun backend over its JSON REST interface.
// It owns the wire request/response shapes and maps transport and server
// failures onto the client error taxonomy.
package api

import (
	"context"

	"github.com/bottlerun/bottlerun/internal/client/models"
)

// Client is the remote API surface consumed by the session and cart
// services. Implementations attach the bearer token set via SetToken to
// every authenticated request.
type Client interface {
	// Login exchanges email/password for a bearer token and profile.
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// Register creates an account. It does not establish a session.
	Register(ctx context.Context, req *SignupRequest) (*models.UserProfile, error)

	// GoogleLogin exchanges a third-party identity token for a backend
	// session token. Same result contract as Login.
	GoogleLogin(ctx context.Context, idToken string) (*AuthResult, error)

	// UpdateProfile updates profile fields and returns the fresh profile.
	UpdateProfile(ctx context.Context, req *UpdateProfileRequest) (*models.UserProfile, error)

	// CreateOrder submits an order built from local cart lines.
	CreateOrder(ctx context.Context, req *OrderRequest) (*OrderResult, error)

	// SetToken installs the bearer token used for authenticated calls.
	SetToken(token string)

	// ClearToken drops the installed bearer token.
	ClearToken()
}

// AuthResult is what a successful login or google-login yields.
type AuthResult struct {
	Token string
	User  models.UserProfile
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleLoginRequest struct {
	IDToken string `json:"idToken"`
}

// SignupRequest carries the account-creation payload. Address, phone and
// image are optional at signup time.
type SignupRequest struct {
	Username  string          `json:"username"`
	Firstname string          `json:"firstname"`
	Lastname  string          `json:"lastname"`
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	Address   *models.Address `json:"address,omitempty"`
	Phone     string          `json:"phone,omitempty"`
	Image     string          `json:"image,omitempty"`
}

// UpdateProfileRequest carries a profile update. ID selects the user and
// is not part of the body.
type UpdateProfileRequest struct {
	ID        string          `json:"-"`
	Username  string          `json:"username,omitempty"`
	Firstname string          `json:"firstname,omitempty"`
	Lastname  string          `json:"lastname,omitempty"`
	Email     string          `json:"email,omitempty"`
	Address   *models.Address `json:"address,omitempty"`
	Phone     string          `json:"phone,omitempty"`
}

// OrderItem is one order line as the backend expects it.
type OrderItem struct {
	Product  string  `json:"product"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// OrderRequest is the order-creation payload. Reference is a
// client-generated idempotency key.
type OrderRequest struct {
	Reference       string         `json:"reference"`
	UserID          string         `json:"userId"`
	ShippingAddress models.Address `json:"shippingAddress"`
	PaymentMethod   string         `json:"paymentMethod"`
	OrderItems      []OrderItem    `json:"orderItems"`
	ShippingPrice   float64        `json:"shippingPrice"`
	TotalPrice      float64        `json:"totalPrice"`
	ProofOfPayment  string         `json:"proofOfPayment,omitempty"`
}

// OrderResult is the backend's view of a created order.
type OrderResult struct {
	ID     string `json:"_id"`
	Status string `json:"status"`
}
