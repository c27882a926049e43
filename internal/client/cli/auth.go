package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/bottlerun/bottlerun/internal/client/api"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for the signup fields and creates an account via the
// session service. Signing up does not log the user in.
func (a *App) Register(ctx context.Context) error {
	req := &api.SignupRequest{}
	var err error

	if req.Username, err = getSimpleText(a.reader, "Enter username", os.Stdout); err != nil {
		return err
	}
	if req.Firstname, err = getSimpleText(a.reader, "Enter first name", os.Stdout); err != nil {
		return err
	}
	if req.Lastname, err = getSimpleText(a.reader, "Enter last name", os.Stdout); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Enter email", os.Stdout); err != nil {
		return err
	}
	if req.Password, err = getPassword(os.Stdout); err != nil {
		return err
	}

	if _, err := a.sessions.Signup(ctx, req); err != nil {
		log.Printf("Registration unsuccessful: %s", err.Error())
		return err
	}

	fmt.Println("Success! You can now log in.")
	return nil
}

// Login prompts for credentials and authenticates against the backend.
// On success the session is persisted locally and the prompt switches to
// the logged-in command set.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.sessions.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			log.Printf("Server unavailable: %s", err.Error())
		} else {
			log.Printf("Login unsuccessful: %s", err.Error())
		}
		return err
	}

	a.user = user
	log.Printf("Login successful")
	return nil
}

// GoogleLogin prompts for a Google identity token and exchanges it for a
// backend session. Same local persistence contract as Login.
func (a *App) GoogleLogin(ctx context.Context) error {
	idToken, err := getSimpleText(a.reader, "Paste Google ID token", os.Stdout)
	if err != nil {
		return err
	}

	user, err := a.sessions.GoogleLogin(ctx, idToken)
	if err != nil {
		log.Printf("Google login unsuccessful: %s", err.Error())
		return err
	}

	a.user = user
	log.Printf("Login successful")
	return nil
}

// Logout clears the locally persisted session and credential cache. The
// in-memory user is dropped even if part of the cleanup failed.
func (a *App) Logout(ctx context.Context) error {
	err := a.sessions.Logout(ctx)
	a.user = nil
	if err != nil {
		log.Printf("Logout finished with errors: %s", err.Error())
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

// WhoAmI prints the cached profile without touching the network.
func (a *App) WhoAmI(ctx context.Context) {
	user, err := a.sessions.CurrentUser(ctx)
	if err != nil {
		log.Println(err.Error())
		return
	}
	fmt.Printf("%s %s <%s> (username %s)\n", user.Firstname, user.Lastname, user.Email, user.Username)
	if user.Phone != "" {
		fmt.Printf("Phone: %s\n", user.Phone)
	}
	if user.Address.Street != "" {
		fmt.Printf("Address: %s, %s %s, %s\n",
			user.Address.Street, user.Address.City, user.Address.PostalCode, user.Address.Country)
	}
}

// UpdateProfile prompts for new profile fields (empty keeps the current
// value) and pushes the update to the backend.
func (a *App) UpdateProfile(ctx context.Context) error {
	if !a.isLoggedIn() {
		fmt.Println("Log in first.")
		return nil
	}

	req := &api.UpdateProfileRequest{ID: a.user.ID}
	var err error

	if req.Firstname, err = getSimpleText(a.reader, "First name (empty to keep)", os.Stdout); err != nil {
		return err
	}
	if req.Lastname, err = getSimpleText(a.reader, "Last name (empty to keep)", os.Stdout); err != nil {
		return err
	}
	if req.Phone, err = getSimpleText(a.reader, "Phone (empty to keep)", os.Stdout); err != nil {
		return err
	}

	user, err := a.sessions.UpdateProfile(ctx, req)
	if err != nil {
		log.Printf("Profile update unsuccessful: %s", err.Error())
		return err
	}

	a.user = user
	fmt.Println("Profile updated.")
	return nil
}
