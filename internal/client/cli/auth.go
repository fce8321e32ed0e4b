package cli

import (
	"context"
	"errors"
	"os"

	"github.com/s-r-jones/deep-dive-air/internal/client/client"
	"github.com/s-r-jones/deep-dive-air/internal/client/models"
	"github.com/s-r-jones/deep-dive-air/internal/common"
)

// Register collects the sign-up form and creates the account. The password
// byte slice is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	var (
		in  models.SignUp
		err error
	)

	if in.Email, err = getSimpleText(a.reader, "Enter email", os.Stdout); err != nil {
		return err
	}
	if in.Password, err = getPassword(os.Stdout); err != nil {
		return err
	}
	defer common.WipeByteArray(in.Password)

	if in.FirstName, err = getSimpleText(a.reader, "First name", os.Stdout); err != nil {
		return err
	}
	if in.LastName, err = getSimpleText(a.reader, "Last name", os.Stdout); err != nil {
		return err
	}
	if in.PhoneNumber, err = getSimpleText(a.reader, "Phone number", os.Stdout); err != nil {
		return err
	}
	if in.DateOfBirth, err = getSimpleText(a.reader, "Date of birth (YYYY-MM-DD)", os.Stdout); err != nil {
		return err
	}

	if err := a.authService.Register(ctx, in); err != nil {
		return err
	}

	printlnFn("You've successfully signed up!")
	return nil
}

// Login prompts for credentials and signs in. A wrong email or password
// leaves the app signed out and is reported with the server's message.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.authService.Login(ctx, email, password); err != nil {
		if errors.Is(err, client.ErrRateLimited) {
			printlnFn("Too many attempts, try again later")
		}
		return err
	}

	a.email = email
	printlnFn("Login successful")
	return nil
}

// Logout forgets the local session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	a.email = ""
	return nil
}

// requireLogin reports client.ErrUnauthorized for signed-out users.
func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		return client.ErrUnauthorized
	}
	return nil
}
