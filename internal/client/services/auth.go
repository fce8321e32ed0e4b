// Package services contains application services for the airctl client.
// This file defines the authentication service: sign-up, sign-in with a
// locally persisted session, and sign-out.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/s-r-jones/deep-dive-air/internal/client/client"
	"github.com/s-r-jones/deep-dive-air/internal/client/models"
	"github.com/s-r-jones/deep-dive-air/internal/client/repositories/session"
	"github.com/s-r-jones/deep-dive-air/internal/common"
	"github.com/s-r-jones/deep-dive-air/internal/dbx"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Register: create a credential and profile on the server.
//   - Login: sign in and remember the session locally.
//   - Resume: restore a remembered session, returning its email.
//   - Logout: forget the local session.
//   - Close: release underlying client resources.
type AuthService interface {
	Register(ctx context.Context, in models.SignUp) error
	Login(ctx context.Context, email string, password []byte) (*models.Session, error)
	Resume(ctx context.Context) (string, error)
	Logout(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and DB.
func NewAuthService(client client.Client, db *sql.DB) AuthService {
	return &authService{client: client, db: db}
}

func (a *authService) Register(ctx context.Context, in models.SignUp) error {
	return a.client.Register(ctx, in)
}

// Login signs in and stores the email and access token in one transaction.
func (a *authService) Login(ctx context.Context, email string, password []byte) (*models.Session, error) {
	s, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("login error: %w", err)
	}

	err = dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := session.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, session.KeyEmail, email); err != nil {
			return err
		}
		return repo.Set(ctx, session.KeyAccessToken, s.AccessToken)
	})
	if err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}

	return s, nil
}

// Resume hands a remembered access token back to the client. It returns
// client.ErrUnauthorized when nothing is remembered. An expired token is
// only detected by the server on the next protected call.
func (a *authService) Resume(ctx context.Context) (string, error) {
	repo := session.NewSQLiteRepository(a.db)

	email, err := repo.Get(ctx, session.KeyEmail)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", client.ErrUnauthorized
		}
		return "", err
	}
	token, err := repo.Get(ctx, session.KeyAccessToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", client.ErrUnauthorized
		}
		return "", err
	}

	a.client.SetAccessToken(token)
	return email, nil
}

func (a *authService) Logout(ctx context.Context) error {
	a.client.SetAccessToken("")
	return session.NewSQLiteRepository(a.db).Clear(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
