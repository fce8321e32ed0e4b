// Package services contains server-side business logic. This file implements
// AuthService, which registers travellers and signs them in with PBKDF2
// credentials and JWT access tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/s-r-jones/deep-dive-air/internal/common"
	"github.com/s-r-jones/deep-dive-air/internal/cryptox"
	"github.com/s-r-jones/deep-dive-air/internal/dbx"
	"github.com/s-r-jones/deep-dive-air/internal/logging"
	"github.com/s-r-jones/deep-dive-air/internal/server/auth"
	"github.com/s-r-jones/deep-dive-air/internal/server/config"
	"github.com/s-r-jones/deep-dive-air/internal/server/models"
	"github.com/s-r-jones/deep-dive-air/internal/server/ratelimit"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/gateway"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/repomanager"
	"github.com/s-r-jones/deep-dive-air/internal/validate"
)

// RegistrationInput is the raw sign-up form.
type RegistrationInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	DateOfBirth string
}

// Registration is what a successful sign-up stored.
type Registration struct {
	Credential models.Credential
	Profile    models.Profile
}

// LoginResult carries the access token issued on sign-in.
type LoginResult struct {
	AccessToken  string
	CredentialID int64
	ProfileID    int64
}

// ProfileInput holds the editable profile fields.
type ProfileInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	DateOfBirth string
}

// AuthService provides authentication-related operations:
// - Register: create a credential and its profile atomically
// - Login: verify a password and mint an access token
// - UpdateProfile: edit the signed-in traveller's details
type AuthService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	limiter                     ratelimit.Limiter
	logger                      logging.Logger
	params                      cryptox.Params
	minPasswordLength           int
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewAuthService constructs an AuthService using repositories and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, limiter ratelimit.Limiter, logger logging.Logger, cfg *config.Config) *AuthService {
	if limiter == nil {
		limiter = ratelimit.Noop{}
	}
	return &AuthService{
		db:                          db,
		repomanager:                 m,
		limiter:                     limiter,
		logger:                      logger,
		// stored hashes carry no parameters, so they are fixed
		params:                      cryptox.DefaultParams,
		minPasswordLength:           cfg.MinPasswordLength,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register validates the whole form before touching storage, then inserts
// the credential and the profile in one transaction. A taken email yields
// common.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, in RegistrationInput) (*Registration, error) {
	if err := s.checkPassword(in.Password); err != nil {
		return nil, err
	}

	salt, err := cryptox.GenerateSalt()
	if err != nil {
		return nil, common.ErrorInternal
	}
	hash := cryptox.HashPassword(in.Password, salt, s.params)

	credential, err := models.NewCredential(nil, in.Email, hash, salt)
	if err != nil {
		return nil, err
	}
	// the credential id is unknown until the insert; "0" stands in for it
	profile, err := models.NewProfile(nil, in.DateOfBirth, in.FirstName, in.LastName, in.PhoneNumber, "0")
	if err != nil {
		return nil, err
	}

	var out Registration
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		storedCredential, err := s.repomanager.Credentials(tx).Insert(ctx, credential)
		if err != nil {
			if errors.Is(err, common.ErrDuplicate) {
				return common.ErrEmailTaken
			}
			return err
		}

		linked, err := profile.WithCredentialID(*storedCredential.ID())
		if err != nil {
			return err
		}
		storedProfile, err := s.repomanager.Profiles(tx).Insert(ctx, linked)
		if err != nil {
			return err
		}

		out = Registration{Credential: storedCredential, Profile: storedProfile}
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, err
		}
		s.logger.Error(ctx, "registration failed", "email", logging.MaskEmail(credential.Email()), "error", err)
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "registered", "email", logging.MaskEmail(credential.Email()), "credential_id", *out.Credential.ID())
	return &out, nil
}

// Login checks email and password. Every way of getting them wrong returns
// the same common.ErrAuthenticationFailed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	key := loginKey(email)

	if err := s.limiter.Check(ctx, key); err != nil {
		if errors.Is(err, common.ErrTooManyAttempts) {
			return nil, err
		}
		s.logger.Warn(ctx, "rate limiter unavailable", "error", err)
	}

	credential, err := s.findCredential(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrAuthenticationFailed) {
			// keep the timing of unknown emails close to a real check
			s.dummyHash(password)
			return nil, s.failed(ctx, key)
		}
		return nil, err
	}

	if !cryptox.VerifyPassword(password, credential.Salt(), credential.PasswordHash(), s.params) {
		return nil, s.failed(ctx, key)
	}

	profile, err := s.repomanager.Profiles(s.db).FindByCredentialID(ctx, *credential.ID())
	if err != nil {
		s.logger.Error(ctx, "profile lookup failed", "credential_id", *credential.ID(), "error", err)
		return nil, common.ErrorInternal
	}

	if err := s.limiter.Reset(ctx, key); err != nil {
		s.logger.Warn(ctx, "rate limiter reset failed", "error", err)
	}

	id := auth.Identity{CredentialID: *credential.ID(), ProfileID: *profile.ID()}
	token, err := auth.GenerateToken(id, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	s.logger.Info(ctx, "signed in", "email", logging.MaskEmail(credential.Email()))
	return &LoginResult{AccessToken: token, CredentialID: id.CredentialID, ProfileID: id.ProfileID}, nil
}

// UpdateProfile rewrites the editable fields of the caller's profile.
func (s *AuthService) UpdateProfile(ctx context.Context, profileID int64, in ProfileInput) (models.Profile, error) {
	repo := s.repomanager.Profiles(s.db)

	current, err := repo.FindByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.Profile{}, err
		}
		return models.Profile{}, common.ErrorInternal
	}

	updated, err := models.NewProfile(current.ID(), in.DateOfBirth, in.FirstName, in.LastName, in.PhoneNumber,
		strconv.FormatInt(current.CredentialID(), 10))
	if err != nil {
		return models.Profile{}, err
	}
	if err := repo.Update(ctx, updated); err != nil {
		s.logger.Error(ctx, "profile update failed", "profile_id", profileID, "error", err)
		return models.Profile{}, common.ErrorInternal
	}
	s.logger.Info(ctx, "profile updated", "profile_id", profileID, "phone", logging.MaskPhone(updated.PhoneNumber()))
	return updated, nil
}

// --- helpers below ---

func (s *AuthService) checkPassword(password string) error {
	if password == "" {
		return fmt.Errorf("password: %w", validate.ErrEmptyField)
	}
	if utf8.RuneCountInString(password) < s.minPasswordLength {
		return fmt.Errorf("%w: at least %d characters required", common.ErrWeakPassword, s.minPasswordLength)
	}
	return nil
}

// findCredential maps every lookup outcome other than exactly one match,
// or a backend failure, to common.ErrAuthenticationFailed.
func (s *AuthService) findCredential(ctx context.Context, email string) (models.Credential, error) {
	addr, err := validate.Email("email", email)
	if err != nil {
		return models.Credential{}, common.ErrAuthenticationFailed
	}

	credential, err := gateway.One(s.repomanager.Credentials(s.db).FindByEmail(ctx, addr))
	switch {
	case err == nil:
		return credential, nil
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrAmbiguous):
		return models.Credential{}, common.ErrAuthenticationFailed
	default:
		s.logger.Error(ctx, "credential lookup failed", "error", err)
		return models.Credential{}, common.ErrorInternal
	}
}

// loginKey is the identifier failed attempts are counted under. It uses the
// same normalization as the credential lookup so that spelling variants of
// one address share a window.
func loginKey(email string) string {
	if addr, err := validate.Email("email", email); err == nil {
		return addr
	}
	return validate.Sanitize(email)
}

func (s *AuthService) failed(ctx context.Context, key string) error {
	if err := s.limiter.RecordFailure(ctx, key); err != nil {
		s.logger.Warn(ctx, "rate limiter record failed", "error", err)
	}
	s.logger.Info(ctx, "sign-in rejected", "email", logging.MaskEmail(key))
	return common.ErrAuthenticationFailed
}

func (s *AuthService) dummyHash(password string) {
	salt, _ := cryptox.GenerateSalt()
	_ = cryptox.HashPassword(password, salt, s.params)
}
