package models

import "github.com/s-r-jones/deep-dive-air/internal/validate"

// Credential is the login half of an account: an email plus the PBKDF2
// hash and salt of the password.
type Credential struct {
	id           *int64
	email        string
	passwordHash string
	salt         string
}

// NewCredential validates the fields in order id, email, hash, salt and
// fails on the first bad one.
func NewCredential(id *int64, email, passwordHash, salt string) (Credential, error) {
	var (
		c   Credential
		err error
	)
	if c.id, err = optionalID("id", id); err != nil {
		return Credential{}, buildError("credential", err)
	}
	if c.email, err = validate.Email("email", email); err != nil {
		return Credential{}, buildError("credential", err)
	}
	if c.passwordHash, err = validate.Pattern("password_hash", passwordHash, validate.HashPattern); err != nil {
		return Credential{}, buildError("credential", err)
	}
	if c.salt, err = validate.Pattern("salt", salt, validate.SaltPattern); err != nil {
		return Credential{}, buildError("credential", err)
	}
	return c, nil
}

func (c Credential) ID() *int64           { return copyID(c.id) }
func (c Credential) Email() string        { return c.email }
func (c Credential) PasswordHash() string { return c.passwordHash }
func (c Credential) Salt() string         { return c.salt }

// WithID returns a copy carrying the store-assigned identity. Only the
// credentials repository calls it, after the row is written.
func (c Credential) WithID(id int64) (Credential, error) {
	v, err := validate.Identity("id", id)
	if err != nil {
		return Credential{}, buildError("credential", err)
	}
	c.id = &v
	return c, nil
}

func (c Credential) Equal(o Credential) bool {
	return sameID(c.id, o.id) &&
		c.email == o.email &&
		c.passwordHash == o.passwordHash &&
		c.salt == o.salt
}
