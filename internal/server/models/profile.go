package models

import (
	"time"

	"github.com/s-r-jones/deep-dive-air/internal/validate"
)

// Profile holds the personal details attached to a Credential.
type Profile struct {
	id           *int64
	dateOfBirth  time.Time
	firstName    string
	lastName     string
	phoneNumber  string
	credentialID int64
}

// NewProfile validates the fields in declaration order. dateOfBirth must be
// YYYY-MM-DD and credentialID a non-negative integer.
func NewProfile(id *int64, dateOfBirth, firstName, lastName, phoneNumber, credentialID string) (Profile, error) {
	var (
		p   Profile
		err error
	)
	if p.id, err = optionalID("id", id); err != nil {
		return Profile{}, buildError("profile", err)
	}
	if p.dateOfBirth, err = validate.Date("date_of_birth", dateOfBirth); err != nil {
		return Profile{}, buildError("profile", err)
	}
	if p.firstName, err = validate.NonEmpty("first_name", firstName); err != nil {
		return Profile{}, buildError("profile", err)
	}
	if p.lastName, err = validate.NonEmpty("last_name", lastName); err != nil {
		return Profile{}, buildError("profile", err)
	}
	if p.phoneNumber, err = validate.NonEmpty("phone_number", phoneNumber); err != nil {
		return Profile{}, buildError("profile", err)
	}
	if p.credentialID, err = validate.Numeric("credential_id", credentialID); err != nil {
		return Profile{}, buildError("profile", err)
	}
	return p, nil
}

func (p Profile) ID() *int64             { return copyID(p.id) }
func (p Profile) DateOfBirth() time.Time { return p.dateOfBirth }
func (p Profile) FirstName() string      { return p.firstName }
func (p Profile) LastName() string       { return p.lastName }
func (p Profile) PhoneNumber() string    { return p.phoneNumber }
func (p Profile) CredentialID() int64    { return p.credentialID }

// WithID returns a copy carrying the store-assigned identity. Only the
// profiles repository calls it, after the row is written.
func (p Profile) WithID(id int64) (Profile, error) {
	v, err := validate.Identity("id", id)
	if err != nil {
		return Profile{}, buildError("profile", err)
	}
	p.id = &v
	return p, nil
}

// WithCredentialID returns a copy pointing at another credential.
func (p Profile) WithCredentialID(credentialID int64) (Profile, error) {
	v, err := validate.Identity("credential_id", credentialID)
	if err != nil {
		return Profile{}, buildError("profile", err)
	}
	p.credentialID = v
	return p, nil
}

func (p Profile) Equal(o Profile) bool {
	return sameID(p.id, o.id) &&
		p.dateOfBirth.Equal(o.dateOfBirth) &&
		p.firstName == o.firstName &&
		p.lastName == o.lastName &&
		p.phoneNumber == o.phoneNumber &&
		p.credentialID == o.credentialID
}
