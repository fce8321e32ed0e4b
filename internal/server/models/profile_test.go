package models

import (
	"testing"
	"time"

	"github.com/s-r-jones/deep-dive-air/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile_Valid(t *testing.T) {
	p, err := NewProfile(nil, "1990-2-3", " Ada ", "Lovelace", "+1 505 555 0100", "7")
	require.NoError(t, err)

	assert.Nil(t, p.ID())
	assert.Equal(t, time.Date(1990, 2, 3, 0, 0, 0, 0, time.UTC), p.DateOfBirth())
	assert.Equal(t, "Ada", p.FirstName())
	assert.Equal(t, "Lovelace", p.LastName())
	assert.Equal(t, "+1 505 555 0100", p.PhoneNumber())
	assert.Equal(t, int64(7), p.CredentialID())
}

func TestNewProfile_InvalidField(t *testing.T) {
	valid := []string{"1990-02-03", "Ada", "Lovelace", "555", "1"}

	tests := []struct {
		name    string
		field   int
		value   string
		wantErr error
	}{
		{"empty date", 0, "", validate.ErrEmptyField},
		{"bad date", 0, "02/03/1990", validate.ErrInvalidFormat},
		{"empty first name", 1, "   ", validate.ErrEmptyField},
		{"empty last name", 2, "", validate.ErrEmptyField},
		{"empty phone", 3, "\t", validate.ErrEmptyField},
		{"non numeric credential", 4, "x", validate.ErrInvalidFormat},
		{"negative credential", 4, "-4", validate.ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]string(nil), valid...)
			in[tt.field] = tt.value

			p, err := NewProfile(nil, in[0], in[1], in[2], in[3], in[4])
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, Profile{}, p)
		})
	}
}

func TestProfile_WithIDAndCredential(t *testing.T) {
	p, err := NewProfile(nil, "1990-02-03", "Ada", "Lovelace", "555", "0")
	require.NoError(t, err)

	linked, err := p.WithCredentialID(41)
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.CredentialID())
	assert.Equal(t, int64(41), linked.CredentialID())

	stored, err := linked.WithID(2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), *stored.ID())

	again, err := NewProfile(stored.ID(), stored.DateOfBirth().Format(validate.DateLayout),
		stored.FirstName(), stored.LastName(), stored.PhoneNumber(), "41")
	require.NoError(t, err)
	assert.True(t, stored.Equal(again))

	_, err = p.WithCredentialID(-1)
	assert.ErrorIs(t, err, validate.ErrOutOfRange)
}
