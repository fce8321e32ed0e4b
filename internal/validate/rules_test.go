package validate

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumeric(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr error
	}{
		{"0", 0, nil},
		{"42", 42, nil},
		{" 17 ", 17, nil},
		{"-1", 0, ErrOutOfRange},
		{"99999999999999999999", 0, ErrOutOfRange},
		{"abc", 0, ErrInvalidFormat},
		{"1.5", 0, ErrInvalidFormat},
		{"", 0, ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Numeric("flight_number", tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNumeric_ErrorNamesField(t *testing.T) {
	_, err := Numeric("price", "x")

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "price", fe.Field)
	assert.Equal(t, "x", fe.Value)
	assert.Contains(t, err.Error(), "price")
}

func TestIdentity(t *testing.T) {
	id, err := Identity("id", 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = Identity("id", -3)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestNonEmpty(t *testing.T) {
	got, err := NonEmpty("first_name", "  Ada ")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got)

	_, err = NonEmpty("first_name", "   ")
	assert.ErrorIs(t, err, ErrEmptyField)
}

func TestPattern(t *testing.T) {
	salt := strings.Repeat("ab", 32)

	got, err := Pattern("salt", salt, SaltPattern)
	require.NoError(t, err)
	assert.Equal(t, salt, got)

	_, err = Pattern("salt", salt[:63], SaltPattern)
	assert.ErrorIs(t, err, ErrPatternMismatch)

	_, err = Pattern("password_hash", strings.Repeat("g", 128), HashPattern)
	assert.ErrorIs(t, err, ErrPatternMismatch)
}

func TestEmail(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"a@b.com", "a@b.com", nil},
		{"  john.doe+tag@example.org ", "john.doe+tag@example.org", nil},
		{"jo hn@example.org", "john@example.org", nil},
		{"", "", ErrEmptyField},
		{"not-an-email", "", ErrPatternMismatch},
		{"a@localhost", "", ErrPatternMismatch},
		{"@b.com", "", ErrPatternMismatch},
		{"a@@b.com", "", ErrPatternMismatch},
		{"o'neil@example.com", "", ErrPatternMismatch},
		{"a&b@example.com", "", ErrPatternMismatch},
		{"<a@b.com>", "", ErrPatternMismatch},
		{"a(@b.com", "a@b.com", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Email("email", tt.in)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := Email("email", got)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestDate(t *testing.T) {
	got, err := Date("date_of_birth", "1990-02-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(1990, 2, 3, 0, 0, 0, 0, time.UTC), got)

	got, err = Date("date_of_birth", "1990-2-3")
	require.NoError(t, err)
	assert.Equal(t, "1990-02-03", got.Format(DateLayout))

	_, err = Date("date_of_birth", "")
	assert.ErrorIs(t, err, ErrEmptyField)

	_, err = Date("date_of_birth", "1990-13-01")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = Date("date_of_birth", "03/02/1990")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestDateTime(t *testing.T) {
	got, err := DateTime("date_time", "2024-06-01 13:45:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 13, 45, 0, 0, time.UTC), got)

	_, err = DateTime("date_time", "2024-06-01")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestAirportCode(t *testing.T) {
	got, err := AirportCode("from", " abq ")
	require.NoError(t, err)
	assert.Equal(t, "ABQ", got)

	for _, bad := range []string{"AB", "ABCD", "A1C", ""} {
		_, err := AirportCode("from", bad)
		assert.ErrorIs(t, err, ErrPatternMismatch, bad)
	}
}

func TestRules_BindCanonicalForms(t *testing.T) {
	v, err := DateRule("date_of_birth", "2001-1-9")
	require.NoError(t, err)
	assert.Equal(t, "2001-01-09", v)

	v, err = DateTimeRule("date_time", "2001-1-9 7:05:00")
	require.NoError(t, err)
	assert.Equal(t, "2001-01-09 07:05:00", v)

	v, err = NumericRule("price", "300")
	require.NoError(t, err)
	assert.Equal(t, int64(300), v)

	_, err = PatternRule(SaltPattern)("salt", "zz")
	assert.ErrorIs(t, err, ErrPatternMismatch)
}
