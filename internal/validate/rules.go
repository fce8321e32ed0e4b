package validate

import (
	"errors"
	"net/mail"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DateLayout is the canonical form of calendar dates.
	DateLayout = "2006-01-02"
	// DateTimeLayout is the canonical form of timestamps.
	DateTimeLayout = "2006-01-02 15:04:05"

	// Input layouts also accept single-digit month, day and hour.
	dateInputLayout     = "2006-1-2"
	dateTimeInputLayout = "2006-1-2 15:04:05"
)

// markupChars are the characters Sanitize replaces with entities.
const markupChars = `&'"<>`

var (
	// HashPattern matches a hex encoded 512-bit digest.
	HashPattern = regexp.MustCompile(`^[a-fA-F0-9]{128}$`)
	// SaltPattern matches a hex encoded 256-bit salt.
	SaltPattern = regexp.MustCompile(`^[a-fA-F0-9]{64}$`)
	// AirportCodePattern matches a three letter airport code.
	AirportCodePattern = regexp.MustCompile(`^[A-Za-z]{3}$`)
)

// NonEmpty sanitizes raw and rejects an empty result.
func NonEmpty(field, raw string) (string, error) {
	s := Sanitize(raw)
	if s == "" {
		return "", fail(field, raw, ErrEmptyField)
	}
	return s, nil
}

// Numeric parses raw as a non-negative int64. Anything that is not an
// integer is ErrInvalidFormat; negative or overflowing values are
// ErrOutOfRange.
func Numeric(field, raw string) (int64, error) {
	s := Sanitize(raw)
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, fail(field, raw, ErrOutOfRange)
		}
		return 0, fail(field, raw, ErrInvalidFormat)
	}
	if n < 0 {
		return 0, fail(field, raw, ErrOutOfRange)
	}
	return n, nil
}

// Identity checks an already typed identity value.
func Identity(field string, id int64) (int64, error) {
	if id < 0 {
		return 0, fail(field, strconv.FormatInt(id, 10), ErrOutOfRange)
	}
	return id, nil
}

// Pattern sanitizes raw and requires the result to match re.
func Pattern(field, raw string, re *regexp.Regexp) (string, error) {
	s := Sanitize(raw)
	if !re.MatchString(s) {
		return "", fail(field, raw, ErrPatternMismatch)
	}
	return s, nil
}

// Email sanitizes raw, drops characters that cannot appear in an address
// and requires what is left to be a bare addr-spec with a dotted domain.
// Markup characters are rejected rather than dropped: their escaped form
// would otherwise leave digits behind ("o'neil" becoming "o39neil").
func Email(field, raw string) (string, error) {
	s := Sanitize(raw)
	if s == "" {
		return "", fail(field, raw, ErrEmptyField)
	}
	if strings.ContainsAny(raw, markupChars) {
		return "", fail(field, raw, ErrPatternMismatch)
	}
	s = strings.Map(emailRune, s)

	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return "", fail(field, raw, ErrPatternMismatch)
	}
	at := strings.LastIndexByte(s, '@')
	if !strings.Contains(s[at+1:], ".") {
		return "", fail(field, raw, ErrPatternMismatch)
	}
	return s, nil
}

func emailRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return r
	case strings.ContainsRune("!#$%*+-=?^_`{|}~@.[]", r):
		return r
	}
	return -1
}

// Date parses YYYY-MM-DD into a UTC midnight time.
func Date(field, raw string) (time.Time, error) {
	return parseTime(field, raw, dateInputLayout)
}

// DateTime parses YYYY-MM-DD HH:MM:SS as UTC.
func DateTime(field, raw string) (time.Time, error) {
	return parseTime(field, raw, dateTimeInputLayout)
}

func parseTime(field, raw, layout string) (time.Time, error) {
	s := Sanitize(raw)
	if s == "" {
		return time.Time{}, fail(field, raw, ErrEmptyField)
	}
	t, err := time.ParseInLocation(layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fail(field, raw, ErrInvalidFormat)
	}
	return t, nil
}

// AirportCode accepts exactly three letters and returns them upper-cased.
func AirportCode(field, raw string) (string, error) {
	s, err := Pattern(field, raw, AirportCodePattern)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(s), nil
}
