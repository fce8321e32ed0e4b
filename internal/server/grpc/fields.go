package grpc

import (
	"strconv"
	"strings"

	"github.com/s-r-jones/deep-dive-air/internal/server/models"
	"github.com/s-r-jones/deep-dive-air/internal/validate"
	"google.golang.org/protobuf/types/known/structpb"
)

// field returns a request field as raw text. Numbers are printed without
// exponent or trailing zeros; missing fields are empty.
func field(req *structpb.Struct, name string) string {
	v, ok := req.GetFields()[name]
	if !ok {
		return ""
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue
	case *structpb.Value_NumberValue:
		return strconv.FormatFloat(k.NumberValue, 'f', -1, 64)
	case *structpb.Value_BoolValue:
		return strconv.FormatBool(k.BoolValue)
	}
	return ""
}

// dateOfBirth accepts either date_of_birth or the dob_year/dob_month/dob_day
// triple used by the sign-up form.
func dateOfBirth(req *structpb.Struct) string {
	if d := field(req, "date_of_birth"); d != "" {
		return d
	}
	parts := []string{field(req, "dob_year"), field(req, "dob_month"), field(req, "dob_day")}
	if parts[0] == "" && parts[1] == "" && parts[2] == "" {
		return ""
	}
	return strings.Join(parts, "-")
}

func flightValue(f models.Flight) map[string]any {
	return map[string]any{
		"flight_number": f.Number(),
		"departure":     f.Departure(),
		"destination":   f.Destination(),
	}
}

func ticketValue(t models.Ticket) map[string]any {
	return map[string]any{
		"ticket_number": t.Number(),
		"flight_number": t.FlightNumber(),
		"profile_id":    t.ProfileID(),
		"date_time":     t.DateTime().Format(validate.DateTimeLayout),
		"price":         t.Price(),
		"seat":          t.Seat(),
	}
}

func profileValue(p models.Profile) map[string]any {
	out := map[string]any{
		"date_of_birth": p.DateOfBirth().Format(validate.DateLayout),
		"first_name":    p.FirstName(),
		"last_name":     p.LastName(),
		"phone_number":  p.PhoneNumber(),
		"credential_id": p.CredentialID(),
	}
	if id := p.ID(); id != nil {
		out["profile_id"] = *id
	}
	return out
}
