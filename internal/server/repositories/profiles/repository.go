// Package profiles stores the personal details linked to a credential.
package profiles

import (
	"context"
	"strconv"

	"github.com/s-r-jones/deep-dive-air/internal/dbx"
	"github.com/s-r-jones/deep-dive-air/internal/server/models"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/gateway"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/memory"
	"github.com/s-r-jones/deep-dive-air/internal/validate"
)

type Repository interface {
	gateway.Gateway[models.Profile]
	FindByID(ctx context.Context, id int64) (models.Profile, error)
	FindByCredentialID(ctx context.Context, credentialID int64) (models.Profile, error)
}

// Table maps Profile onto the profile table.
var Table = gateway.Table[models.Profile]{
	Name: "profile",
	Columns: []gateway.Column{
		{Name: "id", Rule: validate.NumericRule},
		{Name: "date_of_birth", Rule: validate.DateRule, Layout: validate.DateLayout},
		{Name: "first_name", Rule: validate.TextRule},
		{Name: "last_name", Rule: validate.TextRule},
		{Name: "phone_number", Rule: validate.TextRule},
		{Name: "credential_id", Rule: validate.NumericRule},
	},
	Generated: true,
	Unique:    []string{"credential_id"},
	Values: func(p models.Profile) []any {
		var id any
		if v := p.ID(); v != nil {
			id = *v
		}
		return []any{
			id,
			p.DateOfBirth().Format(validate.DateLayout),
			p.FirstName(),
			p.LastName(),
			p.PhoneNumber(),
			p.CredentialID(),
		}
	},
	Build: func(row []string) (models.Profile, error) {
		id, err := validate.Numeric("id", row[0])
		if err != nil {
			return models.Profile{}, err
		}
		return models.NewProfile(&id, row[1], row[2], row[3], row[4], row[5])
	},
	Assign: func(p models.Profile, id int64) (models.Profile, error) {
		return p.WithID(id)
	},
}

type repository struct {
	gateway.Gateway[models.Profile]
}

func NewRepository(g gateway.Gateway[models.Profile]) Repository {
	return &repository{Gateway: g}
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) Repository {
	return NewRepository(gateway.NewSQLGateway(db, d, Table))
}

func NewMemoryRepository() Repository {
	return NewRepository(memory.NewGateway(Table))
}

func (r *repository) FindByID(ctx context.Context, id int64) (models.Profile, error) {
	return gateway.One(r.FindBy(ctx, "id", strconv.FormatInt(id, 10)))
}

func (r *repository) FindByCredentialID(ctx context.Context, credentialID int64) (models.Profile, error) {
	return gateway.One(r.FindBy(ctx, "credential_id", strconv.FormatInt(credentialID, 10)))
}
