// Package credentials stores login credentials.
package credentials

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
	gateway.Gateway[models.Credential]
	FindByID(ctx context.Context, id int64) (models.Credential, error)
	// FindByEmail returns every credential registered under email; callers
	// decide what more than one match means.
	FindByEmail(ctx context.Context, email string) ([]models.Credential, error)
}

// Table maps Credential onto the credential table.
var Table = gateway.Table[models.Credential]{
	Name: "credential",
	Columns: []gateway.Column{
		{Name: "id", Rule: validate.NumericRule},
		{Name: "email", Rule: validate.EmailRule},
		{Name: "password_hash", Rule: validate.PatternRule(validate.HashPattern)},
		{Name: "salt", Rule: validate.PatternRule(validate.SaltPattern)},
	},
	Generated: true,
	Unique:    []string{"email"},
	Values: func(c models.Credential) []any {
		var id any
		if p := c.ID(); p != nil {
			id = *p
		}
		return []any{id, c.Email(), c.PasswordHash(), c.Salt()}
	},
	Build: func(row []string) (models.Credential, error) {
		id, err := validate.Numeric("id", row[0])
		if err != nil {
			return models.Credential{}, err
		}
		return models.NewCredential(&id, row[1], row[2], row[3])
	},
	Assign: func(c models.Credential, id int64) (models.Credential, error) {
		return c.WithID(id)
	},
}

type repository struct {
	gateway.Gateway[models.Credential]
}

func NewRepository(g gateway.Gateway[models.Credential]) Repository {
	return &repository{Gateway: g}
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) Repository {
	return NewRepository(gateway.NewSQLGateway(db, d, Table))
}

func NewMemoryRepository() Repository {
	return NewRepository(memory.NewGateway(Table))
}

func (r *repository) FindByID(ctx context.Context, id int64) (models.Credential, error) {
	return gateway.One(r.FindBy(ctx, "id", strconv.FormatInt(id, 10)))
}

func (r *repository) FindByEmail(ctx context.Context, email string) ([]models.Credential, error) {
	return r.FindBy(ctx, "email", email)
}
