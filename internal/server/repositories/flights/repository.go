// Package flights stores the flight schedule.
package flights

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
	gateway.Gateway[models.Flight]
	FindByNumber(ctx context.Context, number int64) (models.Flight, error)
	FindByDeparture(ctx context.Context, departure string) ([]models.Flight, error)
	FindByDestination(ctx context.Context, destination string) ([]models.Flight, error)
	FindRoute(ctx context.Context, departure, destination string) ([]models.Flight, error)
	List(ctx context.Context) ([]models.Flight, error)
}

// Table maps Flight onto the flight table. The flight number is a natural key.
var Table = gateway.Table[models.Flight]{
	Name: "flight",
	Columns: []gateway.Column{
		{Name: "flight_number", Rule: validate.NumericRule},
		{Name: "departure", Rule: validate.TextRule},
		{Name: "destination", Rule: validate.TextRule},
	},
	Values: func(f models.Flight) []any {
		return []any{f.Number(), f.Departure(), f.Destination()}
	},
	Build: func(row []string) (models.Flight, error) {
		f, err := models.NewFlight(row[0], row[1], row[2])
		if err != nil {
			return models.Flight{}, err
		}
		return f.Stored(), nil
	},
	Assign: func(f models.Flight, _ int64) (models.Flight, error) {
		return f.Stored(), nil
	},
}

type repository struct {
	gateway.Gateway[models.Flight]
}

func NewRepository(g gateway.Gateway[models.Flight]) Repository {
	return &repository{Gateway: g}
}

func NewSQLRepository(db dbx.DBTX, d dbx.Dialect) Repository {
	return NewRepository(gateway.NewSQLGateway(db, d, Table))
}

func NewMemoryRepository() Repository {
	return NewRepository(memory.NewGateway(Table))
}

func (r *repository) FindByNumber(ctx context.Context, number int64) (models.Flight, error) {
	return gateway.One(r.FindBy(ctx, "flight_number", strconv.FormatInt(number, 10)))
}

func (r *repository) FindByDeparture(ctx context.Context, departure string) ([]models.Flight, error) {
	return r.FindBy(ctx, "departure", departure)
}

func (r *repository) FindByDestination(ctx context.Context, destination string) ([]models.Flight, error) {
	return r.FindBy(ctx, "destination", destination)
}

func (r *repository) FindRoute(ctx context.Context, departure, destination string) ([]models.Flight, error) {
	return r.FindWhere(ctx, gateway.Eq("departure", departure), gateway.Eq("destination", destination))
}

func (r *repository) List(ctx context.Context) ([]models.Flight, error) {
	return r.FindWhere(ctx)
}
