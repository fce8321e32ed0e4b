package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/s-r-jones/deep-dive-air/internal/common"
	"github.com/s-r-jones/deep-dive-air/internal/logging"
	"github.com/s-r-jones/deep-dive-air/internal/server/models"
	"github.com/s-r-jones/deep-dive-air/internal/server/repositories/repomanager"
	"github.com/s-r-jones/deep-dive-air/internal/validate"
)

// FlightService maintains and searches the flight schedule.
type FlightService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewFlightService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *FlightService {
	return &FlightService{db: db, repomanager: m, logger: logger}
}

// AddFlight stores a new flight between two airport codes. Reusing a flight
// number yields common.ErrFlightExists.
func (s *FlightService) AddFlight(ctx context.Context, number, departure, destination string) (models.Flight, error) {
	departure, err := validate.AirportCode("departure", departure)
	if err != nil {
		return models.Flight{}, err
	}
	if destination, err = validate.AirportCode("destination", destination); err != nil {
		return models.Flight{}, err
	}

	flight, err := models.NewFlight(number, departure, destination)
	if err != nil {
		return models.Flight{}, err
	}

	stored, err := s.repomanager.Flights(s.db).Insert(ctx, flight)
	if err != nil {
		if errors.Is(err, common.ErrDuplicate) {
			return models.Flight{}, common.ErrFlightExists
		}
		s.logger.Error(ctx, "add flight failed", "flight_number", flight.Number(), "error", err)
		return models.Flight{}, common.ErrorInternal
	}
	return stored, nil
}

// Search returns the flights between two airports. Either code may be left
// empty to match any airport; no match is an empty result, not an error.
func (s *FlightService) Search(ctx context.Context, from, to string) ([]models.Flight, error) {
	repo := s.repomanager.Flights(s.db)

	var (
		out []models.Flight
		err error
	)

	switch from, to = validate.Sanitize(from), validate.Sanitize(to); {
	case from != "" && to != "":
		if from, err = validate.AirportCode("from", from); err != nil {
			return nil, err
		}
		if to, err = validate.AirportCode("to", to); err != nil {
			return nil, err
		}
		out, err = repo.FindRoute(ctx, from, to)
	case from != "":
		if from, err = validate.AirportCode("from", from); err != nil {
			return nil, err
		}
		out, err = repo.FindByDeparture(ctx, from)
	case to != "":
		if to, err = validate.AirportCode("to", to); err != nil {
			return nil, err
		}
		out, err = repo.FindByDestination(ctx, to)
	default:
		out, err = repo.List(ctx)
	}

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return []models.Flight{}, nil
		}
		s.logger.Error(ctx, "flight search failed", "error", err)
		return nil, common.ErrorInternal
	}
	return out, nil
}
