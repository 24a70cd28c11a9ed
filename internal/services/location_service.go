package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/baharkarakas/dormshop-backend/internal/apperr"
	"github.com/baharkarakas/dormshop-backend/internal/geocode"
	"github.com/baharkarakas/dormshop-backend/internal/models"
	repo "github.com/baharkarakas/dormshop-backend/internal/repository"
)

const DefaultMapSize = "600x300"

var mapSize = regexp.MustCompile(`^[1-9][0-9]{0,3}x[1-9][0-9]{0,3}$`)

type Geocoder interface {
	Geocode(ctx context.Context, address string) (geocode.Point, error)
	StaticMap(ctx context.Context, address, size string) ([]byte, error)
}

type LocationService struct {
	locations repo.Locations
	geo       Geocoder
	audit     *Auditor
}

// NewLocationService builds the service; geo may be nil when no maps API key
// is configured.
func NewLocationService(l repo.Locations, geo Geocoder, a *Auditor) *LocationService {
	return &LocationService{locations: l, geo: geo, audit: a}
}

// Create checks the coordinates before touching storage.
func (s *LocationService) Create(ctx context.Context, caller string, in models.NewLocation) (models.Location, error) {
	lat, err := in.Latitude.Float()
	if err != nil || lat < -90 || lat > 90 {
		return models.Location{}, apperr.BadRequest("latitude must be a number between -90 and 90")
	}
	lng, err := in.Longitude.Float()
	if err != nil || lng < -180 || lng > 180 {
		return models.Location{}, apperr.BadRequest("longitude must be a number between -180 and 180")
	}
	return s.insert(ctx, caller, in.Address, lat, lng)
}

// CreateGeocoded resolves the address to coordinates, then stores it.
func (s *LocationService) CreateGeocoded(ctx context.Context, caller string, addr models.Address) (models.Location, error) {
	if s.geo == nil {
		return models.Location{}, apperr.BadRequest("geocoding is not configured; send latitude and longitude")
	}
	p, err := s.geo.Geocode(ctx, addr.String())
	if errors.Is(err, geocode.ErrNoMatch) {
		return models.Location{}, apperr.BadRequest("invalid address")
	}
	if err != nil {
		return models.Location{}, fmt.Errorf("geocode: %w", err)
	}
	return s.insert(ctx, caller, addr, p.Lat, p.Lng)
}

func (s *LocationService) insert(ctx context.Context, caller string, addr models.Address, lat, lng float64) (models.Location, error) {
	l, err := s.locations.Create(ctx, models.Location{
		Street:    addr.Street,
		City:      addr.City,
		State:     addr.State,
		Zip:       addr.Zip,
		Latitude:  lat,
		Longitude: lng,
	})
	if err != nil {
		return models.Location{}, fmt.Errorf("create location: %w", err)
	}
	s.audit.Record(caller, "location", l.ID, "created", nil)
	return l, nil
}

func (s *LocationService) Get(ctx context.Context, id int64) (models.Location, error) {
	l, err := s.locations.Get(ctx, id)
	if err != nil {
		return models.Location{}, notFound(err, "get location", fmt.Sprintf("no location: %d", id))
	}
	return l, nil
}

func (s *LocationService) List(ctx context.Context, f models.LocationFilter) ([]models.Location, error) {
	ls, err := s.locations.List(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	return ls, nil
}

func (s *LocationService) Delete(ctx context.Context, id int64, caller string) error {
	err := s.locations.Delete(ctx, id)
	if errors.Is(err, repo.ErrInvalidReference) {
		return apperr.BadRequest("location %d is still used by posts", id)
	}
	if err != nil {
		return notFound(err, "delete location", fmt.Sprintf("no location: %d", id))
	}
	s.audit.Record(caller, "location", id, "deleted", nil)
	return nil
}

// StaticMap renders a PNG map of the location. An empty size means
// DefaultMapSize.
func (s *LocationService) StaticMap(ctx context.Context, id int64, size string) ([]byte, error) {
	if size == "" {
		size = DefaultMapSize
	}
	if !mapSize.MatchString(size) {
		return nil, apperr.BadRequest("size must look like 600x300")
	}
	l, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.geo == nil {
		return nil, apperr.BadRequest("maps are not configured")
	}
	addr := models.Address{Street: l.Street, City: l.City, State: l.State, Zip: l.Zip}
	img, err := s.geo.StaticMap(ctx, addr.String(), size)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindBadRequest, err, "could not load map")
	}
	return img, nil
}
