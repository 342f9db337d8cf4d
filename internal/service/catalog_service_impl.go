package service

import (
	"context"
	"time"

	"github.com/alexanderramin/kvitko/internal/domain"
	"github.com/alexanderramin/kvitko/internal/rules"
	"github.com/alexanderramin/kvitko/internal/watering"
)

type catalogService struct {
	table     *rules.Table
	projector *watering.Projector
	source    string
}

// NewCatalogService serves species lookups from the loaded rule table.
// source names where the table came from, for display.
func NewCatalogService(table *rules.Table, source string) CatalogService {
	return &catalogService{
		table:     table,
		projector: watering.NewProjector(table),
		source:    source,
	}
}

func (s *catalogService) List(context.Context) []string {
	return s.table.Species()
}

func (s *catalogService) Search(_ context.Context, query string) []string {
	return s.table.Search(query)
}

func (s *catalogService) Show(_ context.Context, key string, care domain.CareAttributes, ref time.Time) (*SpeciesDetail, error) {
	profile, err := s.projector.Profile(key)
	if err != nil {
		return nil, err
	}
	if care == (domain.CareAttributes{}) {
		care = domain.DefaultCare()
	}
	return &SpeciesDetail{
		Profile:  profile,
		Season:   watering.ResolveSeason(ref),
		Care:     care,
		Interval: watering.IntervalFor(profile, care, ref),
	}, nil
}

func (s *catalogService) Source() string {
	return s.source
}
