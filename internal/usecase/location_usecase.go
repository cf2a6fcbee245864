package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/samber/lo"

	"rackup/internal/domain/entity"
	"rackup/internal/domain/repository"
	"rackup/pkg/errors"
)

type LocationUseCase struct {
	locationRepo repository.LocationRepository
}

func NewLocationUseCase(locationRepo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo}
}

type LocationRow struct {
	State   string `json:"state"`
	City    string `json:"city"`
	Pincode string `json:"pincode"`
}

type ImportResult struct {
	Imported int `json:"imported"`
	States   int `json:"states"`
	Cities   int `json:"cities"`
}

// Import loads location rows into the directory. Rows missing a state or a
// city are skipped; re-importing the same rows overwrites rather than
// duplicates.
func (uc *LocationUseCase) Import(ctx context.Context, rows []LocationRow) (*ImportResult, error) {
	locations := make([]*entity.Location, 0, len(rows))
	for _, row := range rows {
		state := strings.TrimSpace(row.State)
		city := strings.TrimSpace(row.City)
		if state == "" || city == "" {
			continue
		}
		locations = append(locations, &entity.Location{
			State:   state,
			City:    city,
			Pincode: strings.TrimSpace(row.Pincode),
		})
	}

	if len(locations) == 0 {
		return nil, errors.BadRequest("No usable location rows in import", nil)
	}

	imported, err := uc.locationRepo.BulkUpsert(ctx, locations)
	if err != nil {
		return nil, err
	}

	states := lo.UniqBy(locations, func(l *entity.Location) string {
		return strings.ToLower(l.State)
	})
	cities := lo.UniqBy(locations, func(l *entity.Location) string {
		return strings.ToLower(l.State + "|" + l.City)
	})

	return &ImportResult{
		Imported: imported,
		States:   len(states),
		Cities:   len(cities),
	}, nil
}

// States lists every known state, sorted.
func (uc *LocationUseCase) States(ctx context.Context) ([]string, error) {
	locations, err := uc.locationRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	states := lo.Uniq(lo.Map(locations, func(l *entity.Location, _ int) string {
		return l.State
	}))
	sort.Strings(states)

	return states, nil
}

// Cities lists the cities of one state, sorted. The state match is
// case-insensitive.
func (uc *LocationUseCase) Cities(ctx context.Context, state string) ([]string, error) {
	locations, err := uc.locationRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	matching := lo.Filter(locations, func(l *entity.Location, _ int) bool {
		return strings.EqualFold(l.State, state)
	})
	cities := lo.Uniq(lo.Map(matching, func(l *entity.Location, _ int) string {
		return l.City
	}))
	sort.Strings(cities)

	return cities, nil
}

type LocationSearchResult struct {
	States []string `json:"states"`
	Cities []string `json:"cities"`
}

// Search matches states and cities containing the term, case-insensitively.
func (uc *LocationUseCase) Search(ctx context.Context, term string) (*LocationSearchResult, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return &LocationSearchResult{States: []string{}, Cities: []string{}}, nil
	}

	locations, err := uc.locationRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	states := lo.Uniq(lo.FilterMap(locations, func(l *entity.Location, _ int) (string, bool) {
		return l.State, strings.Contains(strings.ToLower(l.State), term)
	}))
	cities := lo.Uniq(lo.FilterMap(locations, func(l *entity.Location, _ int) (string, bool) {
		return l.City, strings.Contains(strings.ToLower(l.City), term)
	}))
	sort.Strings(states)
	sort.Strings(cities)

	return &LocationSearchResult{States: states, Cities: cities}, nil
}
