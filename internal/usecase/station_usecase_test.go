package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/station-locator/internal/domain"
	"github.com/station-locator/internal/pkg/errors"
	"github.com/station-locator/internal/pkg/limits"
	"github.com/station-locator/internal/usecase"
	"github.com/station-locator/internal/usecase/dto"
)

var (
	listLimit    = limits.Enforcer{Param: "limit", Ceiling: 50, Default: 10}
	radiusLimit  = limits.Enforcer{Param: "maxDistance", Ceiling: 50000, Default: 10000}
	hotelDeVille = domain.Coordinates{2.3522, 48.8566}
)

func newStationUseCase(repo *MockStationRepository, resolver *MockResolver) *usecase.StationUseCase {
	return usecase.NewStationUseCase(repo, resolver, listLimit, radiusLimit, zap.NewNop())
}

func parisStation() domain.RawStation {
	raw := domain.NewRawStation()
	raw.Fields[domain.FieldKey] = "paris-hdv"
	raw.Fields[domain.FieldLocation] = domain.NewGeoPoint(hotelDeVille)
	raw.Fields[domain.FieldAddress] = "Place de l'Hôtel de Ville"
	raw.Fields[domain.FieldPrices] = map[string]interface{}{"super-95": 1.5, "diesel": 1.3}
	return raw
}

func TestStationUseCase_ListStations(t *testing.T) {
	ctx := context.Background()

	t.Run("no reference point means no near filter and no distance", func(t *testing.T) {
		repo := &MockStationRepository{}
		resolver := &MockResolver{}
		uc := newStationUseCase(repo, resolver)

		repo.On("Find", ctx, mock.MatchedBy(func(q domain.StationQuery) bool {
			return q.Filter.Near == nil &&
				q.Filter.Category == domain.StationCategory &&
				q.Limit == 10 &&
				q.Projection.Kind() == domain.ProjectionFull
		})).Return([]domain.RawStation{parisStation()}, nil).Once()

		resp, err := uc.ListStations(ctx, dto.StationsRequest{})
		require.NoError(t, err)

		assert.Equal(t, dto.StatusOK, resp.Status)
		require.Len(t, resp.Stations, 1)
		assert.NotContains(t, resp.Stations[0], "distance")
		assert.GreaterOrEqual(t, resp.ExecutedIn, 0.0)
		repo.AssertExpectations(t)
		resolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("at on top of a station gives zero distance", func(t *testing.T) {
		repo := &MockStationRepository{}
		uc := newStationUseCase(repo, &MockResolver{})

		repo.On("Find", ctx, mock.MatchedBy(func(q domain.StationQuery) bool {
			return q.Filter.Near != nil &&
				q.Filter.Near.Point == hotelDeVille &&
				q.Filter.Near.MaxDistance == 10000
		})).Return([]domain.RawStation{parisStation()}, nil).Once()

		resp, err := uc.ListStations(ctx, dto.StationsRequest{At: "2.3522,48.8566"})
		require.NoError(t, err)

		require.Len(t, resp.Stations, 1)
		assert.InDelta(t, 0.0, resp.Stations[0]["distance"], 1e-6)
		repo.AssertExpectations(t)
	})

	t.Run("distance is in meters", func(t *testing.T) {
		repo := &MockStationRepository{}
		uc := newStationUseCase(repo, &MockResolver{})

		repo.On("Find", ctx, mock.Anything).Return([]domain.RawStation{parisStation()}, nil).Once()

		// Notre-Dame, около 430 м от Отель-де-Виль
		resp, err := uc.ListStations(ctx, dto.StationsRequest{At: "2.3499,48.8530"})
		require.NoError(t, err)

		distance, ok := resp.Stations[0]["distance"].(float64)
		require.True(t, ok)
		assert.InDelta(t, 440, distance, 60)
	})

	t.Run("near is geocoded and takes precedence over at", func(t *testing.T) {
		repo := &MockStationRepository{}
		resolver := &MockResolver{}
		uc := newStationUseCase(repo, resolver)

		resolver.On("Resolve", ctx, "Hôtel de Ville, Paris", true).Return(hotelDeVille, nil).Once()
		repo.On("Find", ctx, mock.MatchedBy(func(q domain.StationQuery) bool {
			return q.Filter.Near != nil && q.Filter.Near.Point == hotelDeVille
		})).Return([]domain.RawStation{parisStation()}, nil).Once()

		resp, err := uc.ListStations(ctx, dto.StationsRequest{
			Near: "Hôtel de Ville, Paris",
			At:   "0,0",
		})
		require.NoError(t, err)
		assert.Contains(t, resp.Stations[0], "distance")
		resolver.AssertExpectations(t)
	})

	t.Run("unresolvable near is GeocodeNotFound", func(t *testing.T) {
		repo := &MockStationRepository{}
		resolver := &MockResolver{}
		uc := newStationUseCase(repo, resolver)

		resolver.On("Resolve", ctx, "Atlantis", true).
			Return(domain.Coordinates{}, errors.ErrGeocodeNotFound).Once()

		_, err := uc.ListStations(ctx, dto.StationsRequest{Near: "Atlantis"})
		assert.ErrorIs(t, err, errors.ErrGeocodeNotFound)
		repo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	})

	t.Run("maxDistance above ceiling is capped", func(t *testing.T) {
		repo := &MockStationRepository{}
		uc := newStationUseCase(repo, &MockResolver{})

		repo.On("Find", ctx, mock.MatchedBy(func(q domain.StationQuery) bool {
			return q.Filter.Near != nil && q.Filter.Near.MaxDistance == 50000
		})).Return([]domain.RawStation{}, nil).Once()

		_, err := uc.ListStations(ctx, dto.StationsRequest{At: "2.3522,48.8566", MaxDistance: "999999"})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("maxDistance without reference point is ignored", func(t *testing.T) {
		repo := &MockStationRepository{}
		uc := newStationUseCase(repo, &MockResolver{})

		repo.On("Find", ctx, mock.MatchedBy(func(q domain.StationQuery) bool {
			return q.Filter.Near == nil
		})).Return([]domain.RawStation{}, nil).Once()

		_, err := uc.ListStations(ctx, dto.StationsRequest{MaxDistance: "abc"})
		require.NoError(t, err)
	})

	t.Run("limit above ceiling is capped", func(t *testing.T) {
		repo := &MockStationRepository{}
		uc := newStationUseCase(repo, &MockResolver{})

		repo.On("Find", ctx, mock.MatchedBy(func(q domain.StationQuery) bool {
			return q.Limit == 50
		})).Return([]domain.RawStation{}, nil).Once()

		resp, err := uc.ListStations(ctx, dto.StationsRequest{Limit: "1000"})
		require.NoError(t, err)
		assert.Empty(t, resp.Stations)
		repo.AssertExpectations(t)
	})

	t.Run("non numeric limit is InvalidParameter", func(t *testing.T) {
		repo := &MockStationRepository{}
		uc := newStationUseCase(repo, &MockResolver{})

		_, err := uc.ListStations(ctx, dto.StationsRequest{Limit: "ten"})
		assert.ErrorIs(t, err, errors.ErrInvalidParameter)
		repo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	})

	t.Run("prices filter requests only the listed leaves", func(t *testing.T) {
		repo := &MockStationRepository{}
		uc := newStationUseCase(repo, &MockResolver{})

		raw := domain.NewRawStation()
		raw.Fields[domain.FieldKey] = "paris-hdv"
		raw.Paths[domain.PricePath("diesel")] = 1.3
		raw.Paths[domain.PricePath("super-95")] = 1.5

		repo.On("Find", ctx, mock.MatchedBy(func(q domain.StationQuery) bool {
			p := q.Projection
			return p.Kind() == domain.ProjectionSparse &&
				!p.Has(domain.FieldPrices) &&
				assert.ObjectsAreEqual([]domain.FieldPath{
					{Root: domain.FieldPrices, Leaf: "diesel"},
					{Root: domain.FieldPrices, Leaf: "super-95"},
				}, p.Paths())
		})).Return([]domain.RawStation{raw}, nil).Once()

		resp, err := uc.ListStations(ctx, dto.StationsRequest{Prices: "diesel,super-95,diesel"})
		require.NoError(t, err)

		rec := resp.Stations[0]
		assert.NotContains(t, rec, "prices.diesel")
		assert.Equal(t, []dto.Price{
			{Type: "diesel", Price: 1.3},
			{Type: "super_95", Price: 1.5},
		}, rec["prices"])
		repo.AssertExpectations(t)
	})

	t.Run("null price in one station does not fail the list", func(t *testing.T) {
		repo := &MockStationRepository{}
		uc := newStationUseCase(repo, &MockResolver{})

		lyon := domain.NewRawStation()
		lyon.Fields[domain.FieldKey] = "lyon"
		lyon.Fields[domain.FieldPrices] = map[string]interface{}{"diesel": nil, "super-95": 1.5}

		repo.On("Find", ctx, mock.Anything).Return([]domain.RawStation{parisStation(), lyon}, nil).Once()

		resp, err := uc.ListStations(ctx, dto.StationsRequest{})
		require.NoError(t, err)

		require.Len(t, resp.Stations, 2)
		assert.Equal(t, "lyon", resp.Stations[1]["key"])
		assert.Equal(t, []dto.Price{{Type: "super_95", Price: 1.5}}, resp.Stations[1]["prices"])
	})

	t.Run("malformed values are skipped with a warning", func(t *testing.T) {
		core, logs := observer.New(zap.WarnLevel)
		repo := &MockStationRepository{}
		uc := usecase.NewStationUseCase(repo, &MockResolver{}, listLimit, radiusLimit, zap.New(core))

		badPrice := domain.NewRawStation()
		badPrice.Fields[domain.FieldKey] = "marseille"
		badPrice.Fields[domain.FieldPrices] = map[string]interface{}{"gpl": "n/a", "diesel": 1.3}

		badTimestamp := domain.NewRawStation()
		badTimestamp.Fields[domain.FieldKey] = "nice"
		badTimestamp.Fields[domain.FieldUpdatedAt] = 42

		repo.On("Find", ctx, mock.Anything).
			Return([]domain.RawStation{badPrice, badTimestamp, parisStation()}, nil).Once()

		resp, err := uc.ListStations(ctx, dto.StationsRequest{})
		require.NoError(t, err)

		require.Len(t, resp.Stations, 2)
		assert.Equal(t, "marseille", resp.Stations[0]["key"])
		assert.Equal(t, []dto.Price{{Type: "diesel", Price: 1.3}}, resp.Stations[0]["prices"])
		assert.Equal(t, "paris-hdv", resp.Stations[1]["key"])

		assert.Equal(t, 1, logs.FilterMessage("Skipping malformed station value").Len())
		assert.Equal(t, 1, logs.FilterMessage("Skipping station that cannot be projected").Len())
	})

	t.Run("repository failure is propagated", func(t *testing.T) {
		repo := &MockStationRepository{}
		uc := newStationUseCase(repo, &MockResolver{})

		repo.On("Find", ctx, mock.Anything).Return(nil, errors.ErrDatabaseError).Once()

		_, err := uc.ListStations(ctx, dto.StationsRequest{})
		assert.ErrorIs(t, err, errors.ErrDatabaseError)
	})
}

func TestParseAt(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected *domain.Coordinates
		wantErr  bool
	}{
		{name: "empty", raw: "", expected: nil},
		{name: "only commas", raw: ",,", expected: nil},
		{name: "lng,lat", raw: "2.3522,48.8566", expected: &domain.Coordinates{2.3522, 48.8566}},
		{name: "spaces", raw: " 2.3522 , 48.8566 ", expected: &domain.Coordinates{2.3522, 48.8566}},
		{name: "single value", raw: "2.3522", wantErr: true},
		{name: "three values", raw: "1,2,3", wantErr: true},
		{name: "not a number", raw: "east,48", wantErr: true},
		{name: "latitude out of range", raw: "2.35,91", wantErr: true},
		{name: "longitude out of range", raw: "181,48", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := usecase.ParseAt(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, errors.ErrInvalidParameter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
