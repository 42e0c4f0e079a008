package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/station-locator/internal/domain"
	"github.com/station-locator/internal/usecase"
	"github.com/station-locator/internal/usecase/dto"
)

func allBaseFields() map[domain.Field]struct{} {
	included := make(map[domain.Field]struct{})
	for _, f := range domain.BaseFields {
		included[f] = struct{}{}
	}
	return included
}

func TestEnrichPrices(t *testing.T) {
	tests := []struct {
		name     string
		input    interface{}
		expected []dto.Price
		wantErr  bool
	}{
		{
			name:     "hyphenated token becomes underscore",
			input:    map[string]interface{}{"super-95": 1.50},
			expected: []dto.Price{{Type: "super_95", Price: 1.5}},
		},
		{
			name:  "sorted by type",
			input: map[string]interface{}{"super-98": 1.7, "diesel": 1.3, "e85": 0.8},
			expected: []dto.Price{
				{Type: "diesel", Price: 1.3},
				{Type: "e85", Price: 0.8},
				{Type: "super_98", Price: 1.7},
			},
		},
		{
			name:     "typed map",
			input:    map[string]float64{"gpl": 0.9},
			expected: []dto.Price{{Type: "gpl", Price: 0.9}},
		},
		{
			name:     "nil is empty list",
			input:    nil,
			expected: []dto.Price{},
		},
		{
			name:     "null price is dropped",
			input:    map[string]interface{}{"diesel": nil, "super-95": 1.50},
			expected: []dto.Price{{Type: "super_95", Price: 1.5}},
		},
		{
			name:     "non numeric price is dropped",
			input:    map[string]interface{}{"diesel": "cheap", "e85": 0.8},
			expected: []dto.Price{{Type: "e85", Price: 0.8}},
		},
		{
			name:    "not a mapping",
			input:   []float64{1.5},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := usecase.EnrichPrices(tt.input, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestEnrichPrices_ReportsSkippedValues(t *testing.T) {
	var skipped []string
	onSkip := func(path string, reason error) {
		assert.Error(t, reason)
		skipped = append(skipped, path)
	}

	out, err := usecase.EnrichPrices(map[string]interface{}{
		"diesel":   nil,
		"super-95": 1.5,
		"gpl":      "n/a",
	}, onSkip)
	require.NoError(t, err)

	assert.Equal(t, []dto.Price{{Type: "super_95", Price: 1.5}}, out)
	assert.Equal(t, []string{"prices.gpl"}, skipped, "null is a missing price, not a malformed one")
}

func TestProject(t *testing.T) {
	updated := time.Date(2017, 3, 1, 10, 0, 0, 0, time.UTC)

	t.Run("full record", func(t *testing.T) {
		raw := domain.NewRawStation()
		raw.Fields[domain.FieldKey] = "paris-hdv"
		raw.Fields[domain.FieldLocation] = domain.NewGeoPoint(domain.Coordinates{2.3522, 48.8566})
		raw.Fields[domain.FieldAddress] = "Place de l'Hôtel de Ville"
		raw.Fields[domain.FieldUpdatedAt] = updated
		raw.Fields[domain.FieldPrices] = map[string]interface{}{"super-95": 1.5}
		raw.Fields[domain.FieldScrapedURL] = "https://example.org/paris-hdv"

		rec, err := usecase.Project(raw, allBaseFields(), usecase.StationTransforms, nil)
		require.NoError(t, err)

		assert.Equal(t, "paris-hdv", rec["key"])
		assert.Equal(t, "2017-03-01T10:00:00+00:00", rec["updated_at"])
		assert.Equal(t, []dto.Price{{Type: "super_95", Price: 1.5}}, rec["prices"])
		assert.Equal(t, domain.NewGeoPoint(domain.Coordinates{2.3522, 48.8566}), rec["loc"])
	})

	t.Run("fields outside included are dropped", func(t *testing.T) {
		raw := domain.NewRawStation()
		raw.Fields[domain.FieldKey] = "k"
		raw.Fields["internal_flag"] = true

		rec, err := usecase.Project(raw, allBaseFields(), usecase.StationTransforms, nil)
		require.NoError(t, err)

		assert.Contains(t, rec, "key")
		assert.NotContains(t, rec, "internal_flag")
	})

	t.Run("price paths fold into prices", func(t *testing.T) {
		raw := domain.NewRawStation()
		raw.Fields[domain.FieldKey] = "k"
		raw.Paths[domain.PricePath("diesel")] = 1.3
		raw.Paths[domain.PricePath("super_95")] = 1.5

		rec, err := usecase.Project(raw, allBaseFields(), usecase.StationTransforms, nil)
		require.NoError(t, err)

		assert.NotContains(t, rec, "prices.diesel")
		assert.NotContains(t, rec, "prices.super-95")
		assert.Equal(t, []dto.Price{
			{Type: "diesel", Price: 1.3},
			{Type: "super_95", Price: 1.5},
		}, rec["prices"])
	})

	t.Run("timestamp with offset", func(t *testing.T) {
		raw := domain.NewRawStation()
		raw.Fields[domain.FieldUpdatedAt] = time.Date(2017, 3, 1, 10, 0, 0, 500000000, time.FixedZone("CET", 3600))

		rec, err := usecase.Project(raw, allBaseFields(), usecase.StationTransforms, nil)
		require.NoError(t, err)
		assert.Equal(t, "2017-03-01T10:00:00.5+01:00", rec["updated_at"])
	})

	t.Run("identity when no transform registered", func(t *testing.T) {
		raw := domain.NewRawStation()
		raw.Fields[domain.FieldPrices] = map[string]interface{}{"super-95": 1.5}

		rec, err := usecase.Project(raw, allBaseFields(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"super-95": 1.5}, rec["prices"])
	})

	t.Run("transform failure is reported", func(t *testing.T) {
		raw := domain.NewRawStation()
		raw.Fields[domain.FieldUpdatedAt] = 42

		_, err := usecase.Project(raw, allBaseFields(), usecase.StationTransforms, nil)
		assert.Error(t, err)
	})
}
