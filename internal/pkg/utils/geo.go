package utils

import (
	"math"

	"github.com/station-locator/internal/domain"
)

// Средний радиус Земли (IUGG), тот же, что у классической реализации haversine
const earthRadiusKm = 6371.0088

// HaversineDistance вычисляет расстояние между двумя точками в километрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// DistanceMeters - расстояние по большому кругу между двумя точками [lng, lat] в метрах
func DistanceMeters(a, b domain.Coordinates) float64 {
	return HaversineDistance(a.Lat(), a.Lng(), b.Lat(), b.Lng()) * 1000.0
}
