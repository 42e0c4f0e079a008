package domain

import "fmt"

// Coordinates - точка в порядке [longitude, latitude] (GeoJSON)
type Coordinates [2]float64

func (c Coordinates) Lng() float64 { return c[0] }
func (c Coordinates) Lat() float64 { return c[1] }

func (c Coordinates) String() string {
	return fmt.Sprintf("%g,%g", c[0], c[1])
}

// GeoPoint - геометрия GeoJSON Point
type GeoPoint struct {
	Type        string      `json:"type"`
	Coordinates Coordinates `json:"coordinates"`
}

func NewGeoPoint(c Coordinates) GeoPoint {
	return GeoPoint{Type: "Point", Coordinates: c}
}
