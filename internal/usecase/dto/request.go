package dto

// StationsRequest - параметры GET /stations в сыром виде.
// Пустая строка означает, что параметр не передан.
type StationsRequest struct {
	Prices      string `json:"prices,omitempty"`      // "diesel,super-95"
	At          string `json:"at,omitempty"`          // "lng,lat"
	Near        string `json:"near,omitempty"`        // свободный адрес, важнее At
	Limit       string `json:"limit,omitempty"`       // ограничивается LIST_LIMIT
	MaxDistance string `json:"maxDistance,omitempty"` // метры, ограничивается DISTANCE_LIMIT
}

// ReferencePoint - точка отсчёта после разбора at
type ReferencePoint struct {
	Lng float64 `validate:"min=-180,max=180"`
	Lat float64 `validate:"min=-90,max=90"`
}
