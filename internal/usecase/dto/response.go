package dto

// StatusOK - значение поля status в успешном ответе
const StatusOK = "ok"

// StationsResponse - ответ GET /stations
type StationsResponse struct {
	Status     string          `json:"status"`
	Stations   []StationRecord `json:"stations"`
	ExecutedIn float64         `json:"executed_in"` // seconds
}

// StationRecord - запись станции после проекции.
// Набор ключей зависит от запроса: distance есть только при заданной точке.
type StationRecord map[string]interface{}

// Price - цена одного вида топлива
type Price struct {
	Type  string  `json:"type"`
	Price float64 `json:"price"`
}

// GeocodeResponse - ответ CLI geocode
type GeocodeResponse struct {
	Address     string     `json:"address"`
	Coordinates [2]float64 `json:"coordinates"` // [lng, lat]
}
