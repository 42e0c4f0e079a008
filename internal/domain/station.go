package domain

// StationCategory - единственная категория, которую отдаёт сервис
const StationCategory = "petrol"

// NearClause - условие близости к точке в пределах радиуса
type NearClause struct {
	Point       Coordinates
	MaxDistance int // meters
}

// StationFilter - условия выборки станций
type StationFilter struct {
	Category string
	Near     *NearClause
}

// StationQuery - полный запрос к хранилищу станций
type StationQuery struct {
	Filter     StationFilter
	Projection Projection
	Limit      int
}

// RawStation - запись в том виде, в каком её вернуло хранилище.
// Fields содержит поля верхнего уровня, Paths - вложенные значения
// из разреженной проекции.
type RawStation struct {
	Fields map[Field]interface{}
	Paths  map[FieldPath]interface{}
}

func NewRawStation() RawStation {
	return RawStation{
		Fields: make(map[Field]interface{}),
		Paths:  make(map[FieldPath]interface{}),
	}
}

// Location возвращает координаты станции, если поле loc было получено
func (s RawStation) Location() (Coordinates, bool) {
	switch loc := s.Fields[FieldLocation].(type) {
	case GeoPoint:
		return loc.Coordinates, true
	case *GeoPoint:
		if loc != nil {
			return loc.Coordinates, true
		}
	}
	return Coordinates{}, false
}
