package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/station-locator/internal/domain"
)

const referencePoint = "ST_SetSRID(ST_MakePoint(%s, %s), 4326)::geography"

// column - одна колонка SELECT и способ положить её значение в RawStation
type column struct {
	expr   string
	dest   func() interface{}
	assign func(rec *domain.RawStation, v interface{}) error
}

type findQuery struct {
	sql     string
	args    []interface{}
	columns []column
}

type argList struct {
	values []interface{}
}

func (a *argList) add(v interface{}) string {
	a.values = append(a.values, v)
	return fmt.Sprintf("$%d", len(a.values))
}

// buildFindQuery переводит StationQuery в SQL.
// Токены вложенных путей передаются параметрами и не попадают в текст запроса.
func buildFindQuery(q domain.StationQuery) findQuery {
	args := &argList{}

	where := []string{"category = " + args.add(q.Filter.Category)}
	orderBy := ""

	if near := q.Filter.Near; near != nil {
		point := fmt.Sprintf(referencePoint, args.add(near.Point.Lng()), args.add(near.Point.Lat()))
		where = append(where, fmt.Sprintf("ST_DWithin(location, %s, %s)", point, args.add(float64(near.MaxDistance))))
		orderBy = fmt.Sprintf(" ORDER BY ST_Distance(location, %s)", point)
	}

	columns := make([]column, 0, len(q.Projection.Fields())+len(q.Projection.Paths()))
	for _, field := range q.Projection.Fields() {
		if col, ok := fieldColumn(field); ok {
			columns = append(columns, col)
		}
	}
	for _, path := range q.Projection.Paths() {
		columns = append(columns, pathColumn(path, args.add(path.Leaf)))
	}

	exprs := make([]string, len(columns))
	for i, col := range columns {
		exprs[i] = col.expr
	}

	limit := q.Limit
	if limit < 0 {
		limit = 0
	}

	query := fmt.Sprintf("SELECT %s FROM stations WHERE %s%s LIMIT %s",
		strings.Join(exprs, ", "),
		strings.Join(where, " AND "),
		orderBy,
		args.add(limit),
	)

	return findQuery{sql: query, args: args.values, columns: columns}
}

func nullString() interface{} { return new(sql.NullString) }

func fieldColumn(field domain.Field) (column, bool) {
	switch field {
	case domain.FieldKey, domain.FieldAddress, domain.FieldScrapedURL:
		return column{
			expr: string(field),
			dest: nullString,
			assign: func(rec *domain.RawStation, v interface{}) error {
				if s := v.(*sql.NullString); s.Valid {
					rec.Fields[field] = s.String
				}
				return nil
			},
		}, true

	case domain.FieldLocation:
		return column{
			expr: "ST_AsGeoJSON(location)",
			dest: nullString,
			assign: func(rec *domain.RawStation, v interface{}) error {
				s := v.(*sql.NullString)
				if !s.Valid {
					return nil
				}
				var point domain.GeoPoint
				if err := json.Unmarshal([]byte(s.String), &point); err != nil {
					return fmt.Errorf("decode location: %w", err)
				}
				rec.Fields[field] = point
				return nil
			},
		}, true

	case domain.FieldUpdatedAt:
		return column{
			expr: "updated_at",
			dest: func() interface{} { return new(sql.NullTime) },
			assign: func(rec *domain.RawStation, v interface{}) error {
				if t := v.(*sql.NullTime); t.Valid {
					rec.Fields[field] = t.Time
				}
				return nil
			},
		}, true

	case domain.FieldPrices:
		return column{
			expr: "prices::text",
			dest: nullString,
			assign: func(rec *domain.RawStation, v interface{}) error {
				s := v.(*sql.NullString)
				if !s.Valid {
					return nil
				}
				prices := make(map[string]interface{})
				if err := json.Unmarshal([]byte(s.String), &prices); err != nil {
					return fmt.Errorf("decode prices: %w", err)
				}
				rec.Fields[field] = prices
				return nil
			},
		}, true
	}

	return column{}, false
}

// pathColumn выбирает один ключ из jsonb; отсутствующий ключ не попадает в запись
func pathColumn(path domain.FieldPath, placeholder string) column {
	return column{
		expr: fmt.Sprintf("(%s -> %s::text)::text", string(path.Root), placeholder),
		dest: nullString,
		assign: func(rec *domain.RawStation, v interface{}) error {
			s := v.(*sql.NullString)
			if !s.Valid {
				return nil
			}
			var value interface{}
			if err := json.Unmarshal([]byte(s.String), &value); err != nil {
				return fmt.Errorf("decode %s: %w", path, err)
			}
			if value != nil {
				rec.Paths[path] = value
			}
			return nil
		},
	}
}
