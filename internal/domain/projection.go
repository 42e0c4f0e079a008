package domain

import "strings"

// Field - поле записи станции верхнего уровня
type Field string

const (
	FieldKey        Field = "key"
	FieldLocation   Field = "loc"
	FieldAddress    Field = "address"
	FieldUpdatedAt  Field = "updated_at"
	FieldPrices     Field = "prices"
	FieldScrapedURL Field = "scraped_url"
	FieldDistance   Field = "distance"
)

// BaseFields - поля, запрашиваемые у хранилища по умолчанию
var BaseFields = []Field{
	FieldKey,
	FieldLocation,
	FieldAddress,
	FieldUpdatedAt,
	FieldPrices,
	FieldScrapedURL,
}

// FieldPath - вложенное поле, например prices.super-95
type FieldPath struct {
	Root Field
	Leaf string
}

func (p FieldPath) String() string {
	return string(p.Root) + "." + p.Leaf
}

// PricePath строит путь к цене одного вида топлива.
// Токены хранятся в дефисной форме, поэтому "_" заменяется на "-".
func PricePath(token string) FieldPath {
	return FieldPath{Root: FieldPrices, Leaf: strings.ReplaceAll(token, "_", "-")}
}

type ProjectionKind int

const (
	ProjectionFull ProjectionKind = iota
	ProjectionSparse
)

// Projection - набор полей, который запрашивается у хранилища.
// Full содержит только поля верхнего уровня; Sparse дополнительно
// содержит вложенные пути вместо целого поля-родителя.
type Projection struct {
	kind   ProjectionKind
	fields []Field
	paths  []FieldPath
}

func FullProjection(fields ...Field) Projection {
	return Projection{kind: ProjectionFull, fields: fields}
}

// SparseProjection убирает из fields родителей переданных путей
func SparseProjection(fields []Field, paths []FieldPath) Projection {
	roots := make(map[Field]struct{}, len(paths))
	for _, p := range paths {
		roots[p.Root] = struct{}{}
	}

	kept := make([]Field, 0, len(fields))
	for _, f := range fields {
		if _, ok := roots[f]; !ok {
			kept = append(kept, f)
		}
	}

	return Projection{kind: ProjectionSparse, fields: kept, paths: paths}
}

func (p Projection) Kind() ProjectionKind { return p.kind }
func (p Projection) Fields() []Field      { return p.fields }
func (p Projection) Paths() []FieldPath   { return p.paths }

func (p Projection) Has(f Field) bool {
	for _, field := range p.fields {
		if field == f {
			return true
		}
	}
	return false
}

// Keys возвращает плоские имена всех запрошенных полей и путей
func (p Projection) Keys() []string {
	keys := make([]string, 0, len(p.fields)+len(p.paths))
	for _, f := range p.fields {
		keys = append(keys, string(f))
	}
	for _, path := range p.paths {
		keys = append(keys, path.String())
	}
	return keys
}
