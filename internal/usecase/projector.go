package usecase

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/station-locator/internal/domain"
	"github.com/station-locator/internal/usecase/dto"
)

// isoTimestampLayout - ISO-8601 с числовым смещением (2017-03-01T10:00:00+00:00)
const isoTimestampLayout = "2006-01-02T15:04:05.999999-07:00"

// Transform - преобразование значения поля при проекции
type Transform int

const (
	TransformIdentity Transform = iota
	TransformRenderTimestamp
	TransformEnrichPrices
)

// StationTransforms - преобразования, которые применяются к записям станций
var StationTransforms = map[domain.Field]Transform{
	domain.FieldPrices:    TransformEnrichPrices,
	domain.FieldUpdatedAt: TransformRenderTimestamp,
}

// SkipFunc получает вложенные значения, которые пропущены при проекции
type SkipFunc func(path string, reason error)

func (t Transform) Apply(value interface{}, onSkip SkipFunc) (interface{}, error) {
	switch t {
	case TransformRenderTimestamp:
		return renderTimestamp(value)
	case TransformEnrichPrices:
		return EnrichPrices(value, onSkip)
	default:
		return value, nil
	}
}

// Project собирает запись ответа из сырой записи хранилища.
// Поле попадает в ответ, если оно есть в included. Вложенные пути уже
// отобраны на уровне запроса и проходят всегда; листья prices.* сливаются
// в поле prices и дальше обрабатываются как оно.
// onSkip может быть nil.
func Project(
	raw domain.RawStation,
	included map[domain.Field]struct{},
	transforms map[domain.Field]Transform,
	onSkip SkipFunc,
) (dto.StationRecord, error) {
	rec := make(dto.StationRecord, len(raw.Fields)+1)

	fields := raw.Fields
	if len(raw.Paths) > 0 {
		fields = make(map[domain.Field]interface{}, len(raw.Fields)+1)
		for f, v := range raw.Fields {
			fields[f] = v
		}

		var prices map[string]interface{}
		for path, v := range raw.Paths {
			if path.Root != domain.FieldPrices {
				rec[path.String()] = v
				continue
			}
			if prices == nil {
				prices = copyPrices(fields[domain.FieldPrices])
			}
			prices[path.Leaf] = v
		}
		if prices != nil {
			fields[domain.FieldPrices] = prices
		}
	}

	for field, value := range fields {
		if _, ok := included[field]; !ok {
			continue
		}

		out, err := transforms[field].Apply(value, onSkip)
		if err != nil {
			return nil, fmt.Errorf("transform %s: %w", field, err)
		}
		rec[string(field)] = out
	}

	return rec, nil
}

func copyPrices(v interface{}) map[string]interface{} {
	out := make(map[string]interface{})
	switch m := v.(type) {
	case map[string]interface{}:
		for k, p := range m {
			out[k] = p
		}
	case map[string]float64:
		for k, p := range m {
			out[k] = p
		}
	}
	return out
}

// EnrichPrices превращает {"super-95": 1.5} в [{"type": "super_95", "price": 1.5}].
// Порядок не гарантирован хранилищем, поэтому массив сортируется по type.
// null означает отсутствие цены и пропускается молча, как и в разреженной
// проекции; нечисловые значения пропускаются с уведомлением через onSkip.
func EnrichPrices(value interface{}, onSkip SkipFunc) (interface{}, error) {
	prices := make(map[string]float64)

	switch m := value.(type) {
	case nil:
	case map[string]float64:
		for k, p := range m {
			prices[unslugify(k)] = p
		}
	case map[string]interface{}:
		for k, raw := range m {
			if raw == nil {
				continue
			}
			p, err := toFloat(raw)
			if err != nil {
				if onSkip != nil {
					onSkip(domain.PricePath(k).String(), err)
				}
				continue
			}
			prices[unslugify(k)] = p
		}
	default:
		return nil, fmt.Errorf("unexpected prices type %T", value)
	}

	out := make([]dto.Price, 0, len(prices))
	for k, p := range prices {
		out = append(out, dto.Price{Type: k, Price: p})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })

	return out, nil
}

func unslugify(token string) string {
	return strings.ReplaceAll(token, "-", "_")
}

func toFloat(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return n.Float64()
	default:
		return 0, fmt.Errorf("not a number: %T", v)
	}
}

func renderTimestamp(value interface{}) (interface{}, error) {
	switch t := value.(type) {
	case time.Time:
		return t.Format(isoTimestampLayout), nil
	case *time.Time:
		if t == nil {
			return nil, nil
		}
		return t.Format(isoTimestampLayout), nil
	case string, nil:
		return t, nil
	default:
		return nil, fmt.Errorf("unexpected timestamp type %T", value)
	}
}
