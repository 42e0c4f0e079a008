// Package docs Station Locator API.
//
// Поиск заправок рядом с точкой или адресом с актуальными ценами на топливо.
//
// Основные возможности:
// - Поиск заправок в радиусе от координат (at) или адреса (near)
// - Фильтр видов топлива (prices)
// - Расстояние до каждой станции в метрах
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs
