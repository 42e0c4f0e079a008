package errors

import "net/http"

var (
	ErrInvalidParameter = New(
		"INVALID_PARAMETER",
		"Invalid request parameter",
		http.StatusBadRequest,
	)

	ErrGeocodeNotFound = New(
		"GEOCODE_NOT_FOUND",
		"Address could not be resolved to a location",
		http.StatusNotFound,
	)

	ErrGeocodeUnavailable = New(
		"GEOCODE_UNAVAILABLE",
		"Geocoding service unavailable",
		http.StatusBadGateway,
	)

	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrNotFound = New(
		"NOT_FOUND",
		"Resource not found",
		http.StatusNotFound,
	)

	ErrServiceUnavailable = New(
		"SERVICE_UNAVAILABLE",
		"Service unavailable",
		http.StatusServiceUnavailable,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
