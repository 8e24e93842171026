package domain

import "errors"

// Domain errors
var (
	ErrUnreadableDocument  = errors.New("unreadable document")
	ErrPortNotFound        = errors.New("port not found")
	ErrPlaceNotFound       = errors.New("place not found")
	ErrLocationUnavailable = errors.New("location could not be determined")
	ErrNoWeatherData       = errors.New("no weather data")
)
