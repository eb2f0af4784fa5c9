package services

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("resource not found")
	// ErrNotOwner is returned when a caller tries to modify a record owned
	// by someone else and is not an admin.
	ErrNotOwner = errors.New("not authorized to modify this resource")
	// ErrDuplicateName is returned when a bootcamp name is already taken.
	ErrDuplicateName = errors.New("bootcamp name already in use")
	// ErrDuplicateReview is returned when a user submits a second review
	// for the same bootcamp.
	ErrDuplicateReview = errors.New("user has already reviewed this bootcamp")
	// ErrEmailInUse is returned when registering with a taken email.
	ErrEmailInUse = errors.New("email already in use")
	// ErrGeocodingUnavailable is returned when the geocoding provider is
	// rate limited or unreachable. The write is aborted and can be retried.
	ErrGeocodingUnavailable = errors.New("geocoding service unavailable")
	// ErrAddressNotFound is returned in strict geocoding mode when the
	// provider has no match for the supplied address.
	ErrAddressNotFound = errors.New("address could not be geocoded")
)
