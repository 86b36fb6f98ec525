package domain

import "errors"

var (
	ErrEmailExists        = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrGameExists   = errors.New("game already exists")
	ErrGameNotFound = errors.New("game not found")

	ErrNameRequired       = errors.New("name must not be empty")
	ErrGenreRequired      = errors.New("genre must not be empty")
	ErrInvalidReleaseDate = errors.New("release date must be a valid date")
)
