package domain

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidUserID      = errors.New("invalid user id")

	// ErrNoModel is returned when inference is requested before any model
	// has been trained and stored.
	ErrNoModel = errors.New("no trained model available")

	// ErrEmptyDataset is returned when training is requested against an
	// empty dataset collection.
	ErrEmptyDataset = errors.New("dataset is empty")

	ErrInvalidPredictionInput = errors.New("quantity must be positive and sales price must be non-negative")
)
