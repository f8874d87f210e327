package models

import "errors"

// Error taxonomy shared by every layer. Wrap these with fmt.Errorf("%w")
// and test with errors.Is.
var (
	ErrNotFound         = errors.New("not found")
	ErrAlreadyExists    = errors.New("already exists")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrWrongCredentials = errors.New("invalid username or password")
	ErrValidation       = errors.New("validation failed")
	ErrStorage          = errors.New("storage failure")
	ErrCategoryInUse    = errors.New("category is still referenced")
)
