package repository

import "errors"

var (
	ErrNotFound          = errors.New("repository: record not found")
	ErrInsufficientStock = errors.New("repository: insufficient stock")
)
