package service

import "errors"

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidEmail  = errors.New("invalid email")
)
