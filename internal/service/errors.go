package service

import "errors"

var (
	ErrNothingToEncode = errors.New("no credentials to encode")
	ErrEntryFailed     = errors.New("input entry failed")
)
