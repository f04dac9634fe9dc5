package settings

import "errors"

var (
	ErrInvalidInput = errors.New("invalid settings")
	ErrSaveFailed   = errors.New("failed to save settings")
	ErrConflict     = errors.New("settings file changed concurrently")
)
