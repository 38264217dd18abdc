package i18n

import "errors"

var (
	ErrEmptyLocale    = errors.New("i18n: locale cannot be empty")
	ErrEmptyNamespace = errors.New("i18n: namespace cannot be empty")
	ErrInvalidFile    = errors.New("i18n: invalid translation file")
)
