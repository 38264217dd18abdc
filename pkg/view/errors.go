package view

import "errors"

var (
	// ErrViewNotFound is returned when a view name does not resolve to a file.
	ErrViewNotFound = errors.New("view: cannot find the requested view")

	// ErrTemplateParse is returned when a view file cannot be read or parsed.
	ErrTemplateParse = errors.New("view: failed to parse template")

	// ErrNoOpenClip is returned by EndClip when no clip is being recorded.
	ErrNoOpenClip = errors.New("view: endClip called without beginClip")
)
