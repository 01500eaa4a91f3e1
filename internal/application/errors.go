package application

import "errors"

var (
	// ErrMaxTabs is returned when adding to a full collection.
	ErrMaxTabs = errors.New("maximum of 15 tabs allowed")

	// ErrMinTabs is returned when removing the last tab.
	ErrMinTabs = errors.New("at least one tab is required")

	// ErrTabNotFound is returned when an id matches no tab.
	ErrTabNotFound = errors.New("tab not found")

	// ErrUnknownVariant is returned for a variant other than basic or advanced.
	ErrUnknownVariant = errors.New("unknown generator variant")

	// ErrUnknownTheme is returned for an out of range color theme.
	ErrUnknownTheme = errors.New("unknown color theme")

	// ErrUnknownAnimation is returned for an out of range animation.
	ErrUnknownAnimation = errors.New("unknown animation")

	// ErrNothingGenerated is returned when output is requested before Generate.
	ErrNothingGenerated = errors.New("nothing generated yet")
)
