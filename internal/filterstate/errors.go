package filterstate

import "errors"

var (
	// ErrKeyNotFound is returned by Storage.Get for absent keys.
	ErrKeyNotFound = errors.New("storage key not found")

	ErrEmptyFilter       = errors.New("filter has no selections to save")
	ErrDuplicatePreset   = errors.New("a preset with the same filters already exists")
	ErrPresetNotFound    = errors.New("preset not found")
	ErrInvalidPresetName = errors.New("preset name must not be empty")
	ErrPresetNameTaken   = errors.New("another preset already uses that name")

	// ErrStaleResponse marks a search response superseded by a newer search.
	ErrStaleResponse = errors.New("search response superseded by a newer search")

	ErrUnknownField      = errors.New("unknown filter field")
	ErrInvalidFieldValue = errors.New("invalid filter field value")
)
