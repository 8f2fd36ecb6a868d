package wardrobe

import "errors"

var (
	ErrItemNotFound       = errors.New("item not found")
	ErrSetNotFound        = errors.New("set not found")
	ErrInvalidCategory    = errors.New("invalid category")
	ErrInvalidSubcategory = errors.New("subcategory does not belong to category")
	ErrEmptyAnalysis      = errors.New("analysis is required")
	ErrEmptySet           = errors.New("set must contain at least one item")
	ErrEmptyName          = errors.New("name is required")
	ErrEmptyDestination   = errors.New("destination is required")
	ErrInvalidResolveMode = errors.New("invalid resolve mode")
	ErrAIUnavailable      = errors.New("ai service unavailable")
	ErrAIResponse         = errors.New("ai response could not be decoded")
	ErrInvalidDateRange   = errors.New("invalid date range")
)
