package http

import (
	"errors"
	"net/http"

	"wardrobe-assistant/internal/wardrobe"
	pkgErrors "wardrobe-assistant/pkg/errors"
)

var errEmptyReference = pkgErrors.NewHTTPError(http.StatusBadRequest, "reference needs an id or a description")

var badRequestErrors = []error{
	wardrobe.ErrInvalidCategory,
	wardrobe.ErrInvalidSubcategory,
	wardrobe.ErrEmptyAnalysis,
	wardrobe.ErrEmptySet,
	wardrobe.ErrEmptyName,
	wardrobe.ErrEmptyDestination,
	wardrobe.ErrInvalidResolveMode,
	wardrobe.ErrInvalidDateRange,
}

// mapError translates domain/use-case errors into HTTP errors from pkg/errors.
// Unknown errors become a 500 without leaking their text.
func (h *handler) mapError(err error) error {
	switch {
	case errors.Is(err, wardrobe.ErrItemNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, wardrobe.ErrItemNotFound.Error())
	case errors.Is(err, wardrobe.ErrSetNotFound):
		return pkgErrors.NewHTTPError(http.StatusNotFound, wardrobe.ErrSetNotFound.Error())
	case errors.Is(err, wardrobe.ErrAIUnavailable):
		return pkgErrors.NewHTTPError(http.StatusServiceUnavailable, wardrobe.ErrAIUnavailable.Error())
	case errors.Is(err, wardrobe.ErrAIResponse):
		return pkgErrors.NewHTTPError(http.StatusBadGateway, wardrobe.ErrAIResponse.Error())
	}

	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return pkgErrors.NewHTTPError(http.StatusBadRequest, target.Error())
		}
	}

	return pkgErrors.ErrInternalServerError
}
