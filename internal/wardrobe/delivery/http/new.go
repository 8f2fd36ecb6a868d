package http

import (
	"wardrobe-assistant/internal/wardrobe"
	"wardrobe-assistant/pkg/log"
	"wardrobe-assistant/pkg/s3"
)

type handler struct {
	l         log.Logger
	uc        wardrobe.UseCase
	presigner s3.IPresigner
}

// New creates a new HTTP handler for the wardrobe domain. presigner may be nil,
// in which case image keys are returned as stored.
func New(l log.Logger, uc wardrobe.UseCase, presigner s3.IPresigner) *handler {
	return &handler{
		l:         l,
		uc:        uc,
		presigner: presigner,
	}
}
