package mongo_test

import (
	"context"
	"errors"
	"testing"

	"wardrobe-assistant/pkg/mongo"
)

func TestConnect_RequiresURI(t *testing.T) {
	_, err := mongo.Connect(context.Background(), mongo.Config{})
	if !errors.Is(err, mongo.ErrMissingURI) {
		t.Errorf("expected ErrMissingURI, got %v", err)
	}
}

func TestConnect_InvalidURI(t *testing.T) {
	_, err := mongo.Connect(context.Background(), mongo.Config{URI: "not-a-mongo-uri"})
	if err == nil {
		t.Error("expected error for malformed uri")
	}
}

func TestDisconnect_NilClient(t *testing.T) {
	if err := mongo.Disconnect(nil, 0); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
