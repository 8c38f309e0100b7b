//go:build integration

package users

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
)

func TestMongoStore_Integration(t *testing.T) {
	uri := os.Getenv("PENMAN_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	ctx := context.Background()

	db := "penman_test_" + uuid.NewString()[:8]
	s, err := NewMongoStore(ctx, MongoConfig{URI: uri, Database: db})
	if err != nil {
		t.Skipf("mongo unavailable: %v", err)
	}
	t.Cleanup(func() {
		s.client.Database(db).Drop(ctx)
		s.Close(ctx)
	})

	storeContract(t, s)
}
