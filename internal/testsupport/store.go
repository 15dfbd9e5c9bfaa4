package testsupport

import (
	"context"
	"testing"

	"daspub/internal/catalog"
	"daspub/internal/config"
)

// MustOpenCatalog opens the configured catalog for tests and registers cleanup.
func MustOpenCatalog(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.OpenFromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("catalog.OpenFromConfig: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}
