package repositories_test

import (
	"context"
	"github.com/mtoivan/samplab/internal/sqlite"
	"github.com/mtoivan/samplab/internal/testhelpers"
	"io"
	"testing"
)

// newTestDB creates an in-memory database seeded with the embedded fixtures.
func newTestDB(t *testing.T) *sqlite.Database {
	t.Helper()

	dbs, err := sqlite.NewDatabase(context.Background(), ":memory:", testhelpers.NewLogger(io.Discard))
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if err := dbs.Close(); err != nil {
			t.Fatal(err)
		}
	})

	return dbs
}
