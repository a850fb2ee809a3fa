package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/sitepack"
	"github.com/fwojciec/sitepack/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewService(t *testing.T) {
	t.Parallel()

	t.Run("stores and retrieves preview", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewPreviewService(db)
		ctx := context.Background()

		p := &sitepack.CodePreview{Document: "<!DOCTYPE html><p>hi</p>"}
		require.NoError(t, svc.CreatePreview(ctx, p))
		require.NotEmpty(t, p.ID)

		got, err := svc.FindPreviewByID(ctx, p.ID)

		require.NoError(t, err)
		assert.Equal(t, p.Document, got.Document)
		assert.True(t, p.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("returns ENOTFOUND for unknown ID", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewPreviewService(db)

		_, err := svc.FindPreviewByID(context.Background(), "missing")

		assert.Equal(t, sitepack.ENOTFOUND, sitepack.ErrorCode(err))
	})
}
