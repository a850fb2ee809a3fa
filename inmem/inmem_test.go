package inmem_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/sitepack"
	"github.com/fwojciec/sitepack/inmem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExtraction(url string) *sitepack.Extraction {
	return &sitepack.Extraction{
		URL: url,
		Assets: sitepack.Assets{
			CSS: []sitepack.Asset{{Name: "style.css", URL: url + "style.css", Kind: sitepack.AssetCSS, Content: "body{}"}},
		},
		Performance: sitepack.Performance{Score: 100},
	}
}

func TestExtractionService(t *testing.T) {
	t.Parallel()

	t.Run("creates and finds extraction", func(t *testing.T) {
		t.Parallel()

		svc := inmem.NewExtractionService()
		ctx := context.Background()

		e := newExtraction("https://example.com/")
		require.NoError(t, svc.CreateExtraction(ctx, e))
		require.NotEmpty(t, e.ID)

		got, err := svc.FindExtractionByID(ctx, e.ID)

		require.NoError(t, err)
		assert.Equal(t, e, got)
	})

	t.Run("returned records do not alias stored records", func(t *testing.T) {
		t.Parallel()

		svc := inmem.NewExtractionService()
		ctx := context.Background()

		e := newExtraction("https://example.com/")
		require.NoError(t, svc.CreateExtraction(ctx, e))
		e.Assets.CSS[0].Name = "changed.css"

		got, err := svc.FindExtractionByID(ctx, e.ID)
		require.NoError(t, err)
		got.Assets.CSS[0].Content = "changed"

		again, err := svc.FindExtractionByID(ctx, e.ID)
		require.NoError(t, err)
		assert.Equal(t, "style.css", again.Assets.CSS[0].Name)
		assert.Equal(t, "body{}", again.Assets.CSS[0].Content)
	})

	t.Run("rejects invalid extraction", func(t *testing.T) {
		t.Parallel()

		svc := inmem.NewExtractionService()

		err := svc.CreateExtraction(context.Background(), &sitepack.Extraction{})

		assert.Equal(t, sitepack.EINVALID, sitepack.ErrorCode(err))
	})

	t.Run("finds most recent by URL", func(t *testing.T) {
		t.Parallel()

		svc := inmem.NewExtractionService()
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		svc.Now = func() time.Time { now = now.Add(time.Second); return now }
		ctx := context.Background()

		older := newExtraction("https://example.com/")
		newer := newExtraction("https://example.com/")
		require.NoError(t, svc.CreateExtraction(ctx, older))
		require.NoError(t, svc.CreateExtraction(ctx, newer))

		got, err := svc.FindExtractionByURL(ctx, "https://example.com/")

		require.NoError(t, err)
		assert.Equal(t, newer.ID, got.ID)

		_, err = svc.FindExtractionByURL(ctx, "https://missing.com/")
		assert.Equal(t, sitepack.ENOTFOUND, sitepack.ErrorCode(err))
	})

	t.Run("lists recent extractions newest first with ID tie-break", func(t *testing.T) {
		t.Parallel()

		svc := inmem.NewExtractionService()
		fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		svc.Now = func() time.Time { return fixed }
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			require.NoError(t, svc.CreateExtraction(ctx, newExtraction("https://example.com/")))
		}
		svc.Now = func() time.Time { return fixed.Add(time.Hour) }
		latest := newExtraction("https://example.com/")
		require.NoError(t, svc.CreateExtraction(ctx, latest))

		got, err := svc.FindRecentExtractions(ctx, 0)

		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, latest.ID, got[0].ID)
		assert.Less(t, got[1].ID, got[2].ID)
		assert.Less(t, got[2].ID, got[3].ID)

		limited, err := svc.FindRecentExtractions(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, limited, 2)
	})

	t.Run("deletes extraction", func(t *testing.T) {
		t.Parallel()

		svc := inmem.NewExtractionService()
		ctx := context.Background()

		e := newExtraction("https://example.com/")
		require.NoError(t, svc.CreateExtraction(ctx, e))
		require.NoError(t, svc.DeleteExtraction(ctx, e.ID))

		_, err := svc.FindExtractionByID(ctx, e.ID)
		assert.Equal(t, sitepack.ENOTFOUND, sitepack.ErrorCode(err))

		err = svc.DeleteExtraction(ctx, e.ID)
		assert.Equal(t, sitepack.ENOTFOUND, sitepack.ErrorCode(err))
	})

	t.Run("is safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		svc := inmem.NewExtractionService()
		ctx := context.Background()

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				assert.NoError(t, svc.CreateExtraction(ctx, newExtraction("https://example.com/")))
			}()
			go func() {
				defer wg.Done()
				_, err := svc.FindRecentExtractions(ctx, 5)
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		n, err := svc.CountExtractions(ctx)
		require.NoError(t, err)
		assert.Equal(t, 20, n)
	})
}

func TestPreviewService(t *testing.T) {
	t.Parallel()

	svc := inmem.NewPreviewService()
	ctx := context.Background()

	p := &sitepack.CodePreview{Document: "<p>hi</p>"}
	require.NoError(t, svc.CreatePreview(ctx, p))

	got, err := svc.FindPreviewByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", got.Document)

	_, err = svc.FindPreviewByID(ctx, "missing")
	assert.Equal(t, sitepack.ENOTFOUND, sitepack.ErrorCode(err))
}
