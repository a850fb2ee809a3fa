package sitepack_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/sitepack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURL(t *testing.T) {
	t.Parallel()

	t.Run("accepts absolute http and https URLs", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"https://example.com", "http://localhost:8080/a?b=c", " https://example.com/ "} {
			u, err := sitepack.ParseURL(raw)
			require.NoError(t, err, raw)
			assert.NotEmpty(t, u.Host)
		}
	})

	t.Run("rejects malformed URLs", func(t *testing.T) {
		t.Parallel()

		for _, raw := range []string{"", "not-a-url", "/relative/path", "ftp://example.com", "https://", "mailto:a@b.c"} {
			_, err := sitepack.ParseURL(raw)
			require.Error(t, err, raw)
			assert.Equal(t, sitepack.EINVALID, sitepack.ErrorCode(err), raw)
		}
	})
}

func TestExtraction_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires URL", func(t *testing.T) {
		t.Parallel()
		e := &sitepack.Extraction{}
		assert.Equal(t, sitepack.EINVALID, sitepack.ErrorCode(e.Validate()))
	})

	t.Run("rejects out of range score", func(t *testing.T) {
		t.Parallel()
		e := &sitepack.Extraction{URL: "https://example.com", Performance: sitepack.Performance{Score: 101}}
		assert.Equal(t, sitepack.EINVALID, sitepack.ErrorCode(e.Validate()))
	})

	t.Run("accepts valid extraction", func(t *testing.T) {
		t.Parallel()
		e := &sitepack.Extraction{URL: "https://example.com", Performance: sitepack.Performance{Score: 80}}
		assert.NoError(t, e.Validate())
	})
}

func TestExtraction_HostSlug(t *testing.T) {
	t.Parallel()

	e := &sitepack.Extraction{URL: "https://www.example.co.uk:8443/path"}
	assert.Equal(t, "www.example.co.uk", e.Host())
	assert.Equal(t, "www-example-co-uk", e.HostSlug())

	e = &sitepack.Extraction{URL: "::bad"}
	assert.Equal(t, "site", e.HostSlug())
}

func TestExtraction_Normalize(t *testing.T) {
	t.Parallel()

	e := &sitepack.Extraction{URL: "https://example.com"}
	e.Normalize()

	b, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, []any{}, decoded["frameworks"])
	assets := decoded["assets"].(map[string]any)
	for _, key := range []string{"html", "css", "js", "images", "fonts"} {
		assert.Equal(t, []any{}, assets[key], key)
	}
}
