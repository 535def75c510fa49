package migrations

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_VersionsAreSequential(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	version, err := src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	versions := []uint{version}
	for {
		next, err := src.Next(version)
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, fs.ErrNotExist) {
			break
		}
		require.NoError(t, err)
		versions = append(versions, next)
		version = next
	}

	assert.Equal(t, []uint{1, 2, 3}, versions)
}

func TestSource_EveryUpHasDown(t *testing.T) {
	src, err := Source()
	require.NoError(t, err)
	defer src.Close()

	for _, v := range []uint{1, 2, 3} {
		up, _, err := src.ReadUp(v)
		require.NoError(t, err)
		body, err := io.ReadAll(up)
		require.NoError(t, err)
		_ = up.Close()
		assert.True(t, strings.Contains(string(body), "CREATE TABLE"), "version %d", v)

		down, _, err := src.ReadDown(v)
		require.NoError(t, err)
		_ = down.Close()
	}
}

func TestSchema_ContainsWebhookDedupTable(t *testing.T) {
	body, err := files.ReadFile("sql/000003_commerce.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "processed_webhook_events")
}
