package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.pindown.dev/pindown/internal/core/domain"
)

func manifestOf(t *testing.T, reqs ...string) *domain.Manifest {
	t.Helper()
	m := domain.NewManifest("", nil)
	for _, r := range reqs {
		require.NoError(t, m.AppendRequirement(mustRequirement(t, r)))
	}
	return m
}

func TestDiffManifests(t *testing.T) {
	before := manifestOf(t, "seaborn==0.11.2", "pandas<2", "numpy")
	after := manifestOf(t, "seaborn==0.12.0", "pandas<2", "altair<5")

	entries := domain.DiffManifests(before, after)
	require.Len(t, entries, 3)

	// Sorted by package name: altair, numpy, seaborn.
	assert.Equal(t, domain.ChangeAdded, entries[0].Kind)
	assert.Equal(t, "altair", entries[0].Package.String())
	assert.Equal(t, "altair<5", entries[0].After)
	assert.Empty(t, entries[0].Before)

	assert.Equal(t, domain.ChangeRemoved, entries[1].Kind)
	assert.Equal(t, "numpy", entries[1].Package.String())
	assert.Equal(t, "numpy", entries[1].Before)

	assert.Equal(t, domain.ChangeModified, entries[2].Kind)
	assert.Equal(t, "seaborn", entries[2].Package.String())
	assert.Equal(t, "seaborn==0.11.2", entries[2].Before)
	assert.Equal(t, "seaborn==0.12.0", entries[2].After)
}

func TestDiffManifests_IgnoresCommentsAndOrder(t *testing.T) {
	before := manifestOf(t, "pandas<2", "seaborn==0.11.2")

	after := domain.NewManifest("", nil)
	after.AppendComment("reshuffled with notes")
	require.NoError(t, after.AppendRequirement(mustRequirement(t, "Seaborn == 0.11.2")))
	require.NoError(t, after.AppendRequirement(mustRequirement(t, "pandas<2")))

	assert.Empty(t, domain.DiffManifests(before, after))
}
