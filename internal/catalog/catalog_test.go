package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetByID(t *testing.T) {
	t.Parallel()

	f, ok := GetByID("thesis-complete")
	require.True(t, ok)
	assert.Equal(t, "Automated_Spectrophotometer_Thesis_2025.pdf", f.Filename)
	assert.False(t, f.IsProtected)

	_, ok = GetByID("no-such-file")
	assert.False(t, ok)
}

func TestListByCategoryStableOrder(t *testing.T) {
	t.Parallel()

	first := ListByCategory(CategoryGUI)
	second := ListByCategory(CategoryGUI)
	require.Len(t, first, 3)
	assert.Equal(t, first, second, "re-querying yields the same sequence")
	assert.Equal(t, "gui-main-interface", first[0].ID)
	assert.Equal(t, "gui-live-plotting", first[1].ID)
	assert.Equal(t, "gui-metrics-panel", first[2].ID)
}

func TestRequiredRoleImpliesProtected(t *testing.T) {
	t.Parallel()

	for _, f := range All() {
		if f.RequiredRole != "" {
			assert.True(t, f.IsProtected, "file %s has a role requirement but no protection flag", f.ID)
		}
	}
}

func TestMimeTypeFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "application/pdf", MimeTypeFor("pdf"))
	assert.Equal(t, "image/jpeg", MimeTypeFor("JPG"))
	assert.Equal(t, "text/csv", MimeTypeFor("csv"))
	assert.Equal(t, "application/octet-stream", MimeTypeFor("exe"))
	assert.Equal(t, "application/octet-stream", MimeTypeFor(""))
}
