package product

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"recipecards/pkg/models"
)

func TestExportMasterListing(t *testing.T) {
	productsDir := t.TempDir()
	w := NewWriter(productsDir)

	for _, title := range []string{"Apple Pie", "Cherry Cobbler"} {
		productDir, _, _, err := w.CreateFolder(&models.Recipe{Title: title}, "")
		require.NoError(t, err)
		content := testContent()
		content.Description = title + " description"
		require.NoError(t, w.SaveContentFiles(productDir, &models.Recipe{Title: title}, content))
	}

	// A folder without a listing.csv must not break the export.
	require.NoError(t, os.MkdirAll(filepath.Join(productsDir, "empty-folder"), 0o755))

	count, err := w.ExportMasterListing()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	f, err := os.Open(filepath.Join(productsDir, MasterCSVName))
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, listingColumns, records[0])

	// Folders are walked in sorted order.
	assert.Equal(t, "Apple Pie | Digital Recipe Download", records[1][0])
	assert.Equal(t, "Cherry Cobbler | Digital Recipe Download", records[2][0])

	xlsx, err := excelize.OpenFile(filepath.Join(productsDir, MasterXLSXName))
	require.NoError(t, err)
	defer xlsx.Close()

	title, err := xlsx.GetCellValue("Listings", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Apple Pie | Digital Recipe Download", title)
}

func TestExportMasterListingEmpty(t *testing.T) {
	w := NewWriter(t.TempDir())

	count, err := w.ExportMasterListing()
	require.NoError(t, err)
	assert.Zero(t, count)

	// Master files exist with just the header.
	assert.FileExists(t, filepath.Join(w.productsDir, MasterCSVName))
	assert.FileExists(t, filepath.Join(w.productsDir, MasterXLSXName))
}

func TestExportMasterListingMissingDir(t *testing.T) {
	w := NewWriter(filepath.Join(t.TempDir(), "does-not-exist"))
	_, err := w.ExportMasterListing()
	assert.Error(t, err)
}
