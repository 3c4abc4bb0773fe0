package product

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"
)

// Master export file names, written to the products directory root.
const (
	MasterCSVName  = "master_listing.csv"
	MasterXLSXName = "master_listing.xlsx"
)

// ExportMasterListing merges every per-product listing.csv under productsDir
// into master_listing.csv and master_listing.xlsx. Product folders without a
// listing.csv are skipped. Returns the number of listings exported.
func (w *Writer) ExportMasterListing() (int, error) {
	entries, err := os.ReadDir(w.productsDir)
	if err != nil {
		return 0, fmt.Errorf("product: reading products directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var rows [][]string
	for _, name := range names {
		path := filepath.Join(w.productsDir, name, "listing.csv")
		row, err := readListingRow(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			w.log.Warn().Err(err).Str("product", name).Msg("Skipping unreadable listing.csv")
			continue
		}
		rows = append(rows, row)
	}

	if err := w.writeMasterCSV(rows); err != nil {
		return 0, err
	}
	if err := w.writeMasterXLSX(rows); err != nil {
		return 0, err
	}

	w.log.Info().Int("listings", len(rows)).Msg("Master listing exported")
	return len(rows), nil
}

// readListingRow returns the first data row of a per-product listing.csv.
func readListingRow(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s has no data row", path)
	}
	return records[1], nil
}

func (w *Writer) writeMasterCSV(rows [][]string) error {
	f, err := os.Create(filepath.Join(w.productsDir, MasterCSVName))
	if err != nil {
		return fmt.Errorf("product: creating %s: %w", MasterCSVName, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(listingColumns); err != nil {
		return fmt.Errorf("product: writing %s: %w", MasterCSVName, err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("product: writing %s: %w", MasterCSVName, err)
	}
	return nil
}

func (w *Writer) writeMasterXLSX(rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Listings"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("product: creating sheet: %w", err)
		}
	}
	f.DeleteSheet("Sheet1")

	for i, h := range listingColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+2)
			_ = f.SetCellValue(sheet, cell, value)
		}
	}

	if err := f.SaveAs(filepath.Join(w.productsDir, MasterXLSXName)); err != nil {
		return fmt.Errorf("product: writing %s: %w", MasterXLSXName, err)
	}
	return nil
}
