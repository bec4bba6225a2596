// Command seeddesigns converts a cable-design catalog Excel file into a SQL
// seed file for the cable_designs table.
// Usage: go run ./cmd/seeddesigns [catalog.xlsx]
// Output: db/seeds/cable_designs.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const batchSize = 200

// designRow mirrors the catalog sheet columns:
// A=design id, B=standard, C=voltage, D=conductor material,
// E=conductor class, F=csa (mm2), G=insulation material,
// H=insulation thickness (mm). Data starts at row index 1 (header row 0).
type designRow struct {
	designID            string
	standard            string
	voltage             string
	conductorMaterial   string
	conductorClass      string
	csa                 *float64
	insulationThickness *float64
	insulationMaterial  string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	xlsxPath := "cable_design_catalog.xlsx"
	if len(os.Args) > 1 {
		xlsxPath = os.Args[1]
	}
	outPath := "db/seeds/cable_designs.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	designs, err := parseCatalogSheet(f)
	if err != nil {
		return fmt.Errorf("parse catalog sheet: %w", err)
	}
	log.Printf("catalog sheet: %d designs", len(designs))

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	w := func(s string) error { _, werr := fmt.Fprintln(out, s); return werr }

	for _, line := range []string{
		"-- Cable design seed data generated from the catalog Excel file.",
		fmt.Sprintf("-- %d designs in batches of %d.", len(designs), batchSize),
		"BEGIN;",
		"",
	} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write header: %w", werr)
		}
	}

	for i := 0; i < len(designs); i += batchSize {
		end := i + batchSize
		if end > len(designs) {
			end = len(designs)
		}
		if err := writeBatch(out, designs[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	for _, line := range []string{"", "COMMIT;"} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write footer: %w", werr)
		}
	}

	log.Printf("Generated %d designs (%d batches) in %s",
		len(designs), (len(designs)+batchSize-1)/batchSize, outPath)
	return nil
}

func parseCatalogSheet(f *excelize.File) ([]designRow, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var designs []designRow
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		designID := strings.TrimSpace(cellVal(row, 0))
		if designID == "" || seen[designID] {
			continue
		}
		seen[designID] = true

		designs = append(designs, designRow{
			designID:            designID,
			standard:            strings.TrimSpace(cellVal(row, 1)),
			voltage:             strings.TrimSpace(cellVal(row, 2)),
			conductorMaterial:   strings.TrimSpace(cellVal(row, 3)),
			conductorClass:      strings.TrimSpace(cellVal(row, 4)),
			csa:                 parseNumber(cellVal(row, 5)),
			insulationMaterial:  strings.TrimSpace(cellVal(row, 6)),
			insulationThickness: parseNumber(cellVal(row, 7)),
		})
	}
	return designs, nil
}

func writeBatch(out *os.File, designs []designRow) error {
	if _, err := fmt.Fprintln(out,
		"INSERT INTO cable_designs (id, design_id, standard, voltage, conductor_material, conductor_class, csa, insulation_material, insulation_thickness) VALUES"); err != nil {
		return err
	}
	for i, d := range designs {
		sep := ","
		if i == len(designs)-1 {
			sep = ""
		}
		line := fmt.Sprintf("(gen_random_uuid(), %s, %s, %s, %s, %s, %s, %s, %s)%s",
			sqlString(d.designID),
			sqlString(d.standard),
			sqlString(d.voltage),
			sqlString(d.conductorMaterial),
			sqlString(d.conductorClass),
			sqlNumber(d.csa),
			sqlString(d.insulationMaterial),
			sqlNumber(d.insulationThickness),
			sep)
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(out, "ON CONFLICT (design_id) DO NOTHING;")
	return err
}

func cellVal(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func sqlString(s string) string {
	if s == "" {
		return "NULL"
	}
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func sqlNumber(v *float64) string {
	if v == nil {
		return "NULL"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
