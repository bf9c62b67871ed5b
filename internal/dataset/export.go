package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"

	"github.com/parisfoot/idfplayers/internal/domain/model"
)

// Output file names. All three hold the same logical table.
const (
	CSVName     = "idf_players.csv"
	ParquetName = "idf_players.parquet"
	JSONLName   = "idf_players.jsonl"
)

// listSeparator joins list fields in the CSV rendition. Country labels never
// contain it.
const listSeparator = "; "

// Row is the flat export schema shared by every output format.
type Row struct {
	WikidataID        string   `parquet:"wikidata_id" json:"wikidata_id"`
	Name              string   `parquet:"name" json:"name"`
	BirthDate         string   `parquet:"birth_date,optional" json:"birth_date"`
	BirthYear         int      `parquet:"birth_year,optional" json:"birth_year"`
	BirthCity         string   `parquet:"birth_city,optional" json:"birth_city"`
	BirthDepartment   string   `parquet:"birth_department,optional" json:"birth_department"`
	Nationalities     []string `parquet:"nationalities,list" json:"nationalities"`
	IsDualNational    bool     `parquet:"is_dual_national" json:"is_dual_national"`
	DiasporaRegion    string   `parquet:"diaspora_region,optional" json:"diaspora_region"`
	DiasporaCountries []string `parquet:"diaspora_countries,list" json:"diaspora_countries"`
}

func toRow(p model.Player) Row {
	return Row{
		WikidataID:        p.WikidataID,
		Name:              p.Name,
		BirthDate:         p.BirthDate,
		BirthYear:         p.BirthYear,
		BirthCity:         p.BirthplaceLabel,
		BirthDepartment:   p.BirthDepartment,
		Nationalities:     p.Nationalities,
		IsDualNational:    p.IsDualNational,
		DiasporaRegion:    p.DiasporaRegion,
		DiasporaCountries: p.DiasporaCountries,
	}
}

// csvHeader matches the Row field order.
var csvHeader = []string{
	"wikidata_id", "name", "birth_date", "birth_year", "birth_city",
	"birth_department", "nationalities", "is_dual_national",
	"diaspora_region", "diaspora_countries",
}

// Export writes the collection to dir in all three formats. Any write failure
// is fatal: downstream consumers expect the formats to be complete and
// mutually consistent, so a partial export must not look like a finished one.
func (a *Assembler) Export(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}

	rows := make([]Row, 0, len(a.players))
	for _, p := range a.players {
		rows = append(rows, toRow(p))
	}

	if err := writeCSV(filepath.Join(dir, CSVName), rows); err != nil {
		return err
	}
	if err := writeParquet(filepath.Join(dir, ParquetName), rows); err != nil {
		return err
	}
	if err := writeJSONL(filepath.Join(dir, JSONLName), rows); err != nil {
		return err
	}
	return nil
}

func writeCSV(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	for _, r := range rows {
		record := []string{
			r.WikidataID,
			r.Name,
			r.BirthDate,
			formatYear(r.BirthYear),
			r.BirthCity,
			r.BirthDepartment,
			strings.Join(r.Nationalities, listSeparator),
			strconv.FormatBool(r.IsDualNational),
			r.DiasporaRegion,
			strings.Join(r.DiasporaCountries, listSeparator),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("%w: %v", ErrExport, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	return nil
}

func formatYear(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}

func writeParquet(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	defer f.Close()

	w := parquet.NewGenericWriter[Row](f)
	if len(rows) > 0 {
		if _, err := w.Write(rows); err != nil {
			w.Close()
			return fmt.Errorf("%w: %v", ErrExport, err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	return nil
}

func writeJSONL(path string, rows []Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExport, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("%w: %v", ErrExport, err)
		}
	}
	return nil
}
