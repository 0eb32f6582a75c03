// internal/launches/dataset.go
// Package launches loads the SpaceX launch records table and provides the
// filter and aggregate operations the dashboard charts are built from.
package launches

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Column headers read from the launch records file.
const (
	ColumnSite             = "Launch Site"
	ColumnPayloadMass      = "Payload Mass (kg)"
	ColumnClass            = "class"
	ColumnFlightNumber     = "Flight Number"
	ColumnBoosterVersion   = "Booster Version"
	ColumnBoosterCategory  = "Booster Version Category"
	DefaultDataFile        = "spacex_launch_dash.csv"
	requiredColumnsMessage = ColumnSite + ", " + ColumnPayloadMass + ", " + ColumnClass
)

var (
	// ErrMissingColumn reports that a required column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")
	// ErrMalformedRow reports a row whose values cannot be interpreted.
	ErrMalformedRow = errors.New("malformed row")
	// ErrNoRecords reports a file with a header but no data rows.
	ErrNoRecords = errors.New("no launch records")
)

// DataLoadError is returned when the launch records file cannot be loaded.
type DataLoadError struct {
	Path string
	Line int
	Err  error
}

func (e *DataLoadError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("load %s: line %d: %v", e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// Record is a single launch row.
type Record struct {
	Site            string  `json:"launch_site" yaml:"launch_site"`
	PayloadMassKg   float64 `json:"payload_mass_kg" yaml:"payload_mass_kg"`
	Class           int     `json:"class" yaml:"class"`
	FlightNumber    int     `json:"flight_number,omitempty" yaml:"flight_number,omitempty"`
	BoosterVersion  string  `json:"booster_version,omitempty" yaml:"booster_version,omitempty"`
	BoosterCategory string  `json:"booster_category,omitempty" yaml:"booster_category,omitempty"`
}

// Dataset is the immutable table of launch records loaded at startup.
type Dataset struct {
	path       string
	records    []Record
	MinPayload float64
	MaxPayload float64
}

// NewDataset builds a Dataset from records already in memory.
func NewDataset(records []Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	ds := &Dataset{records: append([]Record(nil), records...)}
	ds.computeBounds()
	return ds, nil
}

// Path returns the file the dataset was read from, if any.
func (d *Dataset) Path() string { return d.path }

// Len returns the number of records.
func (d *Dataset) Len() int { return len(d.records) }

// Records returns a copy of the records in file order.
func (d *Dataset) Records() []Record {
	return append([]Record(nil), d.records...)
}

// Sites returns the distinct launch sites present, sorted by name.
func (d *Dataset) Sites() []string {
	seen := make(map[string]struct{})
	var sites []string
	for _, r := range d.records {
		if _, ok := seen[r.Site]; ok {
			continue
		}
		seen[r.Site] = struct{}{}
		sites = append(sites, r.Site)
	}
	sort.Strings(sites)
	return sites
}

// HasBoosterCategories reports whether any record carries a booster category.
func (d *Dataset) HasBoosterCategories() bool {
	for _, r := range d.records {
		if r.BoosterCategory != "" {
			return true
		}
	}
	return false
}

func (d *Dataset) computeBounds() {
	d.MinPayload = math.Inf(1)
	d.MaxPayload = math.Inf(-1)
	for _, r := range d.records {
		d.MinPayload = math.Min(d.MinPayload, r.PayloadMassKg)
		d.MaxPayload = math.Max(d.MaxPayload, r.PayloadMassKg)
	}
}

// Load reads the launch records file at path.
func Load(path string) (*Dataset, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultDataFile
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, &DataLoadError{Path: path, Err: err}
	}
	defer file.Close()
	return Read(file, path)
}

// Read parses launch records from r. name is used in error messages.
func Read(r io.Reader, name string) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &DataLoadError{Path: name, Err: ErrNoRecords}
		}
		return nil, &DataLoadError{Path: name, Err: err}
	}
	cols, err := indexColumns(header)
	if err != nil {
		return nil, &DataLoadError{Path: name, Line: 1, Err: err}
	}

	var records []Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &DataLoadError{Path: name, Err: err}
		}
		line, _ := reader.FieldPos(0)
		if blankRow(row) {
			continue
		}
		rec, err := cols.parse(row)
		if err != nil {
			return nil, &DataLoadError{Path: name, Line: line, Err: err}
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, &DataLoadError{Path: name, Err: ErrNoRecords}
	}
	ds := &Dataset{path: name, records: records}
	ds.computeBounds()
	return ds, nil
}

type columnIndex struct {
	site, payload, class             int
	flight, booster, boosterCategory int
}

func indexColumns(header []string) (columnIndex, error) {
	idx := columnIndex{site: -1, payload: -1, class: -1, flight: -1, booster: -1, boosterCategory: -1}
	for i, h := range header {
		switch strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")) {
		case ColumnSite:
			idx.site = i
		case ColumnPayloadMass:
			idx.payload = i
		case ColumnClass:
			idx.class = i
		case ColumnFlightNumber:
			idx.flight = i
		case ColumnBoosterVersion:
			idx.booster = i
		case ColumnBoosterCategory:
			idx.boosterCategory = i
		}
	}

	var missing []string
	if idx.site < 0 {
		missing = append(missing, ColumnSite)
	}
	if idx.payload < 0 {
		missing = append(missing, ColumnPayloadMass)
	}
	if idx.class < 0 {
		missing = append(missing, ColumnClass)
	}
	if len(missing) > 0 {
		return idx, fmt.Errorf("%w: %s (need %s)", ErrMissingColumn, strings.Join(missing, ", "), requiredColumnsMessage)
	}
	return idx, nil
}

func (c columnIndex) parse(row []string) (Record, error) {
	field := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	site := field(c.site)
	if site == "" {
		return Record{}, fmt.Errorf("%w: empty %q", ErrMalformedRow, ColumnSite)
	}
	mass, err := strconv.ParseFloat(field(c.payload), 64)
	if err != nil || math.IsNaN(mass) || math.IsInf(mass, 0) {
		return Record{}, fmt.Errorf("%w: %q is not a number: %q", ErrMalformedRow, ColumnPayloadMass, field(c.payload))
	}
	if mass < 0 {
		return Record{}, fmt.Errorf("%w: negative %q: %v", ErrMalformedRow, ColumnPayloadMass, mass)
	}
	class, err := parseClass(field(c.class))
	if err != nil {
		return Record{}, err
	}

	rec := Record{
		Site:            site,
		PayloadMassKg:   mass,
		Class:           class,
		BoosterVersion:  field(c.booster),
		BoosterCategory: field(c.boosterCategory),
	}
	if raw := field(c.flight); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Record{}, fmt.Errorf("%w: %q is not an integer: %q", ErrMalformedRow, ColumnFlightNumber, raw)
		}
		rec.FlightNumber = n
	}
	return rec, nil
}

// parseClass accepts 0/1 and their float spellings ("1.0") written by pandas.
func parseClass(raw string) (int, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || (v != 0 && v != 1) {
		return 0, fmt.Errorf("%w: %q must be 0 or 1, got %q", ErrMalformedRow, ColumnClass, raw)
	}
	return int(v), nil
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
