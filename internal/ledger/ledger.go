package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ErrNotFound reports that no record matched a (company, timestamp) key.
var ErrNotFound = errors.New("no matching application record")

// DateLayout is the sortable timestamp format stored in the date column.
const DateLayout = "2006-01-02 15:04:05"

var header = []string{
	"company", "date", "resume_created", "ats_score",
	"changes_required", "job_description_summary", "notes",
}

// Record is one application event. ATSScore is nil when no score was
// recorded; it is stored as "N/A".
type Record struct {
	Company         string
	Date            time.Time
	ResumeCreated   bool
	ATSScore        *int
	ChangesRequired string
	JobSummary      string
	Notes           string
}

// Ledger is an append-oriented application log backed by a flat CSV file.
// Every operation re-reads the whole file; a single active writer is
// assumed (concurrent writers race with last-write-wins).
type Ledger struct {
	path   string
	logger *slog.Logger
}

// Open creates a ledger at path, writing the header row if the file does
// not exist yet.
func Open(path string, logger *slog.Logger) (*Ledger, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeAll(path, nil); err != nil {
			return nil, fmt.Errorf("initializing ledger: %w", err)
		}
		logger.Info("created new application ledger", "path", path)
	}

	return &Ledger{path: path, logger: logger}, nil
}

// Append adds one record and persists the full store.
func (l *Ledger) Append(rec Record) error {
	records, err := l.All()
	if err != nil {
		return err
	}
	records = append(records, rec)
	if err := writeAll(l.path, records); err != nil {
		return fmt.Errorf("appending record for %s: %w", rec.Company, err)
	}
	l.logger.Info("recorded application", "company", rec.Company)
	return nil
}

// All returns every record in insertion order.
func (l *Ledger) All() ([]Record, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}

	var records []Record
	for i, row := range rows {
		if i == 0 || len(row) < len(header) {
			continue // header or short row
		}
		records = append(records, fromRow(row))
	}
	return records, nil
}

// FindByCompany returns the records whose company matches name,
// case-insensitively.
func (l *Ledger) FindByCompany(name string) ([]Record, error) {
	records, err := l.All()
	if err != nil {
		return nil, err
	}
	var out []Record
	for _, rec := range records {
		if strings.EqualFold(rec.Company, name) {
			out = append(out, rec)
		}
	}
	return out, nil
}

// MostRecent returns up to n records sorted by timestamp descending.
func (l *Ledger) MostRecent(n int) ([]Record, error) {
	records, err := l.All()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date.After(records[j].Date)
	})
	if n < len(records) {
		records = records[:n]
	}
	return records, nil
}

// Stats aggregates the ledger. Score figures cover only records with a
// recorded score; every record counts toward TotalApplications.
type Stats struct {
	TotalApplications int
	ResumesCreated    int
	AverageScore      float64 // rounded to 2 decimals; 0 when no scores
	HighestScore      int
	LowestScore       int
	Companies         []string // distinct, first-appearance order
}

// Statistics computes aggregate figures over the whole ledger.
func (l *Ledger) Statistics() (Stats, error) {
	records, err := l.All()
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{TotalApplications: len(records)}
	seen := make(map[string]bool)
	var scores []int
	for _, rec := range records {
		if rec.ResumeCreated {
			stats.ResumesCreated++
		}
		if !seen[rec.Company] {
			seen[rec.Company] = true
			stats.Companies = append(stats.Companies, rec.Company)
		}
		if rec.ATSScore != nil {
			scores = append(scores, *rec.ATSScore)
		}
	}

	if len(scores) > 0 {
		sum, hi, lo := 0, scores[0], scores[0]
		for _, s := range scores {
			sum += s
			if s > hi {
				hi = s
			}
			if s < lo {
				lo = s
			}
		}
		stats.AverageScore = math.Round(float64(sum)/float64(len(scores))*100) / 100
		stats.HighestScore = hi
		stats.LowestScore = lo
	}

	return stats, nil
}

// Update overwrites the named fields of the record keyed by (company, date).
// Field names are the CSV column names. Returns ErrNotFound when no record
// matches.
func (l *Ledger) Update(company string, date time.Time, updates map[string]string) error {
	records, err := l.All()
	if err != nil {
		return err
	}

	found := false
	for i := range records {
		if records[i].Company != company || !records[i].Date.Equal(date) {
			continue
		}
		found = true
		applyUpdates(&records[i], updates)
	}
	if !found {
		return fmt.Errorf("%w: %s at %s", ErrNotFound, company, date.Format(DateLayout))
	}

	if err := writeAll(l.path, records); err != nil {
		return fmt.Errorf("updating record for %s: %w", company, err)
	}
	l.logger.Info("updated application record", "company", company)
	return nil
}

// Delete removes the record(s) keyed by (company, date). Deleting a key
// that matches nothing still persists (and succeeds).
func (l *Ledger) Delete(company string, date time.Time) error {
	records, err := l.All()
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, rec := range records {
		if rec.Company == company && rec.Date.Equal(date) {
			continue
		}
		kept = append(kept, rec)
	}

	if err := writeAll(l.path, kept); err != nil {
		return fmt.Errorf("deleting record for %s: %w", company, err)
	}
	l.logger.Info("deleted application record", "company", company, "removed", len(records)-len(kept))
	return nil
}

func applyUpdates(rec *Record, updates map[string]string) {
	for field, value := range updates {
		switch field {
		case "company":
			rec.Company = value
		case "resume_created":
			rec.ResumeCreated = strings.EqualFold(value, "yes") || strings.EqualFold(value, "true")
		case "ats_score":
			if n, err := strconv.Atoi(value); err == nil {
				rec.ATSScore = &n
			} else {
				rec.ATSScore = nil
			}
		case "changes_required":
			rec.ChangesRequired = value
		case "job_description_summary":
			rec.JobSummary = value
		case "notes":
			rec.Notes = value
		}
	}
}

func fromRow(row []string) Record {
	rec := Record{
		Company:         row[0],
		ResumeCreated:   strings.EqualFold(row[2], "yes"),
		ChangesRequired: row[4],
		JobSummary:      row[5],
		Notes:           row[6],
	}
	if t, err := time.Parse(DateLayout, row[1]); err == nil {
		rec.Date = t
	}
	if n, err := strconv.Atoi(strings.TrimSpace(row[3])); err == nil {
		rec.ATSScore = &n
	}
	return rec
}

func toRow(rec Record) []string {
	yesNo := "No"
	if rec.ResumeCreated {
		yesNo = "Yes"
	}
	scoreField := "N/A"
	if rec.ATSScore != nil {
		scoreField = strconv.Itoa(*rec.ATSScore)
	}
	changes := rec.ChangesRequired
	if changes == "" {
		changes = "None specified"
	}
	summary := rec.JobSummary
	if summary == "" {
		summary = "N/A"
	}
	return []string{
		rec.Company,
		rec.Date.Format(DateLayout),
		yesNo,
		scoreField,
		changes,
		summary,
		rec.Notes,
	}
}

// writeAll rewrites the whole backing file: header plus one row per record.
func writeAll(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("opening ledger for write: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range records {
		if err := w.Write(toRow(rec)); err != nil {
			f.Close()
			return fmt.Errorf("writing row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing ledger: %w", err)
	}
	return f.Close()
}
