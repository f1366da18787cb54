package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ProfileSink receives parsed profile rows
type ProfileSink interface {
	AddProfile(id, name string, age int, gender string) error
}

// FriendshipSink receives parsed friendship rows
type FriendshipSink interface {
	AddFriendship(a, b string, quality int) error
}

// LineError is a problem with one input line. Loading continues past it.
type LineError struct {
	Line int
	Err  error
}

func (e LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e LineError) Unwrap() error {
	return e.Err
}

// Report summarizes a load
type Report struct {
	Source string      `json:"source"`
	Loaded int         `json:"loaded"`
	Errors []LineError `json:"errors,omitempty"`
}

// Failed returns the number of rejected lines
func (r *Report) Failed() int {
	return len(r.Errors)
}

var errTooFewColumns = errors.New("too few columns")

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	return cr
}

// isHeader reports whether the first record looks like a header row: its
// numeric column does not parse and it mentions one of the keywords.
func isHeader(record []string, numericCol int, keywords ...string) bool {
	if numericCol < len(record) {
		if _, err := strconv.Atoi(strings.TrimSpace(record[numericCol])); err == nil {
			return false
		}
	}
	line := strings.ToLower(strings.Join(record, ","))
	for _, k := range keywords {
		if strings.Contains(line, k) {
			return true
		}
	}
	return false
}

// each runs fn for every data record, skipping an optional header
func each(r io.Reader, report *Report, numericCol int, headerKeywords []string, fn func(record []string) error) error {
	cr := newReader(r)
	first := true
	for {
		record, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				report.Errors = append(report.Errors, LineError{Line: parseErr.Line, Err: parseErr.Err})
				continue
			}
			return err
		}
		if first {
			first = false
			if isHeader(record, numericCol, headerKeywords...) {
				continue
			}
		}
		line, _ := cr.FieldPos(0)
		if err := fn(record); err != nil {
			report.Errors = append(report.Errors, LineError{Line: line, Err: err})
			continue
		}
		report.Loaded++
	}
}

// LoadProfiles reads "id,name,age,gender" rows into sink. Gender is upper-cased.
func LoadProfiles(r io.Reader, sink ProfileSink) (*Report, error) {
	report := &Report{}
	err := each(r, report, 2, []string{"userid", "id"}, func(rec []string) error {
		if len(rec) < 4 {
			return fmt.Errorf("%w: want 4, got %d", errTooFewColumns, len(rec))
		}
		age, err := strconv.Atoi(strings.TrimSpace(rec[2]))
		if err != nil {
			return fmt.Errorf("invalid age %q", rec[2])
		}
		return sink.AddProfile(
			strings.TrimSpace(rec[0]),
			strings.TrimSpace(rec[1]),
			age,
			strings.ToUpper(strings.TrimSpace(rec[3])),
		)
	})
	return report, err
}

// LoadFriendships reads "idA,idB,quality" rows into sink.
func LoadFriendships(r io.Reader, sink FriendshipSink) (*Report, error) {
	report := &Report{}
	err := each(r, report, 2, []string{"userid", "quality", "calidad"}, func(rec []string) error {
		if len(rec) < 3 {
			return fmt.Errorf("%w: want 3, got %d", errTooFewColumns, len(rec))
		}
		quality, err := strconv.Atoi(strings.TrimSpace(rec[2]))
		if err != nil {
			return fmt.Errorf("invalid quality %q", rec[2])
		}
		return sink.AddFriendship(strings.TrimSpace(rec[0]), strings.TrimSpace(rec[1]), quality)
	})
	return report, err
}

// LoadProfilesFile opens path and loads it with LoadProfiles
func LoadProfilesFile(path string, sink ProfileSink) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening profiles file: %w", err)
	}
	defer f.Close()
	report, err := LoadProfiles(f, sink)
	if report != nil {
		report.Source = path
	}
	return report, err
}

// LoadFriendshipsFile opens path and loads it with LoadFriendships
func LoadFriendshipsFile(path string, sink FriendshipSink) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening connections file: %w", err)
	}
	defer f.Close()
	report, err := LoadFriendships(f, sink)
	if report != nil {
		report.Source = path
	}
	return report, err
}
