package dataset

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"interview-coach-go/internal/types"
)

var (
	ErrNoSheets = errors.New("dataset: workbook has no sheets")
	ErrNoRows   = errors.New("dataset: no data rows")
)

// columns holds detected header positions; -1 when absent.
type columns struct {
	id, question, transcript, duration, url int
}

// detectColumns maps header cells to fields by keyword. The first match wins.
func detectColumns(header []string) columns {
	c := columns{-1, -1, -1, -1, -1}
	for i, h := range header {
		l := strings.ToLower(strings.TrimSpace(h))
		switch {
		case c.url == -1 && (strings.Contains(l, "url") || strings.Contains(l, "link")):
			c.url = i
		case c.transcript == -1 && (strings.Contains(l, "transcript") || strings.Contains(l, "answer") || strings.Contains(l, "text")):
			c.transcript = i
		case c.question == -1 && (strings.Contains(l, "question") || strings.Contains(l, "prompt")):
			c.question = i
		case c.duration == -1 && (strings.Contains(l, "duration") || strings.Contains(l, "seconds")):
			c.duration = i
		case c.id == -1 && (l == "id" || strings.Contains(l, "session") || strings.HasSuffix(l, " id")):
			c.id = i
		}
	}
	return c
}

func cell(r []string, idx int) string {
	if idx < 0 || idx >= len(r) {
		return ""
	}
	return strings.TrimSpace(r[idx])
}

// Load reads sessions from the first sheet of the workbook at path.
func Load(path string) ([]types.Session, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()
	return load(f)
}

// Read is Load for an uploaded workbook.
func Read(r io.Reader) ([]types.Session, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()
	return load(f)
}

// load parses the first sheet. Headers are detected by keyword; without a
// transcript or url header the first column is taken as the transcript.
// Rows with neither a transcript nor a url are skipped, and rows without an
// id get a generated one.
func load(f *excelize.File) ([]types.Session, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, ErrNoRows
	}

	cols := detectColumns(rows[0])
	if cols.transcript == -1 && cols.url == -1 {
		cols.transcript = 0
	}

	var out []types.Session
	for i, r := range rows[1:] {
		s := types.Session{
			ID:            cell(r, cols.id),
			Question:      cell(r, cols.question),
			Transcript:    cell(r, cols.transcript),
			TranscriptURL: cell(r, cols.url),
		}
		if s.Transcript == "" && s.TranscriptURL == "" {
			continue
		}
		if d := cell(r, cols.duration); d != "" {
			v, err := strconv.ParseFloat(d, 64)
			if err != nil {
				return nil, fmt.Errorf("row %d: duration %q: %w", i+2, d, err)
			}
			s.Duration = v
		}
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		return nil, ErrNoRows
	}
	return out, nil
}
