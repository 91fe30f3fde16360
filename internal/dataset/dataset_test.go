package dataset

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"interview-coach-go/internal/aggregator"
	"interview-coach-go/internal/types"
)

// writeWorkbook saves rows to the first sheet of a new workbook in a temp dir.
func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i := range rows {
		cellName, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow("Sheet1", cellName, &rows[i]); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "sessions.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_DetectsColumns(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Session ID", "Question", "Answer Transcript", "Duration (seconds)"},
		{"s-1", "Tell me about yourself", "I build data pipelines.", 12.5},
		{"", "Why us?", "Because of the mission.", ""},
		{"s-3", "Skipped", "", ""},
	})

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("sessions = %d, want 2", len(got))
	}
	want := types.Session{ID: "s-1", Question: "Tell me about yourself", Transcript: "I build data pipelines.", Duration: 12.5}
	if got[0] != want {
		t.Errorf("got %+v", got[0])
	}
	if got[1].ID == "" || len(got[1].ID) != 36 {
		t.Errorf("generated id = %q", got[1].ID)
	}
	if got[1].Duration != 0 {
		t.Errorf("duration = %v", got[1].Duration)
	}
}

func TestLoad_URLColumn(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"id", "transcript_url"},
		{"a", "https://example.com/a.txt"},
	})
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got[0].TranscriptURL != "https://example.com/a.txt" || got[0].Transcript != "" {
		t.Errorf("got %+v", got[0])
	}
}

func TestLoad_FirstColumnFallback(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Notes"},
		{"Hello there."},
	})
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got[0].Transcript != "Hello there." {
		t.Errorf("got %+v", got[0])
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.xlsx")); err == nil {
		t.Error("expected error for missing file")
	}
	headerOnly := writeWorkbook(t, [][]interface{}{{"id", "transcript"}})
	if _, err := Load(headerOnly); !errors.Is(err, ErrNoRows) {
		t.Errorf("header only: err = %v", err)
	}
	badDuration := writeWorkbook(t, [][]interface{}{
		{"transcript", "duration"},
		{"hi", "soon"},
	})
	if _, err := Load(badDuration); err == nil {
		t.Error("expected error for bad duration")
	}
}

func TestWriteReport_RoundTrip(t *testing.T) {
	tone := "calm"
	results := []types.SessionResult{
		{
			Session: types.Session{ID: "s-1", Question: "Q1"},
			Result: &types.ScoredResult{
				TranscriptMetrics: types.TranscriptMetrics{WordsPerMinute: 120},
				OverallScore:      77,
				SentimentLabel:    "Positive",
				Suggestions:       []string{"a", "b"},
				Tone:              &tone,
			},
		},
		{Session: types.Session{ID: "s-2"}, Error: "transcript required"},
	}
	sum := aggregator.Aggregate(results)

	var buf bytes.Buffer
	if err := WriteReport(&buf, results, sum); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	if sheets := f.GetSheetList(); len(sheets) != 2 || sheets[0] != sessionsSheet || sheets[1] != summarySheet {
		t.Fatalf("sheets = %v", sheets)
	}
	rows, err := f.GetRows(sessionsSheet)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[1][0] != "s-1" || rows[1][2] != "77" || rows[1][8] != "Positive" || rows[1][9] != "calm" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][0] != "s-2" || rows[2][len(rows[2])-1] != "transcript required" {
		t.Errorf("row 2 = %v", rows[2])
	}

	summary, err := f.GetRows(summarySheet)
	if err != nil {
		t.Fatal(err)
	}
	if summary[0][0] != "Sessions" || summary[0][1] != "2" || summary[2][1] != "1" {
		t.Errorf("summary = %v", summary[:3])
	}
}

func TestRead_Reader(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"transcript"},
		{"One answer."},
	})
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	f.Close()

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 1 || got[0].Transcript != "One answer." {
		t.Errorf("got %+v", got)
	}
}
