package dataset

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/xuri/excelize/v2"

	"interview-coach-go/internal/aggregator"
	"interview-coach-go/internal/types"
)

const (
	sessionsSheet = "Sessions"
	summarySheet  = "Summary"
)

var sessionHeader = []interface{}{
	"ID", "Question", "Overall", "WPM", "Fillers", "Vocabulary", "Clarity", "Confidence",
	"Sentiment", "Tone", "Suggestions", "Error",
}

// WriteReport writes an xlsx workbook with one row per session and a
// Summary sheet to w.
func WriteReport(w io.Writer, results []types.SessionResult, sum aggregator.Summary) error {
	f, err := buildReport(results, sum)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// SaveReport is WriteReport to a file.
func SaveReport(path string, results []types.SessionResult, sum aggregator.Summary) error {
	f, err := buildReport(results, sum)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.SaveAs(path)
}

func buildReport(results []types.SessionResult, sum aggregator.Summary) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sessionsSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		f.Close()
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	if err := writeSessions(f, results); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSummary(f, sum); err != nil {
		f.Close()
		return nil, err
	}
	_ = f.SetRowStyle(sessionsSheet, 1, 1, bold)
	_ = f.SetColWidth(sessionsSheet, "K", "K", 80)
	_ = f.SetColWidth(summarySheet, "A", "A", 32)
	return f, nil
}

func writeSessions(f *excelize.File, results []types.SessionResult) error {
	if err := f.SetSheetRow(sessionsSheet, "A1", &sessionHeader); err != nil {
		return err
	}
	for i, r := range results {
		row := []interface{}{r.Session.ID, r.Session.Question}
		if res := r.Result; res != nil {
			tone := ""
			if res.Tone != nil {
				tone = *res.Tone
			}
			row = append(row,
				res.OverallScore,
				res.WordsPerMinute,
				res.TotalFillerCount,
				res.VocabularyRichness,
				res.ClarityScore,
				res.ConfidenceScore,
				res.SentimentLabel,
				tone,
				strings.Join(res.Suggestions, "\n"),
				"",
			)
		} else {
			row = append(row, "", "", "", "", "", "", "", "", "", r.Error)
		}
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sessionsSheet, cellName, &row); err != nil {
			return fmt.Errorf("write session %s: %w", r.Session.ID, err)
		}
	}
	return nil
}

func writeSummary(f *excelize.File, s aggregator.Summary) error {
	rows := [][]interface{}{
		{"Sessions", s.Sessions},
		{"Scored", s.Scored},
		{"Failed", s.Failed},
		{"Mean overall score", s.MeanOverall},
		{"Min overall score", s.MinOverall},
		{"Max overall score", s.MaxOverall},
		{"Mean words per minute", s.MeanWPM},
		{"Mean WPM score", s.MeanBreakdown.WPM},
		{"Mean filler score", s.MeanBreakdown.Filler},
		{"Mean vocabulary score", s.MeanBreakdown.Vocab},
		{"Mean clarity score", s.MeanBreakdown.Clarity},
		{"Mean confidence score", s.MeanBreakdown.Confidence},
	}
	for _, label := range slices.Sorted(maps.Keys(s.SentimentCounts)) {
		rows = append(rows, []interface{}{"Sentiment: " + label, s.SentimentCounts[label]})
	}
	for _, fc := range s.TopFillers {
		rows = append(rows, []interface{}{"Filler: " + fc.Word, fc.Count})
	}
	for _, q := range s.ByQuestion {
		rows = append(rows, []interface{}{"Question: " + q.Question, q.MeanOverall})
	}

	for i := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cellName, &rows[i]); err != nil {
			return err
		}
	}
	return nil
}
