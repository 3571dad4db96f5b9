// Package export renders staff review artifacts as Excel workbooks.
package export

import (
	"fmt"
	"strings"

	"melio/internal/model"

	"github.com/xuri/excelize/v2"
)

const (
	alertsSheet = "Alertes"
	statsSheet  = "Statistiques"
)

// AlertWorkbook builds a two-sheet workbook: one row per alert, plus the
// aggregate counters. The caller owns Close.
func AlertWorkbook(alerts []model.Alert, stats model.AlertStats) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", alertsSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := []any{"Date", "Élève", "Niveau", "Message", "Mots-clés", "Contexte", "École", "Résolu"}
	if err := f.SetSheetRow(alertsSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	for i, a := range alerts {
		resolved := "non"
		if a.Resolved {
			resolved = "oui"
		}
		row := []any{
			a.Timestamp.Format("2006-01-02 15:04"),
			a.StudentName,
			a.RiskLevel,
			a.Message,
			strings.Join(a.Keywords, ", "),
			a.Context,
			a.SchoolCode,
			resolved,
		}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(alertsSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write alert row: %w", err)
		}
	}

	if _, err := f.NewSheet(statsSheet); err != nil {
		return nil, fmt.Errorf("add stats sheet: %w", err)
	}
	rows := [][]any{
		{"Total", stats.Total},
		{"Résolues", stats.Resolved},
		{"Non résolues", stats.Unresolved},
	}
	for _, level := range []string{"critical", "high", "medium", "low"} {
		if n, ok := stats.ByRiskLevel[level]; ok {
			rows = append(rows, []any{"Niveau " + level, n})
		}
	}
	for i := range rows {
		cell := fmt.Sprintf("A%d", i+1)
		if err := f.SetSheetRow(statsSheet, cell, &rows[i]); err != nil {
			return nil, fmt.Errorf("write stats row: %w", err)
		}
	}

	return f, nil
}
