// Package tui provides an interactive terminal browser for ranked plan
// results: a sortable table of every plan with a per-plan cost breakdown
// pane.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/fehbgo/internal/domain"
	"github.com/rgehrsitz/fehbgo/internal/output"
)

// Model holds the browser state: the ranked results and the table cursor
type Model struct {
	results []domain.PlanResult

	table      table.Model
	showDetail bool

	width  int
	height int
}

// NewModel creates a browser over an already-ranked result set
func NewModel(results []domain.PlanResult) Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Plan", Width: 36},
		{Title: "Code", Width: 8},
		{Title: "Total/Year", Width: 12},
		{Title: "Premium", Width: 12},
		{Title: "Med/Drug", Width: 12},
	}

	rows := make([]table.Row, 0, len(results))
	for _, r := range results {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", r.Rank),
			r.PlanName,
			r.PlanCode,
			output.FormatCurrency(r.TotalAnnualCost),
			output.FormatCurrency(r.PremiumCost),
			output.FormatCurrency(r.MedicalDrugSpend),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	return Model{
		results: results,
		table:   t,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// selected returns the result under the cursor, or nil when the set is empty
func (m Model) selected() *domain.PlanResult {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.results) {
		return nil
	}
	return &m.results[idx]
}
