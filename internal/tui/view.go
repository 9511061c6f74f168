package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/fehbgo/internal/output"
)

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("FEHB Plan Cost Rankings"))
	b.WriteString("\n\n")

	if len(m.results) == 0 {
		b.WriteString(ErrorStyle.Render("No plans were successfully analyzed."))
		b.WriteString("\n\n")
		b.WriteString(StatusBarStyle.Render("q: quit"))
		return b.String()
	}

	if m.showDetail {
		b.WriteString(m.detailView())
	} else {
		b.WriteString(BorderStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(StatusBarStyle.Render("up/down: navigate - enter: breakdown - q: quit"))
	return b.String()
}

// detailView renders the per-service cost breakdown for the selected plan
func (m Model) detailView() string {
	r := m.selected()
	if r == nil {
		return ""
	}

	var b strings.Builder

	name := r.PlanName
	if r.PlanCode != "" {
		name = fmt.Sprintf("%s (%s)", name, r.PlanCode)
	}
	b.WriteString(TitleStyle.Render(fmt.Sprintf("#%d  %s", r.Rank, name)))
	b.WriteString("\n\n")

	line := func(label string, value string) {
		b.WriteString(DetailLabelStyle.Render(label))
		b.WriteString(DetailValueStyle.Render(value))
		b.WriteString("\n")
	}

	totalStyle := DetailValueStyle
	if r.Rank == 1 {
		totalStyle = BestValueStyle
	}
	b.WriteString(DetailLabelStyle.Render("Total Annual Cost"))
	b.WriteString(totalStyle.Render(output.FormatCurrency(r.TotalAnnualCost)))
	b.WriteString("\n")

	line("Annual Premium", output.FormatCurrency(r.PremiumCost))
	line("Medical/Drug Spend", output.FormatCurrency(r.MedicalDrugSpend))
	line("Variable Cost (Raw)", output.FormatCurrency(r.VariableCostRaw))
	line("Deductible Paid", output.FormatCurrency(r.DeductiblePaid))
	if r.OOPMax != nil {
		line("OOP Maximum", output.FormatCurrency(*r.OOPMax))
	} else {
		line("OOP Maximum", "uncapped")
	}

	if r.UsageBreakdown != nil && r.UsageBreakdown.Len() > 0 {
		b.WriteString("\n")
		b.WriteString(DetailLabelStyle.Render("Service Costs"))
		b.WriteString("\n")
		for _, key := range r.UsageBreakdown.Keys() {
			amount, _ := r.UsageBreakdown.Get(key)
			line("  "+key, output.FormatCurrency(amount))
		}
	}

	return BorderStyle.Width(lipgloss.Width(b.String()) + 4).Render(b.String())
}
