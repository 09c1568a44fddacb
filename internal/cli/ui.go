package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mandi-mitra/internal/negotiation"
	"mandi-mitra/internal/pricing"
)

// UI styles
var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#3B82F6"))

	panelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#10B981")).
		Padding(0, 2).
		Width(64)

	labelStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280")).
		Width(18)

	priceStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#10B981"))

	mutedStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#9CA3AF")).
		Italic(true)
)

func row(label, value string) string {
	return labelStyle.Render(label) + value
}

func rupees(v float64) string {
	return fmt.Sprintf("₹%.0f/kg", v)
}

func renderQuote(commodity, location string, quantity int, q pricing.Quote, s pricing.Suggestion) string {
	lines := []string{
		titleStyle.Render(fmt.Sprintf("%s @ %s, %d kg", commodity, location, quantity)),
		row("Market range", fmt.Sprintf("%s - %s", rupees(q.MinPrice), rupees(q.MaxPrice))),
		row("Average", rupees(q.AvgPrice)),
		row("Trend", string(q.Trend)),
		row("Suggested price", priceStyle.Render(rupees(s.SuggestedPrice))),
		"",
	}
	for _, r := range s.Rationale {
		lines = append(lines, "• "+r)
	}
	lines = append(lines, "", mutedStyle.Render("Source: "+q.Source.Label))
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func renderAssessment(in negotiation.Input, res negotiation.Result) string {
	badge := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#111827")).
		Background(lipgloss.Color(res.Color)).
		Padding(0, 1).
		Render(res.Label)

	lines := []string{
		titleStyle.Render(fmt.Sprintf("Negotiating as %s", in.Role)),
		row("Asking", rupees(in.AskingPrice)),
		row("Offer", rupees(in.Offer)),
		row("Market", rupees(res.MarketPrice)),
		row("Fairness", fmt.Sprintf("%s %s", badge, res.Assessment)),
		row("Counter-offer", priceStyle.Render(rupees(res.CounterOffer))),
		"",
		headerStyle.Render("Say:") + " " + res.Phrase,
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}
