package tui

import (
	"fmt"
	"strings"

	"dealfeed/types"

	"github.com/charmbracelet/lipgloss"
)

const (
	cardFirms    = 2
	cardEntities = 4
	summaryLimit = 280
)

// renderCard lays out one deal
func renderCard(item types.DealItem, width int) string {
	inner := max(20, width-4)
	var b strings.Builder

	var head []string
	if item.EventType != "" && item.EventType != types.EventOther {
		head = append(head, EventBadgeStyle.Render(string(item.EventType)))
	}
	head = append(head, lipgloss.NewStyle().Bold(true).Render(item.Title))
	b.WriteString(strings.Join(head, " "))
	b.WriteString("\n")

	var meta []string
	if firms := firstN(item.Firms, cardFirms); len(firms) > 0 {
		meta = append(meta, strings.Join(firms, " · "))
	}
	if len(item.RelationshipBadges) > 0 {
		meta = append(meta, RelationshipStyle.Render("★ "+item.RelationshipBadges[0]))
	}
	if len(meta) > 0 {
		b.WriteString(strings.Join(meta, "  "))
		b.WriteString("\n")
	}

	if item.Summary != "" {
		b.WriteString(lipgloss.NewStyle().Width(inner).Render(truncate(item.Summary, summaryLimit)))
		b.WriteString("\n")
	}

	if ents := firstN(item.Entities, cardEntities); len(ents) > 0 {
		tags := make([]string, len(ents))
		for i, e := range ents {
			tags[i] = "#" + e
		}
		b.WriteString(InfoStyle.Render(strings.Join(tags, " ")))
		b.WriteString("\n")
	}

	b.WriteString(PillStyle.Render(fmt.Sprintf("Relevance: %.0f%%", item.Score)))
	if item.Link != "" {
		b.WriteString(" ")
		b.WriteString(InfoStyle.Render(item.Link))
	}

	return CardStyle.Width(inner).Render(b.String())
}

func firstN(values []string, n int) []string {
	if len(values) > n {
		return values[:n]
	}
	return values
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}
