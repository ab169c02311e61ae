package tui

import (
	"fmt"
	"strings"
)

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render(TextTitle))
	b.WriteString("\n")

	b.WriteString(m.search.View())
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	b.WriteString(m.renderStatusLine())
	b.WriteString("\n")

	if m.status.LoadErr != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("%s: %v", TextLoadFailed, m.status.LoadErr)))
		b.WriteString("\n")
	}
	if m.notice != "" {
		if m.noticeOK {
			b.WriteString(StatusStyle.Render(m.notice))
		} else {
			b.WriteString(ErrorStyle.Render(m.notice))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case len(m.items) > 0:
		end := min(len(m.items), m.offset+m.pageSize())
		for _, item := range m.items[m.offset:end] {
			b.WriteString(renderCard(item, m.width))
			b.WriteString("\n")
		}
	case !m.status.Loaded && m.status.LoadErr == nil:
		b.WriteString(StatusStyle.Render(TextLoading))
		b.WriteString("\n")
	default:
		b.WriteString(InfoStyle.Render(TextEmpty))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.search.Focused() {
		b.WriteString(InfoStyle.Render(TextFooterSearch))
	} else {
		b.WriteString(InfoStyle.Render(TextFooterBrowse))
	}
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(m.selectors))
	for i, sel := range m.selectors {
		if i == m.typeIdx {
			tabs[i] = ActiveTabStyle.Render(sel)
		} else {
			tabs[i] = TabStyle.Render(sel)
		}
	}
	return strings.Join(tabs, " ")
}

func (m Model) renderStatusLine() string {
	stream := InfoStyle.Render(TextStreamOffline)
	if m.status.Live {
		stream = StatusStyle.Render(TextStreamLive)
	}

	total := m.feed.Store().Len()
	counts := fmt.Sprintf("%d shown of %d", len(m.items), total)
	if len(m.items) > m.pageSize() {
		counts += fmt.Sprintf(" (from #%d)", m.offset+1)
	}
	return stream + "  " + InfoStyle.Render(counts)
}
