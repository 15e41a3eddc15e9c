package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ogurasousui/employee-directory/internal/core/directory"
)

const cardsPerRow = 3

func (m Model) View() string {
	var b strings.Builder
	if m.screen == screenEditor {
		b.WriteString(m.viewEditor())
	} else {
		b.WriteString(m.viewDirectory())
	}

	if n, ok := m.orch.Notification(); ok {
		b.WriteString("\n\n")
		b.WriteString(renderNotification(n))
	}
	return b.String()
}

func renderNotification(n directory.Notification) string {
	if n.Kind == directory.KindError {
		return styleFailure.Render(n.Message)
	}
	return styleSuccess.Render(n.Message)
}

func (m Model) viewDirectory() string {
	snap := m.orch.Snapshot()

	var b strings.Builder
	b.WriteString(styleTitle.Render("Employee Directory"))
	b.WriteString("\n\n")

	search := m.search.View()
	if !m.searching && m.search.Value() == "" {
		search = styleMuted.Render("/ to search")
	}
	dept := snap.Query.Department
	if dept == directory.DepartmentAll {
		dept = "All departments"
	}
	b.WriteString(headerLine(
		"Search: "+search,
		"Department: "+dept,
		"Sort: "+string(snap.Query.SortKey),
		"View: "+string(snap.Query.ViewMode),
	))
	b.WriteString("\n")
	b.WriteString(styleMuted.Render(fmt.Sprintf("Showing %d of %d employees", len(snap.View), snap.Total)))
	b.WriteString("\n\n")

	switch {
	case snap.Loading && !snap.Loaded:
		b.WriteString("Loading employees...")
	case len(snap.View) == 0:
		b.WriteString(styleMuted.Render("No employees found"))
	case snap.Query.ViewMode == directory.ViewList:
		b.WriteString(m.renderList(snap.View))
	default:
		b.WriteString(m.renderGrid(snap.View))
	}

	if modal := renderModal(snap.Modal); modal != "" {
		b.WriteString("\n\n")
		b.WriteString(modal)
	}

	b.WriteString("\n\n")
	b.WriteString(styleMuted.Render("a add · enter view · e edit · D delete · / search · d department · s sort · v view · x export · r reload · q quit"))
	return b.String()
}

func (m Model) renderGrid(view []directory.Record) string {
	var rows []string
	for start := 0; start < len(view); start += cardsPerRow {
		end := start + cardsPerRow
		if end > len(view) {
			end = len(view)
		}
		cards := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			r := view[i]
			style := styleCard
			if i == m.cursor {
				style = styleCardSelected
			}
			cards = append(cards, style.Render(strings.Join([]string{
				lipgloss.NewStyle().Bold(true).Render(r.Name),
				r.Position,
				styleMuted.Render(r.Department.String()),
				r.Email,
				r.Phone,
			}, "\n")))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) renderList(view []directory.Record) string {
	lines := make([]string, 0, len(view))
	for i, r := range view {
		line := fmt.Sprintf("%-24s %-12s %-20s %-28s %s", r.Name, r.Department, r.Position, r.Email, r.Phone)
		if i == m.cursor {
			line = styleRowSelected.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func renderModal(s directory.ModalState) string {
	r := s.Record
	switch s.Kind {
	case directory.ModalViewing:
		return styleModal.Render(strings.Join([]string{
			styleTitle.Render(r.Name),
			"",
			styleLabel.Render("Email") + r.Email,
			styleLabel.Render("Phone") + r.Phone,
			styleLabel.Render("Department") + r.Department.String(),
			styleLabel.Render("Position") + r.Position,
			"",
			styleMuted.Render("e edit · D delete · esc close"),
		}, "\n"))
	case directory.ModalConfirmingDelete:
		return styleModal.Render(strings.Join([]string{
			styleTitle.Render("Delete employee"),
			"",
			fmt.Sprintf("Are you sure you want to delete %s?", r.Name),
			"",
			styleMuted.Render("y confirm · n cancel"),
		}, "\n"))
	default:
		return ""
	}
}

func (m Model) viewEditor() string {
	e := m.editor
	if e == nil {
		return ""
	}

	title := "Add Employee"
	if e.Mode == directory.EditorEdit {
		title = "Edit Employee"
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n\n")

	switch e.Status {
	case directory.EditorLoading:
		b.WriteString("Loading employee...")
		return b.String()
	case directory.EditorLoadFailed:
		b.WriteString(styleFieldErr.Render(directory.MsgFetchOneFailed))
		b.WriteString("\n\n")
		b.WriteString(styleMuted.Render("esc back"))
		return b.String()
	}

	for i, f := range formFields {
		marker := "  "
		if i == m.focus {
			marker = styleRowSelected.Render("> ")
		}

		value := ""
		if f == directory.FieldDepartment {
			value = "< " + e.Draft.Department.String() + " >"
		} else if ti, ok := m.inputs[f]; ok {
			value = ti.View()
		}

		b.WriteString(marker + styleLabel.Render(fieldLabels[f]) + value)
		b.WriteString("\n")
		if msg, ok := e.Errors[f]; ok {
			b.WriteString("  " + styleFieldErr.Render(msg))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	switch e.Status {
	case directory.EditorSubmitting:
		b.WriteString("Saving...")
	case directory.EditorSaved:
		b.WriteString(styleMuted.Render("Saved. Returning to the directory..."))
	default:
		help := "tab next · ←/→ department · ctrl+s save · esc cancel"
		if e.Mode == directory.EditorCreate {
			help = "tab next · ←/→ department · ctrl+s save · ctrl+r reset · esc cancel"
		}
		b.WriteString(styleMuted.Render(help))
	}
	return b.String()
}
