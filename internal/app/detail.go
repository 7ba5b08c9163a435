package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jwulff/eclipse/internal/eclipse"
	"github.com/jwulff/eclipse/internal/ui"
)

const detailEmptyHint = "Hover or click an eclipse"

// detailPanel shows one record's fields in a scrollable viewport. It
// implements session.Panel.
type detailPanel struct {
	viewport viewport.Model
	detail   *eclipse.Detail
	width    int
	height   int
}

func newDetailPanel() *detailPanel {
	return &detailPanel{viewport: viewport.New(0, 0)}
}

func (d *detailPanel) resize(width, height int) {
	d.width, d.height = width, height
	d.viewport.Width = max(0, width-1)
	d.viewport.Height = max(0, height-1) // title row
	d.refresh()
}

// Show fills the panel with det.
func (d *detailPanel) Show(det eclipse.Detail) {
	d.detail = &det
	d.refresh()
	d.viewport.GotoTop()
}

// Hide empties the panel.
func (d *detailPanel) Hide() {
	d.detail = nil
	d.refresh()
}

// Visible reports whether a record is shown.
func (d *detailPanel) Visible() bool { return d.detail != nil }

func (d *detailPanel) refresh() {
	if d.detail == nil {
		d.viewport.SetContent("")
		return
	}
	labelW := 0
	for _, f := range d.detail.Fields {
		labelW = max(labelW, len(f.Label))
	}
	var lines []string
	for _, f := range d.detail.Fields {
		label := ui.DetailLabelStyle.Render(fmt.Sprintf(" %-*s ", labelW, f.Label))
		lines = append(lines, label+ui.DetailValueStyle.Render(f.Value))
	}
	d.viewport.SetContent(strings.Join(lines, "\n"))
}

// Update forwards scroll messages to the viewport.
func (d *detailPanel) Update(msg tea.Msg) {
	d.viewport, _ = d.viewport.Update(msg)
}

func (d *detailPanel) render() string {
	var lines []string
	if d.detail == nil {
		lines = append(lines, ui.PanelTitleStyle.Render(" DETAIL"))
		lines = append(lines, ui.DimStyle.Render(" "+detailEmptyHint))
	} else {
		lines = append(lines, ui.PanelTitleActiveStyle.Render(truncateToWidth(" "+d.detail.Title, d.width)))
		lines = append(lines, strings.Split(d.viewport.View(), "\n")...)
	}
	for len(lines) < d.height {
		lines = append(lines, "")
	}
	if len(lines) > d.height {
		lines = lines[:d.height]
	}
	return strings.Join(lines, "\n")
}
