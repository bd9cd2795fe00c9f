package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/oati/spline-export/internal/export"
)

// renderList renders the left panel: exportable objects with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.visible) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No spline objects")
	}

	var lines []string
	for i, e := range m.visible {
		if i < m.listOffset {
			continue
		}
		if len(lines) >= height {
			break
		}
		lines = append(lines, formatEntryLine(e, width, i == m.cursor))
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

// formatEntryLine formats one object as: [>] class  name  (N keys).
func formatEntryLine(e entry, width int, selected bool) string {
	cls := styleClassName.Render(string(e.obj.Class()))
	info := fmt.Sprintf("%d keys", len(e.frames))
	if len(e.obj.Modifiers()) > 0 {
		info += fmt.Sprintf(", %d mod", len(e.obj.Modifiers()))
	}

	name := e.obj.Name()
	nameMax := width - 2 - 12 - len(info) - 3
	if nameMax < 0 {
		nameMax = 0
	}
	if runewidth.StringWidth(name) > nameMax {
		name = runewidth.Truncate(name, nameMax, "")
	}

	line := fmt.Sprintf("%s %s  %s", cls, styleListNormal.Render(name), styleAnimated.Render(info))
	if selected {
		return styleListSelected.Render("> ") + line
	}
	return "  " + line
}

// refreshDetail re-renders the right panel for the current selection. force
// redraws even when the selection has not changed (window resizes).
func (m *model) refreshDetail(force bool) {
	if m.cursor >= len(m.visible) {
		m.detail.SetContent("")
		m.detailKey = ""
		return
	}
	e := m.visible[m.cursor]
	if !force && e.obj.Name() == m.detailKey {
		return
	}
	m.detailKey = e.obj.Name()
	m.detail.SetContent(m.renderDetail(e))
	m.detail.GotoTop()
}

// renderDetail summarizes one object: identity, modifier stack, discovered
// keyframes, and the geometry sampled at the first keyframe.
func (m *model) renderDetail(e entry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", styleTitle.Render(e.obj.Name()))
	fmt.Fprintf(&b, "class: %s\n", e.obj.Class())

	mods := e.obj.Modifiers()
	if len(mods) > 0 {
		names := make([]string, len(mods))
		for i, mod := range mods {
			names[i] = mod.Name()
		}
		fmt.Fprintf(&b, "modifiers: %s\n", strings.Join(names, ", "))
	}

	fmt.Fprintf(&b, "\n%s\n", styleTitle.Render("Keyframes"))
	fmt.Fprintf(&b, "%v\n", e.frames)

	if len(e.frames) == 0 {
		return b.String()
	}

	first := e.frames[0]
	m.host.SetTime(first)
	curves := export.SampleFrame(m.host, e.obj, first, io.Discard)

	fmt.Fprintf(&b, "\n%s\n", styleTitle.Render(fmt.Sprintf("Geometry at frame %d", first)))
	if len(curves) == 0 {
		b.WriteString("no curve data\n")
		return b.String()
	}
	for _, c := range curves {
		fmt.Fprintf(&b, "curve %d: %d point(s)\n", c.SplineIndex, len(c.Points))
		for i, p := range c.Points {
			fmt.Fprintf(&b, "  %2d  knot (%.3f, %.3f, %.3f)\n", i+1, p.Knot.X, p.Knot.Y, p.Knot.Z)
		}
	}
	return b.String()
}
