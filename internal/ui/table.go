package ui

import "strings"

// RenderColumns renders rows as left-aligned columns separated by two
// spaces. Column widths follow the widest cell in each column; the last
// cell of each row is never padded. Rows may be ragged.
func RenderColumns(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(cell)
			if i < len(row)-1 {
				sb.WriteString(strings.Repeat(" ", widths[i]-len(cell)))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
