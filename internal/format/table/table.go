package table

import "strings"

type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Column describes a single table column.
type Column struct {
	Title string
	Align Alignment
}

// Pad returns the header cells and rows padded so every column is as wide as
// its widest entry, header included. Cells come back individually so callers
// can style them before joining.
func Pad(cols []Column, rows [][]string) ([]string, [][]string) {
	widths := make([]int, len(cols))
	for c, col := range cols {
		widths[c] = cellWidth(col.Title)
	}
	for _, row := range rows {
		for c, cell := range row {
			if c >= len(widths) {
				break
			}
			if width := cellWidth(cell); width > widths[c] {
				widths[c] = width
			}
		}
	}
	header := make([]string, len(cols))
	for c, col := range cols {
		header[c] = padCell(col.Title, widths[c], col.Align)
	}
	padded := make([][]string, len(rows))
	for i, row := range rows {
		out := make([]string, len(cols))
		for c := range cols {
			cell := ""
			if c < len(row) {
				cell = row[c]
			}
			out[c] = padCell(cell, widths[c], cols[c].Align)
		}
		padded[i] = out
	}
	return header, padded
}

// Format returns the rows padded according to the widest entry in each column
// and joined with a two-space gutter.
func Format(rows [][]string, alignments []Alignment) []string {
	if len(rows) == 0 {
		return nil
	}
	cols := make([]Column, len(rows[0]))
	for c := range cols {
		if c < len(alignments) {
			cols[c].Align = alignments[c]
		}
	}
	_, padded := Pad(cols, rows)
	out := make([]string, len(padded))
	for i, row := range padded {
		out[i] = strings.Join(row, "  ")
	}
	return out
}

func padCell(cell string, width int, align Alignment) string {
	gap := width - cellWidth(cell)
	if gap <= 0 {
		return cell
	}
	var b strings.Builder
	if align == AlignRight {
		writeSpaces(&b, gap)
		b.WriteString(cell)
	} else {
		b.WriteString(cell)
		writeSpaces(&b, gap)
	}
	return b.String()
}

func cellWidth(text string) int {
	return len([]rune(text))
}

func writeSpaces(b *strings.Builder, count int) {
	if count <= 0 {
		return
	}
	for i := 0; i < count; i++ {
		b.WriteByte(' ')
	}
}
