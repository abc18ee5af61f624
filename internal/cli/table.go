package cli

import (
	"io"
	"strings"
	"unicode/utf8"
)

// table lays out rows in columns sized to their widest cell. Columns with a
// wrap width break long cells at word boundaries.
type table struct {
	headers []string
	rows    [][]string
	wrap    map[int]int
}

const columnGap = "  "

func newTable(headers ...string) *table {
	return &table{headers: headers, wrap: make(map[int]int)}
}

// wrapColumn limits column col to width characters.
func (t *table) wrapColumn(col, width int) *table {
	t.wrap[col] = width
	return t
}

// addRow appends a row, padded or truncated to the header count.
func (t *table) addRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

func (t *table) render(w io.Writer) error {
	if len(t.headers) == 0 {
		return nil
	}

	cells := make([][][]string, len(t.rows))
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = width(h)
	}
	for r, row := range t.rows {
		cells[r] = make([][]string, len(row))
		for c, cell := range row {
			lines := []string{cell}
			if limit := t.wrap[c]; limit > 0 {
				lines = wrapText(cell, limit)
			}
			cells[r][c] = lines
			for _, l := range lines {
				widths[c] = max(widths[c], width(l))
			}
		}
	}

	var b strings.Builder
	writeLine := func(parts []string) {
		for i, p := range parts {
			if i > 0 {
				b.WriteString(columnGap)
			}
			if i == len(parts)-1 {
				b.WriteString(p)
				continue
			}
			b.WriteString(padRight(p, widths[i]))
		}
		b.WriteByte('\n')
	}

	writeLine(t.headers)
	sep := make([]string, len(widths))
	for i, wd := range widths {
		sep[i] = strings.Repeat("-", wd)
	}
	writeLine(sep)

	for _, row := range cells {
		height := 1
		for _, lines := range row {
			height = max(height, len(lines))
		}
		for l := range height {
			parts := make([]string, len(row))
			for c, lines := range row {
				if l < len(lines) {
					parts[c] = lines[l]
				}
			}
			writeLine(parts)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}

func padRight(s string, n int) string {
	if w := width(s); w < n {
		return s + strings.Repeat(" ", n-w)
	}
	return s
}

// wrapText breaks text into lines of at most n characters. Words longer
// than n are split.
func wrapText(text string, n int) []string {
	words := strings.Fields(text)
	if n <= 0 || width(text) <= n || len(words) == 0 {
		return []string{text}
	}

	var lines []string
	current := ""
	for _, word := range words {
		for width(word) > n {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			r := []rune(word)
			lines = append(lines, string(r[:n]))
			word = string(r[n:])
		}
		switch {
		case current == "":
			current = word
		case width(current)+1+width(word) <= n:
			current += " " + word
		default:
			lines = append(lines, current)
			current = word
		}
	}
	if current != "" {
		lines = append(lines, current)
	}
	return lines
}
