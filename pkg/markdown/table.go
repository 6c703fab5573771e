package markdown

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/fielddoc/fielddoc/pkg/schema"
)

var headerCells = [3]string{"Field", "Description", "Notes"}

// FieldTable renders the Field | Description | Notes table for a field list.
// Column widths are padded to the widest cell so repeated runs over the same
// input emit identical bytes.
func FieldTable(fields []schema.FieldSpec) (string, error) {
	if len(fields) == 0 {
		return "", errors.New("markdown: no fields to render")
	}

	rows := make([][3]string, 0, len(fields))
	for _, f := range fields {
		notes, err := notesCell(f)
		if err != nil {
			return "", err
		}
		rows = append(rows, [3]string{
			Backquote(f.Name),
			Cell(f.Description),
			notes,
		})
	}

	var widths [3]int
	for i, h := range headerCells {
		widths[i] = utf8.RuneCountInString(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if n := utf8.RuneCountInString(cell); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var sb strings.Builder
	writeRow(&sb, headerCells, widths)
	writeDivider(&sb, widths)
	for _, row := range rows {
		writeRow(&sb, row, widths)
	}
	return sb.String(), nil
}

func writeRow(sb *strings.Builder, cells [3]string, widths [3]int) {
	sb.WriteString("|")
	for i, cell := range cells {
		sb.WriteString(" ")
		sb.WriteString(cell)
		sb.WriteString(strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell)))
		sb.WriteString(" |")
	}
	sb.WriteString("\n")
}

func writeDivider(sb *strings.Builder, widths [3]int) {
	sb.WriteString("|")
	for _, w := range widths {
		sb.WriteString(strings.Repeat("-", w+2))
		sb.WriteString("|")
	}
	sb.WriteString("\n")
}

// Cell normalizes free text for use inside a table row: inline HTML is
// sanitized, paragraph breaks become <br /> pairs, remaining newlines become
// spaces, and pipes are escaped so the cell cannot break its row.
func Cell(s string) string {
	s = SanitizeInline(s)
	s = strings.ReplaceAll(s, "\n\n", "<br /><br />")
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "|", `\|`)
	return s
}

// Backquote wraps a name in backticks for inline-code rendering.
func Backquote(s string) string {
	return "`" + s + "`"
}

// notesCell assembles the Notes column for one field. Fields with a default
// lead with an "Optional. Defaults to `v`." sentence; list notes follow as
// bullet items separated by <br /> so they render as distinct lines, while a
// bare string note stays prose.
func notesCell(f schema.FieldSpec) (string, error) {
	var cell string
	if f.HasDefault {
		value, err := RenderScalar(f.Default)
		if err != nil {
			return "", err
		}
		value = strings.ReplaceAll(value, "|", `\|`)
		cell = "Optional. Defaults to " + Backquote(value) + "."
	}

	items := f.Notes.Items()
	if len(items) == 0 {
		return cell, nil
	}

	if f.Notes.IsList() {
		bullets := make([]string, 0, len(items))
		for _, item := range items {
			bullets = append(bullets, "- "+AddFullStop(Cell(item)))
		}
		block := strings.Join(bullets, "<br />")
		if cell == "" {
			return block, nil
		}
		return cell + "<br />" + block, nil
	}

	prose := Cell(items[0])
	if cell == "" {
		return prose, nil
	}
	return cell + " " + prose, nil
}
