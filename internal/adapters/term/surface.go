// Package term is the terminal adapter: it renders the admin screens as
// plain-text tables and drives them through slash commands, reusing the
// same screen controllers the web pages boot.
package term

import (
	"fmt"
	"io"
	"strings"

	"shopkeeper/internal/ui"
)

// Terminal renders screen states, modals, and toasts to a writer. It
// satisfies ui.Surface, ui.ModalView, ui.ConfirmView, and ui.ToastSink.
type Terminal struct {
	out io.Writer

	// lastPager backs the /next and /prev commands.
	lastPager *ui.PageControls
}

// NewTerminal builds a Terminal writing to out.
func NewTerminal(out io.Writer) *Terminal {
	return &Terminal{out: out}
}

func (t *Terminal) ShowLoading(message string) { fmt.Fprintln(t.out, message) }

func (t *Terminal) ShowError(message string) { fmt.Fprintf(t.out, "Error: %s\n", message) }

func (t *Terminal) ShowEmpty(message string) {
	t.lastPager = nil
	fmt.Fprintln(t.out, message)
}

func (t *Terminal) ShowTable(columns []ui.Column, rows []ui.Record) {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col.Label)
		for _, row := range rows {
			if n := len(row.String(col.Key)); n > widths[i] {
				widths[i] = n
			}
		}
	}

	var header strings.Builder
	header.WriteString("  # ")
	for i, col := range columns {
		fmt.Fprintf(&header, " %-*s", widths[i], col.Label)
	}
	fmt.Fprintln(t.out, header.String())
	fmt.Fprintln(t.out, strings.Repeat("-", len(header.String())))

	for i, row := range rows {
		var line strings.Builder
		fmt.Fprintf(&line, "%3d ", i+1)
		for j, col := range columns {
			fmt.Fprintf(&line, " %-*s", widths[j], row.String(col.Key))
		}
		fmt.Fprintln(t.out, line.String())
	}
}

func (t *Terminal) ShowPagination(pc *ui.PageControls) {
	t.lastPager = pc
	if pc == nil {
		return
	}
	fmt.Fprintf(t.out, "%s  (/prev, /next)\n", pc.Label())
}

func (t *Terminal) ModalOpened(title string, form *ui.Form) {
	fmt.Fprintf(t.out, "\n=== %s ===\n", title)
	t.printForm(form)
	fmt.Fprintln(t.out, "Fill fields with /set <field>=<value>, then /save or /cancel.")
}

func (t *Terminal) ModalClosed() {}

func (t *Terminal) ReportInvalid(message string) {
	fmt.Fprintf(t.out, "Invalid: %s\n", message)
}

func (t *Terminal) ConfirmOpened(title, message string) {
	fmt.Fprintf(t.out, "\n=== %s ===\n%s\n", title, message)
	fmt.Fprintln(t.out, "Type /confirm to proceed or /cancel to abort.")
}

func (t *Terminal) ConfirmClosed() {}

func (t *Terminal) ToastShown(toast ui.Toast) {
	fmt.Fprintf(t.out, "[%s] %s\n", toast.Kind, toast.Message)
}

func (t *Terminal) ToastDismissed(toast ui.Toast) {}

func (t *Terminal) printForm(form *ui.Form) {
	for _, field := range form.Fields {
		if field.Kind == ui.FieldHidden {
			continue
		}
		value := field.Value
		if field.Kind == ui.FieldCheckbox {
			value = "no"
			if field.Checked {
				value = "yes"
			}
		}
		marker := " "
		if field.Required {
			marker = "*"
		}
		fmt.Fprintf(t.out, "  %s%-20s %s\n", marker, field.Name, value)
	}
}
