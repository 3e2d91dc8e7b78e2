// Package report renders inspected entries and computed codes as text.
//
// Output goes to any io.Writer. Styling is applied through a lipgloss
// renderer bound to that writer, so redirected output stays plain text.
package report
