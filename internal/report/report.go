// Package report renders severity-tagged status lines for the operator.
// One line is emitted after every installation step; diagnostic detail goes
// through the structured logger instead.
package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Severity classifies a status line.
type Severity string

const (
	SeverityInfo  Severity = "info"
	SeverityOK    Severity = "ok"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Color palette for severity tags, tuned for dark terminal backgrounds.
const (
	colorInfo  = lipgloss.Color("#3B82F6")
	colorOK    = lipgloss.Color("#10B981")
	colorWarn  = lipgloss.Color("#F59E0B")
	colorError = lipgloss.Color("#EF4444")
)

var tagStyles = map[Severity]lipgloss.Style{
	SeverityInfo:  lipgloss.NewStyle().Foreground(colorInfo),
	SeverityOK:    lipgloss.NewStyle().Bold(true).Foreground(colorOK),
	SeverityWarn:  lipgloss.NewStyle().Foreground(colorWarn),
	SeverityError: lipgloss.NewStyle().Bold(true).Foreground(colorError),
}

var tags = map[Severity]string{
	SeverityInfo:  "[ info ]",
	SeverityOK:    "[  ok  ]",
	SeverityWarn:  "[ warn ]",
	SeverityError: "[ fail ]",
}

// Reporter writes status lines to a single destination.
type Reporter struct {
	out io.Writer
}

// New creates a Reporter writing to out.
func New(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

// Report renders one status line with the given severity tag. Severities
// outside the known set render nothing at all.
func (r *Reporter) Report(msg string, sev Severity) {
	style, ok := tagStyles[sev]
	if !ok {
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", style.Render(tags[sev]), msg)
}

// Infof reports an info-severity line with Printf formatting.
func (r *Reporter) Infof(format string, args ...any) {
	r.Report(fmt.Sprintf(format, args...), SeverityInfo)
}

// OKf reports an ok-severity line with Printf formatting.
func (r *Reporter) OKf(format string, args ...any) {
	r.Report(fmt.Sprintf(format, args...), SeverityOK)
}

// Warnf reports a warn-severity line with Printf formatting.
func (r *Reporter) Warnf(format string, args ...any) {
	r.Report(fmt.Sprintf(format, args...), SeverityWarn)
}

// Errorf reports an error-severity line with Printf formatting.
func (r *Reporter) Errorf(format string, args ...any) {
	r.Report(fmt.Sprintf(format, args...), SeverityError)
}
