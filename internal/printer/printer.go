// Package printer writes styled status lines for CLI commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/colonyops/actionsheet/internal/core/styles"
)

type ctxKey struct{}

// Printer writes one styled line per call.
type Printer struct {
	w io.Writer
}

// New creates a printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

// NewContext returns a context carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stderr)
}

func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) Successf(format string, args ...any) {
	p.styled(styles.SuccessStyle.Render(styles.IconCheck), format, args...)
}

// Warnf prints a line prefixed with the warning icon.
func (p *Printer) Warnf(format string, args ...any) {
	p.styled(styles.WarningStyle.Render(styles.IconWarning), format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.styled(styles.ErrorStyle.Render(styles.IconError), format, args...)
}

// Headerf prints a bold section header.
func (p *Printer) Headerf(format string, args ...any) {
	_, _ = fmt.Fprintln(p.w, styles.HeaderStyle.Render(fmt.Sprintf(format, args...)))
}

func (p *Printer) styled(icon, format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", icon, fmt.Sprintf(format, args...))
}
