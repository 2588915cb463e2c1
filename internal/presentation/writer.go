package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aretw0/twotruths/pkg/domain"
	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Format selects how a batch is written.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts text, json, markdown and md.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("unknown output format %q (want text, json or markdown)", s)
}

// Writer prints batches to a stream.
type Writer struct {
	w        io.Writer
	format   Format
	terminal bool
	width    int
	out      *termenv.Output
}

// NewWriter creates a Writer. Colour and glamour rendering are enabled only
// when w is a terminal.
func NewWriter(w io.Writer, format Format) *Writer {
	pw := &Writer{w: w, format: format}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pw.terminal = true
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			pw.width = width
		}
	}
	if pw.terminal {
		pw.out = termenv.NewOutput(w)
	} else {
		pw.out = termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	}
	return pw
}

// WriteBatch writes the batch in the configured format.
func (p *Writer) WriteBatch(b *domain.Batch) error {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(b)
	case FormatMarkdown:
		return p.writeMarkdown(b)
	default:
		return p.writeText(b)
	}
}

// writeText prints one "<truth>: <text>" line per statement.
func (p *Writer) writeText(b *domain.Batch) error {
	for _, s := range b.Statements {
		label := p.out.String(strconv.FormatBool(s.Truth))
		if s.Truth {
			label = label.Foreground(p.out.Color("2"))
		} else {
			label = label.Foreground(p.out.Color("1"))
		}
		if _, err := fmt.Fprintf(p.w, "%s: %s\n", label, s.Text); err != nil {
			return err
		}
	}
	return nil
}

func (p *Writer) writeMarkdown(b *domain.Batch) error {
	md := Markdown(b)
	if p.terminal {
		opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
		if p.width > 0 {
			opts = append(opts, glamour.WithWordWrap(p.width))
		}
		r, err := glamour.NewTermRenderer(opts...)
		if err != nil {
			return fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		rendered, err := r.Render(md)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		md = rendered
	}
	_, err := io.WriteString(p.w, md)
	return err
}

// Markdown renders the batch as a numbered quiz followed by its answers.
func Markdown(b *domain.Batch) string {
	var sb strings.Builder
	truths, lies := b.Counts()
	fmt.Fprintf(&sb, "# %s\n\n", quizTitle(truths, lies))
	var answers []string
	for i, s := range b.Statements {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, s.Text)
		if s.Truth {
			answers = append(answers, strconv.Itoa(i+1))
		}
	}
	sb.WriteString("\n---\n\n")
	if len(answers) == 0 {
		sb.WriteString("**Truths:** none\n")
	} else {
		fmt.Fprintf(&sb, "**Truths:** %s\n", strings.Join(answers, ", "))
	}
	if b.ID != "" {
		fmt.Fprintf(&sb, "\n_Batch %s_\n", b.ID)
	}
	return sb.String()
}

func quizTitle(truths, lies int) string {
	return fmt.Sprintf("%s and %s", plural(truths, "truth", "truths"), plural(lies, "lie", "lies"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
