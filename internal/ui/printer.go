package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/talentdesk/applywizard/internal/directory"
	"github.com/talentdesk/applywizard/internal/form"
)

// Printer provides methods for printing UI components to a writer.
// This is the primary way CLI subcommands and the plain wizard output
// styled content.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// WithWidth overrides the detected terminal width.
func (p *Printer) WithWidth(width int) *Printer {
	p.width = clampWidth(width)
	return p
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.out
}

// Print writes content to the output
func (p *Printer) Print(content string) {
	_, _ = fmt.Fprint(p.out, content)
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Printf writes formatted content
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format, args...)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params ...Param) {
	p.Println(NewHeader(title, command, params...).SetWidth(p.width).Render())
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Param) {
	p.Println(NewSuccessResult(title, details...).SetWidth(p.width).Render())
}

// PrintWarning prints a warning result box
func (p *Printer) PrintWarning(title string, details ...Param) {
	p.Println(NewWarningResult(title, details...).SetWidth(p.width).Render())
}

// PrintError prints an error result box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting ...string) {
	p.Println(NewFailureResult(title, err, troubleshooting...).SetWidth(p.width).Render())
}

// PrintProgress prints a page loading summary
func (p *Printer) PrintProgress(progress *Progress) {
	p.Println(progress.SetWidth(p.width).Render())
}

// PrintProducts prints a catalog table
func (p *Printer) PrintProducts(products []directory.Product) {
	p.Println(ProductsTable(products, p.width))
}

// PrintUsers prints a directory table
func (p *Printer) PrintUsers(users []directory.User) {
	p.Println(UsersTable(users, p.width))
}

// PrintApplication prints the application summary
func (p *Printer) PrintApplication(app form.Application) {
	p.Println(RenderApplication(app, p.width))
}

// FetchTroubleshooting returns tips for a failed catalog or directory fetch.
func FetchTroubleshooting(err error) []string {
	switch {
	case directory.IsNetworkError(err):
		return []string{
			"Check your internet connection",
			"Verify api.base_url in the config file (applywizard config show)",
			"Retry with a longer api.fetch_timeout if the network is slow",
		}
	case directory.IsHTTPError(err):
		return []string{
			"The API rejected the request; try again later",
			"Verify api.base_url points at a dummyjson-compatible server",
		}
	case directory.IsParseError(err):
		return []string{
			"The server response was not the expected JSON shape",
			"Verify api.base_url points at a dummyjson-compatible server",
		}
	default:
		return nil
	}
}
