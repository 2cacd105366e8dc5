package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// FormatError renders err for terminal output with colors.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	return format(err, true)
}

// FormatErrorPlain renders err without ANSI color codes.
func FormatErrorPlain(err error) string {
	if err == nil {
		return ""
	}
	return format(err, false)
}

// FormatSimpleError renders a plain error under the given category header.
func FormatSimpleError(err error, category ErrorCategory) string {
	if err == nil {
		return ""
	}
	return FormatError(Wrap(&NotifyError{Message: err.Error(), Err: err}, category))
}

// PrintError writes the formatted error to stderr.
func PrintError(err error) {
	FprintError(os.Stderr, err)
}

// FprintError writes the formatted error to w.
func FprintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

func format(err error, colored bool) string {
	ne := AsNotifyError(err)
	if ne == nil {
		ne = &NotifyError{Category: Runtime, Message: err.Error()}
	}

	header := color.New(color.FgRed, color.Bold).SprintFunc()
	label := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()
	if !colored {
		header = fmt.Sprint
		label = fmt.Sprint
		dim = fmt.Sprint
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", header(ne.Category.String()), ne.Message)

	if ne.Usage != "" {
		fmt.Fprintf(&b, "\n%s\n  %s\n", label("Usage:"), ne.Usage)
	}

	if len(ne.Remediation) > 0 {
		fmt.Fprintf(&b, "\n%s\n", label("To fix this:"))
		for i, step := range ne.Remediation {
			fmt.Fprintf(&b, "  %s %s\n", dim(fmt.Sprintf("%d.", i+1)), step)
		}
	}

	return b.String()
}
