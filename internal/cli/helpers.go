package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm prompts on out and reads the answer from in
func Confirm(in io.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}

	fmt.Fprint(out, prompt+suffix)

	reader := bufio.NewReader(in)
	response, err := reader.ReadString('\n')
	if err != nil && response == "" {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))

	if response == "" {
		return defaultYes, nil
	}

	return response == "y" || response == "yes", nil
}

// messageKind is how a line is marked with and without color
type messageKind struct {
	icon      string
	plain     string
	quietable bool
}

var (
	successKind = messageKind{icon: "✓", plain: "OK:", quietable: true}
	infoKind    = messageKind{icon: "ℹ", plain: "INFO:", quietable: true}
	warningKind = messageKind{icon: "⚠", plain: "WARNING:"}
	errorKind   = messageKind{icon: "✗", plain: "ERROR:"}
)

func printMessage(w io.Writer, kind messageKind, format string, args []interface{}) {
	if quiet && kind.quietable {
		return
	}
	marker := kind.icon
	if noColor {
		marker = kind.plain
	}
	fmt.Fprintf(w, "%s %s\n", marker, fmt.Sprintf(format, args...))
}

// PrintSuccess reports a completed action. Suppressed by --quiet.
func PrintSuccess(w io.Writer, format string, args ...interface{}) {
	printMessage(w, successKind, format, args)
}

// PrintInfo reports something neutral, such as an empty result. Suppressed by --quiet.
func PrintInfo(w io.Writer, format string, args ...interface{}) {
	printMessage(w, infoKind, format, args)
}

// PrintWarning reports something the user asked for that will not happen
func PrintWarning(w io.Writer, format string, args ...interface{}) {
	printMessage(w, warningKind, format, args)
}

// PrintError reports a failed command
func PrintError(w io.Writer, format string, args ...interface{}) {
	printMessage(w, errorKind, format, args)
}

// Global flags (set from the cmd package)
var (
	quiet       bool
	noColor     bool
	skipConfirm bool
)

// SetGlobalFlags sets the global flag values from the cmd package
func SetGlobalFlags(q, nc, sc bool) {
	quiet = q
	noColor = nc
	skipConfirm = sc
}
