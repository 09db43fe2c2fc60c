package report

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

var (
	SuccessColorFG = pterm.FgLightGreen
	SuccessStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	WarnColorFG    = pterm.FgYellow
	WarnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	ErrorColorFG   = pterm.FgRed
	ErrorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	InfoColorFG    = SuccessColorFG
	InfoStyleBG    = SuccessStyleBG
)

// PrintErrorMessage prints a standard Go error to the console.
func PrintErrorMessage(tag string, err error) {
	ErrorStyleBG.Print(tag)
	ErrorColorFG.Println(" " + err.Error())
}

// PrintWarningMessage prints a warning message to the console.
func PrintWarningMessage(tag, msg string) {
	WarnStyleBG.Print(tag)
	WarnColorFG.Println(" " + msg)
}

// PrintInfoMessage prints an informational message to the user.
func PrintInfoMessage(tag, msg string) {
	InfoStyleBG.Print(tag)
	InfoColorFG.Println(" " + msg)
}

// DisplayInfoMessage displays a labeled informational message regardless of
// log level: eg. the version subcommand's output.
func DisplayInfoMessage(label, msg string) {
	PrintInfoMessage(label, msg)
}

// -----------------------------------------------------------------------------

// ReportDiagnostic reports a single lowering diagnostic.  The unit is the name
// of the compilation unit (function or file) the diagnostic occurred in.
func ReportDiagnostic(unit string, d *Diagnostic) {
	if rep == nil || rep.logLevel == LogLevelSilent {
		return
	}

	rep.m.Lock()
	defer rep.m.Unlock()

	rep.isErr = true

	tag := diagKindStrings[d.Kind] + " Error"
	if d.Span == nil {
		ErrorStyleBG.Print(tag)
		ErrorColorFG.Printf(" %s: %s\n", unit, d.Message)
	} else {
		ErrorStyleBG.Print(tag)
		ErrorColorFG.Printf(" %s:%d:%d: %s\n", unit, d.Span.StartLine+1, d.Span.StartCol+1, d.Message)
	}
}

// ReportDiagnostics reports a list of lowering diagnostics in order.
func ReportDiagnostics(unit string, diags []*Diagnostic) {
	for _, d := range diags {
		ReportDiagnostic(unit, d)
	}
}

// -----------------------------------------------------------------------------

// ReportFatal reports a fatal error and exits.  These are expected errors that
// generally result from invalid configuration of some form: a missing or
// malformed manifest, a bad command line, etc.
func ReportFatal(msg string, args ...interface{}) {
	if rep == nil || rep.logLevel > LogLevelSilent {
		fmt.Print("\n")
		ErrorStyleBG.Print("Fatal Error")
		ErrorColorFG.Println(" " + fmt.Sprintf(msg, args...))
	}

	os.Exit(1)
}

const icePostlude = `
This error was not supposed to happen: it indicates a bug in the toolchain.
Please open an issue on GitHub.`

// ReportICE reports an internal toolchain error.  These errors are always
// displayed regardless of log level.
func ReportICE(msg string, args ...interface{}) {
	fmt.Print("\n")
	ErrorStyleBG.Print("Internal Error")
	ErrorColorFG.Println(" " + fmt.Sprintf(msg, args...))
	InfoColorFG.Println(icePostlude)

	os.Exit(-1)
}
