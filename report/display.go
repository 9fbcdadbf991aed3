package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
)

var (
	successColorFG = pterm.FgLightGreen
	successStyleBG = pterm.NewStyle(pterm.BgLightGreen, pterm.FgBlack)
	warnColorFG    = pterm.FgYellow
	warnStyleBG    = pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	errorColorFG   = pterm.FgRed
	errorStyleBG   = pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
)

// DisplayDiagnostic displays a single diagnostic to the console along with
// the excerpt of source text it spans.  The reprPath is the representative
// path of the source file used to label the message; the source is the full
// source text the diagnostic was produced from.
func DisplayDiagnostic(reprPath, source string, d Diagnostic) {
	label := "error"
	labelBG, labelFG := errorStyleBG, errorColorFG
	if d.Severity == SeverityWarning {
		label = "warning"
		labelBG, labelFG = warnStyleBG, warnColorFG
	}

	labelBG.Print(fmt.Sprintf(" %s ", label))

	if d.Span == nil {
		labelFG.Printf(" %s: [%s] %s\n\n", reprPath, KindName(d.Kind), d.Message)
		return
	}

	labelFG.Printf(" %s:%d:%d: [%s] %s\n\n",
		reprPath, d.Span.StartLine+1, d.Span.StartCol+1, KindName(d.Kind), d.Message)

	displaySourceText(source, d.Span)
}

// DisplayFatal displays a fatal error message.
func DisplayFatal(msg string) {
	errorStyleBG.Print(" fatal ")
	errorColorFG.Println(" " + msg)
}

// DisplayInternalFault displays an internal compiler fault.  These errors are
// not supposed to happen: they indicate a bug in the compiler itself, not in
// the user's program.
func DisplayInternalFault(msg string) {
	errorStyleBG.Print(" internal ")
	errorColorFG.Println(" " + msg)
	pterm.Println("This error was not supposed to happen: please open an issue on the Vāktra tracker.")
}

// DisplaySuccess displays a concluding success message.
func DisplaySuccess(msg string) {
	successStyleBG.Print(" ok ")
	successColorFG.Println(" " + msg)
}

// -----------------------------------------------------------------------------

// displaySourceText displays a segment of source text defined by a text span,
// underlined with carets.
func displaySourceText(source string, span *TextSpan) {
	// Collect all the source lines containing the given source text.
	var lines []string
	for ln, line := range strings.Split(source, "\n") {
		if span.StartLine <= ln && ln <= span.EndLine {
			lines = append(lines, strings.ReplaceAll(line, "\t", "    "))
		}
	}

	if len(lines) == 0 {
		return
	}

	// Calculate the minimum line indentation.
	minIndent := math.MaxInt32
	for _, line := range lines {
		lineIndent := 0
		for _, c := range line {
			if c == ' ' {
				lineIndent++
			} else {
				break
			}
		}

		if lineIndent < minIndent {
			minIndent = lineIndent
		}
	}

	// Generate the format string for line numbers.
	maxLineNumLen := len(strconv.Itoa(span.EndLine + 1))
	lineNumFmtStr := "%-" + strconv.Itoa(maxLineNumLen) + "v | "

	for i, line := range lines {
		fmt.Printf(lineNumFmtStr, i+span.StartLine+1)
		fmt.Println(line[minIndent:])

		fmt.Print(strings.Repeat(" ", maxLineNumLen), " | ")

		// The carets skip until the start column on the first line and always
		// continue from the left edge on subsequent lines.
		var caretPrefixCount int
		if i == 0 {
			caretPrefixCount = span.StartCol - minIndent
		}

		// The carets stop at the end column on the last line and run to the
		// end of the line on all earlier lines.
		var caretSuffixCount int
		if i == len(lines)-1 {
			caretSuffixCount = len(line) - span.EndCol
		}

		caretCount := len(line) - caretSuffixCount - caretPrefixCount - minIndent
		if caretCount < 1 {
			caretCount = 1
		}

		fmt.Print(strings.Repeat(" ", caretPrefixCount))
		fmt.Println(strings.Repeat("^", caretCount))
	}

	fmt.Println()
}
