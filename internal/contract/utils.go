package contract

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/relicworks/archeologist/schema"
)

// Severity label constants.
const (
	CriticalValue = "Critical"
	WarningValue  = "Warning"
	InfoValue     = "Info"
)

// Color variables for console output.
var (
	CriticalColor = color.New(color.FgRed, color.Bold) // criticalColor represents standard danger.
	WarningColor  = color.New(color.FgYellow)          // warningColor represents standard caution.
	InfoColor     = color.New(color.FgCyan)            // infoColor represents informational signal.
)

// GetPlainLabel returns a plain text label for a severity. This is the core
// logic used for CSV, JSON, and table printing.
func GetPlainLabel(s schema.Severity) string {
	switch s {
	case schema.SeverityCritical:
		return CriticalValue
	case schema.SeverityWarning:
		return WarningValue
	default:
		return InfoValue
	}
}

// GetColorLabel returns a colored text label for console output (table).
// It uses GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(s schema.Severity) string {
	text := GetPlainLabel(s)

	switch text {
	case CriticalValue:
		return CriticalColor.Sprint(text)
	case WarningValue:
		return WarningColor.Sprint(text)
	default:
		return InfoColor.Sprint(text)
	}
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	fmt.Fprintf(os.Stderr, "Error: %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning without aborting.
func LogWarn(msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s: %v\n", msg, err)
		return
	}
	fmt.Fprintf(os.Stderr, "Warning: %s\n", msg)
}
