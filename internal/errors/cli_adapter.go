package errors

import (
	"fmt"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if be, ok := err.(*BridgeError); ok {
		return a.exitCodeFromBridge(be)
	}

	return 1
}

// exitCodeFromBridge maps BridgeError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromBridge(err *BridgeError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryEnvironment:
		return 3 // Invalid build environment
	case CategoryProperties:
		return 6 // Property store error
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryExport, CategoryJournal:
		return 11 // Hand-off error
	case CategoryWatch:
		return 12 // Runtime error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if be, ok := err.(*BridgeError); ok {
		return a.formatBridge(be)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatBridge formats a BridgeError for display.
func (a *CLIErrorAdapter) formatBridge(err *BridgeError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation:
		return err.Message
	case CategoryEnvironment:
		// The wrapped cause names the offending variable; that is the part
		// the person staring at an Xcode build log needs.
		if err.Cause != nil {
			return fmt.Sprintf("%s: %v", err.Message, err.Cause)
		}
		return err.Message
	default:
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	fmt.Fprintf(os.Stderr, "%s\n", message)
	os.Exit(exitCode)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if be, ok := err.(*BridgeError); ok {
		return be.Category == CategoryInternal ||
			be.Category == CategoryWatch ||
			be.Severity == SeverityFatal
	}

	return true
}

// logError logs an error with appropriate level and context.
func (a *CLIErrorAdapter) logError(err error) {
	if be, ok := err.(*BridgeError); ok {
		level := a.slogLevelFromSeverity(be.Severity)
		attrs := []slog.Attr{
			slog.String("category", string(be.Category)),
		}

		a.logger.LogAttrs(nil, level, be.Message, attrs...)
		return
	}

	a.logger.Error("Unclassified error", "error", err)
}

// slogLevelFromSeverity converts BridgeError severity to slog level.
func (a *CLIErrorAdapter) slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	case SeverityFatal:
		return slog.LevelError
	default:
		return slog.LevelError
	}
}
