package errors

// Convenience functions for common error patterns

// Config errors

func ConfigUnreadable(path string, cause error) *BridgeError {
	return Wrap(cause, CategoryConfig, SeverityFatal, "configuration file unreadable").
		WithContext("path", path)
}

func ConfigInvalid(field, reason string) *BridgeError {
	return New(CategoryConfig, SeverityFatal, "invalid configuration").
		WithContext("field", field).
		WithContext("reason", reason)
}

func ValidationFailed(reason string) *BridgeError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("reason", reason)
}

// Resolution errors

// InvalidEnvironment wraps the core typed error so errors.As still reaches
// *xcodeenv.InvalidConfigurationError through the chain.
func InvalidEnvironment(cause error) *BridgeError {
	return Wrap(cause, CategoryEnvironment, SeverityFatal, "invalid build environment")
}

func PropertiesUnreadable(path string, cause error) *BridgeError {
	return Wrap(cause, CategoryProperties, SeverityFatal, "project properties unreadable").
		WithContext("path", path)
}

// Hand-off errors

func ExportFailed(path string, cause error) *BridgeError {
	return Wrap(cause, CategoryExport, SeverityFatal, "snapshot export failed").
		WithContext("path", path)
}

func JournalUnavailable(cause error) *BridgeError {
	return Wrap(cause, CategoryJournal, SeverityWarning, "resolution journal unavailable")
}

// Daemon errors

func WatchFailed(cause error) *BridgeError {
	return Wrap(cause, CategoryWatch, SeverityFatal, "watch daemon failed")
}

// Internal errors

func InternalError(message string, cause error) *BridgeError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
