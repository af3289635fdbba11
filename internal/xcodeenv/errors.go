package xcodeenv

import "fmt"

// InvalidConfigurationError reports an environment variable whose value cannot
// be used as a build setting. There is no recovery path: callers are expected
// to abort the configuration run and surface the message.
type InvalidConfigurationError struct {
	Variable string
	Value    string
	Reason   string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid %s=%q: %s", e.Variable, e.Value, e.Reason)
}
