package commuteconfig

import "fmt"

// ConfigError reports missing or unusable configuration, locations or
// credentials. It is always fatal: nothing is sampled or analyzed.
type ConfigError struct {
	Source string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration in %s: %v", e.Source, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
