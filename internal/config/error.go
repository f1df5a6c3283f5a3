package config

import "fmt"

// Error reports an invalid configuration value.
type Error struct {
	Key string
	msg string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Key, e.msg)
}
