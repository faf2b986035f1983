package ports

import "context"

// Runner executes a user-supplied hook command, streaming its output
// through the logger.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type Runner interface {
	// Run executes the command and blocks until it exits. Entries in
	// extraEnv are appended to the inherited environment, overriding
	// variables of the same name.
	Run(ctx context.Context, command []string, extraEnv map[string]string) error
}
