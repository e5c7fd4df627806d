// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion. A usage error also exits
	// with Success.
	Success = 0

	// UserError indicates a user error (bad flags, workspace not found).
	UserError = 1

	// AuthError indicates an auth/config error.
	AuthError = 2

	// BackendError indicates a backend/API/network error.
	BackendError = 3

	// OutputError indicates the CSV file could not be written.
	OutputError = 4
)
