package errors

import "fmt"

// Common error messages for the cara CLI.

// NotARepository creates an error when the repository path holds no git repository.
func NotARepository(path string, err error) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		fmt.Sprintf("not a git repository: %s", path),
		"Run cara inside a git repository or pass --repo <path>",
		"Or read history from an export file with --from <file>",
	)
}

// ConfigFileNotFound creates an error for a missing config file given with --config.
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Check the --config path",
		"Print a starter file with: cara config --template > cara.conf",
	)
}

// InvalidConfigValue creates an error for a config value that cannot be used.
func InvalidConfigValue(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"List valid keys and values with: cara config --keys",
	)
}

// InvalidGroupBy creates an error for an unsupported GROUP_BY unit.
func InvalidGroupBy(err error) *CLIError {
	return WrapWithMessage(err, Argument,
		"cannot group changelog",
		"Set GROUP_BY to one of: day, week, month, year",
	)
}

// InvalidOutputFormat creates an error for an unsupported --format value.
func InvalidOutputFormat(format string) *CLIError {
	return &CLIError{
		Category:    Argument,
		Message:     fmt.Sprintf("unsupported output format: %s", format),
		Usage:       "cara --format markdown|yaml",
		Remediation: []string{"Use markdown (default) or yaml"},
	}
}

// HistoryReadFailed creates an error when commit history cannot be read.
func HistoryReadFailed(err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		"reading commit history failed",
		"Check that the repository is not corrupted: git fsck",
		"Run with --debug for details",
	)
}

// FileNotWritable creates an error when a file cannot be written.
func FileNotWritable(path string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		fmt.Sprintf("cannot write to file: %s", path),
		"Check file permissions: ls -la "+path,
		"Ensure parent directory exists and is writable",
	)
}
