package errors

type ExitCode int

const (
	GenericFailureExitCode ExitCode = 1

	// Bad flags, arguments or config
	UsageExitCode ExitCode = 64

	// The scanned tree has a file and a directory at the same path, e.g. the tree
	// changed while it was being scanned
	InconsistentSnapshotExitCode ExitCode = 70

	// Reading or hashing a file failed
	ScanFailureExitCode ExitCode = 74
)
