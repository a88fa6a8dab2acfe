package runtime

import "github.com/pithecene-io/packetcount/types"

// Exit codes of the packetcount CLI.
const (
	ExitCodeCompleted  = 0 // every file decoded to the end
	ExitCodeUnreadable = 1 // a file could not be read, or invalid usage
	ExitCodeCanceled   = 2 // interrupted between chunks
	ExitCodeAborted    = 3 // strict validation aborted a file
)

// DetermineExitCode maps the outcome of a batch of files to an exit code.
// Cancellation wins over an aborted file, which wins over an unreadable one.
func DetermineExitCode(summaries []*types.FileSummary, errs []error) int {
	code := ExitCodeCompleted
	for _, err := range errs {
		if err == nil {
			continue
		}
		if IsCanceledError(err) {
			return ExitCodeCanceled
		}
		code = ExitCodeUnreadable
	}
	for _, s := range summaries {
		if s.Aborted() {
			code = ExitCodeAborted
		}
	}
	return code
}
