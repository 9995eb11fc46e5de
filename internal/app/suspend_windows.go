//go:build windows

package app

// There is no SIGTSTP/SIGCONT on Windows; suspend is a no-op.
func (app *Application) suspendToShell() {
}

func (app *Application) resumeAfterStop() bool {
	return false
}
