//go:build !windows

package app

import (
	"syscall"

	"github.com/gdamore/tcell/v2"
)

func (app *Application) suspendToShell() {
	// Return terminal control to the shell before stopping the process.
	_ = app.screen.Suspend()
	// Stop only this process so job control in the launching shell keeps working.
	_ = syscall.Kill(syscall.Getpid(), syscall.SIGTSTP)
}

func (app *Application) resumeAfterStop() bool {
	if err := app.screen.Resume(); err != nil {
		app.log.Warn().Err(err).Msg("resume failed")
		return false
	}
	app.screen.EnableMouse(tcell.MouseMotionEvents)
	app.screen.Sync()
	app.clampCursor()
	return true
}
