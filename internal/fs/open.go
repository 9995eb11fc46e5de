package fs

import (
	"fmt"
	"os/exec"
	"runtime"
)

var startCommand = func(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func openDefault(path string) error {
	cmd, err := defaultOpenCommand(runtime.GOOS, path)
	if err != nil {
		return err
	}
	if err := startCommand(cmd); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	return nil
}

func defaultOpenCommand(goos, path string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", path), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", path), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", path), nil
	default:
		return nil, fmt.Errorf("open not supported on %s", goos)
	}
}
