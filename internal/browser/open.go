// Package browser opens URLs in the user's default browser. The TUI
// uses it to preview avatar portraits, which a terminal cannot render.
package browser

import (
	"os/exec"
	"runtime"
)

// Open launches url with the platform's opener without waiting on it.
func Open(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	return cmd.Start()
}
