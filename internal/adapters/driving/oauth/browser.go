package oauth

import (
	"fmt"
	"os/exec"
	"runtime"
)

// OpenBrowser starts the platform's URL handler for url and returns
// without waiting for it.
func OpenBrowser(url string) error {
	var name string
	var args []string
	switch runtime.GOOS {
	case "windows":
		name, args = "rundll32", []string{"url.dll,FileProtocolHandler", url}
	case "darwin":
		name, args = "open", []string{url}
	case "linux", "freebsd", "openbsd", "netbsd":
		name, args = "xdg-open", []string{url}
	default:
		return fmt.Errorf("open browser: unsupported platform %s", runtime.GOOS)
	}
	return exec.Command(name, args...).Start()
}
