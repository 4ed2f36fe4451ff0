package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Launcher starts an external command without waiting for it
type Launcher interface {
	Launch(name string, args ...string) error
}

type execLauncher struct{}

func (execLauncher) Launch(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

var defaultLauncher Launcher = execLauncher{}

// Open opens the URL in the system's default browser
func Open(url string) error {
	return openOn(runtime.GOOS, url, defaultLauncher)
}

func openOn(goos, url string, l Launcher) error {
	switch goos {
	case "linux":
		return l.Launch("xdg-open", url)
	case "darwin":
		return l.Launch("open", url)
	case "windows":
		return l.Launch("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform: %s", goos)
	}
}
