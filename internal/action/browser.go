package action

import (
	"os/exec"
	"runtime"
)

// Browser opens a URL in the user's default browser. The call is
// fire-and-forget: success means the open request was issued, not that a
// page loaded.
type Browser interface {
	OpenURL(url string) error
}

// NewBrowser returns the platform browser capability.
func NewBrowser() Browser {
	return systemBrowser{}
}

type systemBrowser struct{}

func (systemBrowser) OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the helper process without blocking the tick loop.
	go cmd.Wait()
	return nil
}
