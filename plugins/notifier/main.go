// Command notifier is a Mudra plugin that shows a desktop notification when
// a gesture triggers. It reads a JSON request on stdin and writes a JSON
// response on stdout.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

type request struct {
	Action string          `json:"action"`
	Config json.RawMessage `json:"config"`
	Params json.RawMessage `json:"params"`
}

type response struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type notifyConfig struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func main() {
	var req request
	if err := json.NewDecoder(os.Stdin).Decode(&req); err != nil {
		respond(response{Success: false, Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}

	if req.Action != "notify" {
		respond(response{Success: false, Error: fmt.Sprintf("unknown action: %s", req.Action)})
		return
	}

	cfg := notifyConfig{Title: "Mudra", Message: "Gesture triggered"}
	if len(req.Config) > 0 {
		if err := json.Unmarshal(req.Config, &cfg); err != nil {
			respond(response{Success: false, Error: fmt.Sprintf("invalid config: %v", err)})
			return
		}
	}
	if cfg.Title == "" {
		cfg.Title = "Mudra"
	}
	if cfg.Message == "" {
		cfg.Message = "Gesture triggered"
	}

	if err := notify(cfg.Title, cfg.Message); err != nil {
		respond(response{Success: false, Error: err.Error()})
		return
	}

	respond(response{Success: true})
}

// notify shows a desktop notification with the platform's native mechanism.
func notify(title, message string) error {
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", message, title)
		return exec.Command("osascript", "-e", script).Run()
	case "windows":
		script := fmt.Sprintf(
			"[System.Reflection.Assembly]::LoadWithPartialName('System.Windows.Forms') | Out-Null; "+
				"$n = New-Object System.Windows.Forms.NotifyIcon; "+
				"$n.Icon = [System.Drawing.SystemIcons]::Information; "+
				"$n.Visible = $true; "+
				"$n.ShowBalloonTip(5000, %q, %q, 'Info')",
			title, message,
		)
		return exec.Command("powershell", "-NoProfile", "-Command", script).Run()
	default:
		return exec.Command("notify-send", title, message).Run()
	}
}

func respond(resp response) {
	json.NewEncoder(os.Stdout).Encode(resp)
}
