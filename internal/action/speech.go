package action

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
)

// ErrNoSpeechCommand is returned when no platform speech command exists.
var ErrNoSpeechCommand = errors.New("no speech command available")

// Speaker voices short feedback phrases. Speech is strictly best-effort.
type Speaker interface {
	Say(text string) error
}

// NewSpeaker probes the platform for a usable text-to-speech command and
// returns a Speaker bound to it. Callers treat a failed probe as "no speech
// capability" and hold a nil Speaker rather than retrying.
func NewSpeaker() (Speaker, error) {
	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{"say"}
	case "windows":
		candidates = []string{"powershell"}
	default:
		candidates = []string{"espeak", "spd-say"}
	}

	for _, candidate := range candidates {
		if path, err := exec.LookPath(candidate); err == nil {
			return &commandSpeaker{path: path}, nil
		}
	}
	return nil, ErrNoSpeechCommand
}

// commandSpeaker shells out to a platform speech command, fire-and-forget.
type commandSpeaker struct {
	path string
}

func (s *commandSpeaker) Say(text string) error {
	var cmd *exec.Cmd
	if filepath.Base(s.path) == "powershell" || filepath.Base(s.path) == "powershell.exe" {
		script := fmt.Sprintf(
			"Add-Type -AssemblyName System.Speech; (New-Object System.Speech.Synthesis.SpeechSynthesizer).Speak(%q)",
			text,
		)
		cmd = exec.Command(s.path, "-NoProfile", "-Command", script)
	} else {
		cmd = exec.Command(s.path, text)
	}

	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}
