package action

import "os/exec"

// Launcher starts an external program without waiting for it to finish.
type Launcher interface {
	Start(path string) error
}

// NewLauncher returns the process-spawning launcher capability.
func NewLauncher() Launcher {
	return processLauncher{}
}

type processLauncher struct{}

func (processLauncher) Start(path string) error {
	cmd := exec.Command(path)
	if err := cmd.Start(); err != nil {
		return err
	}
	// Reap the child without blocking the tick loop.
	go cmd.Wait()
	return nil
}
