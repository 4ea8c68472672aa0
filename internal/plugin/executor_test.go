package plugin

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

// writePlugin creates a plugin directory with a shell-script executable.
func writePlugin(t *testing.T, name, script string) *Plugin {
	t.Helper()

	dir := t.TempDir()
	scriptPath := filepath.Join(dir, name+".sh")
	if err := os.WriteFile(scriptPath, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}

	return &Plugin{
		Manifest: Manifest{
			Name:       name,
			Version:    "1.0.0",
			Executable: name + ".sh",
			Actions:    []string{"run"},
		},
		Path:       dir,
		Executable: scriptPath,
	}
}

func TestExecutor_Execute(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	p := writePlugin(t, "ok", `#!/bin/sh
cat <<'EOF'
{"success":true,"data":{"message":"done"}}
EOF
`)

	executor := NewExecutor(5 * time.Second)
	resp, err := executor.Execute(p, &Request{Action: "run"})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	if !resp.Success {
		t.Error("expected success=true")
	}

	var data map[string]interface{}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("failed to unmarshal response data: %v", err)
	}
	if data["message"] != "done" {
		t.Errorf("expected message 'done', got %v", data["message"])
	}
}

func TestExecutor_Execute_ReadsStdin(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	p := writePlugin(t, "echo", `#!/bin/sh
INPUT=$(cat)
echo "{\"success\":true,\"data\":{\"received\":$INPUT}}"
`)

	executor := NewExecutor(5 * time.Second)
	resp, err := executor.Execute(p, &Request{
		Action: "run",
		Config: json.RawMessage(`{"volume":"high"}`),
	})
	if err != nil {
		t.Fatalf("Execute() failed: %v", err)
	}

	var data struct {
		Received Request `json:"received"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatalf("failed to unmarshal response data: %v", err)
	}
	if data.Received.Action != "run" {
		t.Errorf("expected plugin to receive action 'run', got %q", data.Received.Action)
	}
}

func TestExecutor_Execute_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	p := writePlugin(t, "slow", `#!/bin/sh
sleep 10
`)

	executor := NewExecutor(100 * time.Millisecond)
	_, err := executor.Execute(p, &Request{Action: "run"})
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("expected timeout error, got: %v", err)
	}
}

func TestExecutor_Execute_InvalidOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	p := writePlugin(t, "garbage", `#!/bin/sh
echo "this is not json"
`)

	executor := NewExecutor(5 * time.Second)
	if _, err := executor.Execute(p, &Request{Action: "run"}); err == nil {
		t.Fatal("expected parse error for invalid plugin output")
	}
}

func TestExecutor_Execute_Failure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("skipping test on Windows")
	}

	p := writePlugin(t, "fail", `#!/bin/sh
echo "boom" >&2
exit 1
`)

	executor := NewExecutor(5 * time.Second)
	_, err := executor.Execute(p, &Request{Action: "run"})
	if err == nil {
		t.Fatal("expected execution error")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("expected stderr in error, got: %v", err)
	}
}
