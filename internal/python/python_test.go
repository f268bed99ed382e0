package python

import (
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/outpost-mcp/outpost/internal/runner"
)

// newTestExecutor uses sh as the interpreter. It accepts -c <code>
// exactly like python3 does, so every classification path can be
// exercised without requiring a Python install on the test host.
func newTestExecutor() *Executor {
	return &Executor{
		Binary: "sh",
		Runner: &runner.Runner{
			Timeout:   10 * time.Second,
			MaxOutput: 1 << 20,
		},
	}
}

func TestExecute_Success(t *testing.T) {
	e := newTestExecutor()
	res := e.Execute(context.Background(), "echo 4")
	if res.IsError() {
		t.Fatalf("unexpected error result: %s", res.Error)
	}
	if !res.Success {
		t.Error("Success = false, want true")
	}
	if res.ExitCode != 0 {
		t.Errorf("ExitCode = %d, want 0", res.ExitCode)
	}
	if res.Stdout != "4\n" {
		t.Errorf("Stdout = %q, want %q", res.Stdout, "4\n")
	}
	if res.Stderr != "" {
		t.Errorf("Stderr = %q, want empty", res.Stderr)
	}
	if res.RunID == "" {
		t.Error("RunID is empty")
	}
}

func TestExecute_NonZeroExit(t *testing.T) {
	e := newTestExecutor()
	res := e.Execute(context.Background(), "exit 3")
	if res.IsError() {
		t.Fatalf("unexpected error result: %s", res.Error)
	}
	if res.Success {
		t.Error("Success = true, want false")
	}
	if res.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", res.ExitCode)
	}
}

func TestExecute_StderrSurfaced(t *testing.T) {
	e := newTestExecutor()
	res := e.Execute(context.Background(), "echo broken >&2; exit 1")
	if res.Success {
		t.Error("Success = true, want false")
	}
	if !strings.Contains(res.Stderr, "broken") {
		t.Errorf("Stderr = %q, want to contain 'broken'", res.Stderr)
	}
}

func TestExecute_EmptyCode(t *testing.T) {
	e := newTestExecutor()
	for _, code := range []string{"", "   ", "\n\t\n"} {
		res := e.Execute(context.Background(), code)
		if res.Error != "No Python code provided to execute" {
			t.Errorf("Execute(%q): Error = %q, want validation message", code, res.Error)
		}
		if res.ExitCode != -1 {
			t.Errorf("Execute(%q): ExitCode = %d, want -1", code, res.ExitCode)
		}
		if res.Stdout != "" || res.Stderr != "" {
			t.Errorf("Execute(%q): error result carries output: stdout=%q stderr=%q", code, res.Stdout, res.Stderr)
		}
	}
}

func TestExecute_Timeout(t *testing.T) {
	e := newTestExecutor()
	e.Runner.Timeout = 200 * time.Millisecond

	start := time.Now()
	res := e.Execute(context.Background(), "sleep 30")
	if !res.IsError() {
		t.Fatalf("expected error result, got exit %d", res.ExitCode)
	}
	if !strings.HasPrefix(res.Error, "Execution timed out") {
		t.Errorf("Error = %q, want timeout message", res.Error)
	}
	if res.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", res.ExitCode)
	}
	if res.Stdout != "" || res.Stderr != "" {
		t.Errorf("timeout result carries output: stdout=%q stderr=%q", res.Stdout, res.Stderr)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Execute took %v, process outlived the deadline", elapsed)
	}
}

func TestExecute_TimeoutMessageSeconds(t *testing.T) {
	e := newTestExecutor()
	e.Runner.Timeout = 10 * time.Second
	out := &runner.Outcome{Kind: runner.TimedOut}
	res := e.classify(out)
	if res.Error != "Execution timed out (exceeded 10 seconds)" {
		t.Errorf("Error = %q, want 10-second message", res.Error)
	}
}

func TestExecute_MissingInterpreter(t *testing.T) {
	e := newTestExecutor()
	e.Binary = "nonexistent-python-xyz-123"
	res := e.Execute(context.Background(), "print(1)")
	if !res.IsError() {
		t.Fatal("expected error result for missing interpreter")
	}
	if !strings.HasPrefix(res.Error, "Failed to execute nonexistent-python-xyz-123:") {
		t.Errorf("Error = %q, want launch failure message", res.Error)
	}
	if res.ExitCode != -1 {
		t.Errorf("ExitCode = %d, want -1", res.ExitCode)
	}
}

func TestExecute_Python(t *testing.T) {
	if _, err := exec.LookPath("python3"); err != nil {
		t.Skip("python3 not available")
	}
	e := newTestExecutor()
	e.Binary = "python3"

	res := e.Execute(context.Background(), "print(2+2)")
	if !res.Success {
		t.Fatalf("Success = false: error=%q stderr=%q", res.Error, res.Stderr)
	}
	if res.Stdout != "4\n" {
		t.Errorf("Stdout = %q, want %q", res.Stdout, "4\n")
	}

	res = e.Execute(context.Background(), "import sys; sys.exit(3)")
	if res.IsError() {
		t.Fatalf("unexpected error result: %s", res.Error)
	}
	if res.Success || res.ExitCode != 3 {
		t.Errorf("got success=%v exit=%d, want failure with exit 3", res.Success, res.ExitCode)
	}
}

func TestClip(t *testing.T) {
	long := strings.Repeat("x", 500)
	got := clip(long)
	if len(got) != maxDetailLen+3 {
		t.Errorf("len(clip(long)) = %d, want %d", len(got), maxDetailLen+3)
	}
	if clip("short") != "short" {
		t.Error("clip altered text under the cap")
	}
}
