package process

// Notes:
// - KillProcessGroup is only exercised with PIDs that cannot match a real
//   process: 0 or negative would target our own group.
// - TestCommandContext_CancelKillsGroup starts "sleep" and is skipped where
//   the binary is missing (Windows).

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"
)

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	KillProcessGroup(0)
	KillProcessGroup(-1)
	KillProcessGroup(999999999)
}

func TestCommandContext_Configured(t *testing.T) {
	t.Parallel()

	cmd := CommandContext(context.Background(), "pandoc", "--version")

	if cmd.Cancel == nil {
		t.Error("Cancel should be set")
	}
	if cmd.WaitDelay != WaitDelay {
		t.Errorf("WaitDelay = %v, want %v", cmd.WaitDelay, WaitDelay)
	}
	if cmd.SysProcAttr == nil {
		t.Error("SysProcAttr should place the process in its own group")
	}
}

func TestCommandContext_CancelKillsGroup(t *testing.T) {
	t.Parallel()

	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := CommandContext(ctx, "sleep", "30").Run()
	if err == nil {
		t.Fatal("Run() should fail when the context expires")
	}
	if !errors.Is(ctx.Err(), context.DeadlineExceeded) {
		t.Errorf("ctx.Err() = %v, want DeadlineExceeded", ctx.Err())
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("Run() returned after %v, process was not killed", elapsed)
	}
}
