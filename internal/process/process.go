// Package process runs external tools so that cancelling the context stops
// the tool and every child it spawned (pandoc starts xelatex, for instance).
package process

import (
	"context"
	"os/exec"
	"time"
)

// WaitDelay bounds how long Wait blocks for output pipes after the process
// group was killed.
const WaitDelay = 5 * time.Second

// CommandContext is exec.CommandContext with the process placed in its own
// group; cancellation kills the whole group instead of the leader only.
func CommandContext(ctx context.Context, name string, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, name, args...)
	setProcessGroup(cmd)
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		KillProcessGroup(cmd.Process.Pid)
		return cmd.Process.Kill()
	}
	cmd.WaitDelay = WaitDelay
	return cmd
}
