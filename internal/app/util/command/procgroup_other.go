//go:build !unix

package command

import "os/exec"

// setProcessGroup keeps the exec default of killing only the direct child.
func setProcessGroup(*exec.Cmd) {}
