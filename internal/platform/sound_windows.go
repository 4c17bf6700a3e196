package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

func audioCommand(path string) (string, []string, bool) {
	resolved, err := exec.LookPath("powershell")
	if err != nil {
		return "", nil, false
	}
	quoted := strings.ReplaceAll(path, "'", "''")
	script := fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", quoted)
	return resolved, []string{"-NoProfile", "-NonInteractive", "-Command", script}, true
}
