package platform

import "os/exec"

func audioCommand(path string) (string, []string, bool) {
	resolved, err := exec.LookPath("afplay")
	if err != nil {
		return "", nil, false
	}
	return resolved, []string{path}, true
}
