package platform

import "os/exec"

func audioCommand(path string) (string, []string, bool) {
	for _, candidate := range []string{"paplay", "pw-play", "aplay"} {
		resolved, err := exec.LookPath(candidate)
		if err != nil {
			continue
		}
		if candidate == "aplay" {
			return resolved, []string{"-q", path}, true
		}
		return resolved, []string{path}, true
	}
	return "", nil, false
}
