//go:build !linux && !darwin && !windows

package platform

func audioCommand(string) (string, []string, bool) {
	return "", nil, false
}
