//go:build !linux

package sysmon

func affinityCount() (int, error) {
	return 0, errUnsupported
}
