//go:build windows

package priv

import "golang.org/x/sys/windows"

func elevated() (bool, error) {
	return windows.GetCurrentProcessToken().IsElevated(), nil
}
