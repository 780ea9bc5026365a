//go:build !windows

package proc

func killCommand(name string) []string {
	return []string{"pkill", "-x", name}
}
