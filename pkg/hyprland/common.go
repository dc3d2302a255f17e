package hyprland

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

func connect(sock socketType) (net.Conn, error) {
	socketPath, err := getSocketPath(sock)
	if err != nil {
		return nil, fmt.Errorf("get socket path: %w", err)
	}

	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}

	return conn, nil
}

type socketType int

const (
	Socket1 socketType = iota
	Socket2
)

func (s socketType) fileName() (string, error) {
	switch s {
	case Socket1:
		return ".socket.sock", nil
	case Socket2:
		return ".socket2.sock", nil
	}
	return "", fmt.Errorf("unknown socket type: %d", s)
}

// runtimeDirs are searched in order; Hyprland moved its sockets from /tmp to
// the XDG runtime dir in 0.40.
var runtimeDirs = func() []string {
	return []string{filepath.Join(xdg.RuntimeDir, "hypr"), "/tmp/hypr"}
}

func getSocketPath(sock socketType) (string, error) {
	signature := os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")
	if signature == "" {
		return "", fmt.Errorf("HYPRLAND_INSTANCE_SIGNATURE is not set, %w", ErrNotRunning)
	}

	name, err := sock.fileName()
	if err != nil {
		return "", err
	}

	dirs := runtimeDirs()
	for _, dir := range dirs {
		path := filepath.Join(dir, signature, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return filepath.Join(dirs[0], signature, name), nil
}
