package hyprland

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"codeberg.org/miketth/hyprkeys/pkg/hyprkeys"
	"codeberg.org/miketth/hyprkeys/pkg/keymap"
	"codeberg.org/miketth/hyprkeys/pkg/window"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrDeviceNotFound  = errors.New("device not found")
	ErrWindowNotFound  = errors.New("window not found")
)

var errorMapper = []struct {
	re  *regexp.Regexp
	err error
}{
	{regexp.MustCompile(`^ok$`), nil},
	{regexp.MustCompile(`layout idx out of range`), ErrIndexOutOfRange},
	{regexp.MustCompile(`device not found`), ErrDeviceNotFound},
	{regexp.MustCompile(`(?i)no such window`), ErrWindowNotFound},
}

// Hyprctl talks to the Hyprland control socket.
type Hyprctl struct {
	// Self is the hyprkeys binary that binds run for actions.
	Self string
}

func NewHyprctl(self string) (*Hyprctl, error) {
	if self == "" {
		return nil, errors.New("path to the hyprkeys binary is empty")
	}
	return &Hyprctl{Self: self}, nil
}

func (c *Hyprctl) GetKeyboards() ([]hyprkeys.Keyboard, error) {
	resp, err := c.request("devices", "j")
	if err != nil {
		return nil, err
	}

	var devs devices
	if err := json.Unmarshal(resp, &devs); err != nil {
		return nil, fmt.Errorf("unmarshal devices: %w", err)
	}

	out := make([]hyprkeys.Keyboard, 0, len(devs.Keyboards))
	for _, k := range devs.Keyboards {
		out = append(out, k.ToKeyboard())
	}

	return out, nil
}

func (c *Hyprctl) ActiveWindow() (window.Descriptor, window.Handle, error) {
	resp, err := c.request("activewindow", "j")
	if err != nil {
		return window.Descriptor{}, "", err
	}

	var cl client
	if err := json.Unmarshal(resp, &cl); err != nil {
		return window.Descriptor{}, "", fmt.Errorf("unmarshal active window: %w", err)
	}
	if cl.Address == "" {
		return window.Descriptor{}, "", nil
	}

	return cl.descriptor(processName(cl.PID)), cl.Handle(), nil
}

func (c *Hyprctl) clients() ([]client, error) {
	resp, err := c.request("clients", "j")
	if err != nil {
		return nil, err
	}

	var clients []client
	if err := json.Unmarshal(resp, &clients); err != nil {
		return nil, fmt.Errorf("unmarshal clients: %w", err)
	}
	return clients, nil
}

// ActivateWindow focuses the most recently focused window accepted by match.
// It returns the zero Handle if no window matches.
func (c *Hyprctl) ActivateWindow(match window.Predicate) (window.Handle, error) {
	clients, err := c.clients()
	if err != nil {
		return "", fmt.Errorf("list clients: %w", err)
	}

	cl, found := pickWindow(clients, match, processName)
	if !found {
		return "", nil
	}

	resp, err := c.request("dispatch focuswindow address:"+cl.Address, "")
	if err != nil {
		return "", err
	}
	if err := checkResponse(resp); err != nil {
		return "", fmt.Errorf("focus %s: %w", cl.Address, err)
	}

	return cl.Handle(), nil
}

func pickWindow(clients []client, match window.Predicate, procName func(int) string) (client, bool) {
	var candidates []client
	for _, cl := range clients {
		if !cl.Mapped || cl.Hidden {
			continue
		}
		if match(cl.descriptor(procName(cl.PID))) {
			candidates = append(candidates, cl)
		}
	}
	if len(candidates) == 0 {
		return client{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].FocusHistoryID < candidates[j].FocusHistoryID
	})
	return candidates[0], true
}

func (c *Hyprctl) ShellExecute(command string, args string, opts hyprkeys.ExecOptions) error {
	resp, err := c.request("dispatch exec "+execLine(command, args, opts), "")
	if err != nil {
		return err
	}
	return checkResponse(resp)
}

func execLine(command, args string, opts hyprkeys.ExecOptions) string {
	line := command
	if args != "" {
		line += " " + args
	}
	if opts.Maximized {
		line = "[maximize] " + line
	}
	return line
}

func (c *Hyprctl) InstallBinds(table keymap.Table) error {
	cmds, err := CompileBinds(table, BindOptions{Self: c.Self})
	if err != nil {
		return fmt.Errorf("compile binds: %w", err)
	}
	return c.batch(cmds)
}

func (c *Hyprctl) RemoveBinds(table keymap.Table) error {
	cmds, err := CompileUnbinds(table)
	if err != nil {
		return fmt.Errorf("compile unbinds: %w", err)
	}
	return c.batch(cmds)
}

func (c *Hyprctl) batch(cmds []string) error {
	if len(cmds) == 0 {
		return nil
	}

	resp, err := c.request("[[BATCH]]"+strings.Join(cmds, ";"), "")
	if err != nil {
		return err
	}
	return checkResponse(resp)
}

func (c *Hyprctl) request(request string, flags string) ([]byte, error) {
	conn, err := connect(Socket1)
	if err != nil {
		return nil, fmt.Errorf("connect to hyprctl socket: %w", err)
	}
	defer conn.Close()

	msg := request
	if flags != "" {
		msg = flags + "/" + request
	}
	if _, err := conn.Write([]byte(msg)); err != nil {
		return nil, fmt.Errorf("write to hyprctl socket: %w", err)
	}

	resp, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("read from hyprctl socket: %w", err)
	}
	return resp, nil
}

// checkResponse maps every reply in a (possibly batched) response to an error.
func checkResponse(resp []byte) error {
	for _, reply := range strings.Split(string(resp), "\n\n") {
		// replies of a batch are not always separated
		if strings.Trim(reply, "ok\n ") == "" {
			continue
		}
		reply = strings.TrimSpace(reply)
		if err := mapReply(reply); err != nil {
			return err
		}
	}
	return nil
}

func mapReply(reply string) error {
	for _, m := range errorMapper {
		if m.re.MatchString(reply) {
			return m.err
		}
	}
	return fmt.Errorf("unknown hyprctl error: %s", reply)
}
