package main

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/intio/tilewm/internal/ring"
	"github.com/intio/tilewm/layout"
)

var errQuit = errors.New("quit")

// command is an action reachable from key bindings and the HTTP API.
type command struct {
	usage string
	run   func(wm *WM, args []string) error
}

var commands = map[string]command{
	"cycle_client": {"cycle_client forward|backward", withDirection((*WM).CycleClient)},
	"drag_client":  {"drag_client forward|backward", withDirection((*WM).DragClient)},
	"cycle_layout": {"cycle_layout forward|backward", withDirection((*WM).CycleLayout)},
	"max_main":     {"max_main more|less", withChange((*WM).UpdateMaxMain)},
	"main_ratio":   {"main_ratio more|less", withChange((*WM).UpdateMainRatio)},
	"kill": {"kill", func(wm *WM, _ []string) error {
		return wm.KillFocused(false)
	}},
	"destroy": {"destroy", func(wm *WM, _ []string) error {
		return wm.KillFocused(true)
	}},
	"workspace":         {"workspace NAME|N", withWorkspace((*WM).SwitchWorkspace)},
	"send_to_workspace": {"send_to_workspace NAME|N", withWorkspace((*WM).SendToWorkspace)},
	"spawn": {"spawn CMD [ARGS...]", func(wm *WM, args []string) error {
		if len(args) == 0 {
			return errors.New("spawn: missing command")
		}
		return wm.spawn(args[0], args[1:]...)
	}},
	"quit": {"quit", func(*WM, []string) error {
		return errQuit
	}},
}

func withDirection(fn func(*WM, ring.Direction) error) func(*WM, []string) error {
	return func(wm *WM, args []string) error {
		if len(args) != 1 {
			return errors.New("expected a direction")
		}
		d, ok := ring.ParseDirection(args[0])
		if !ok {
			return fmt.Errorf("invalid direction %q", args[0])
		}
		return fn(wm, d)
	}
}

func withChange(fn func(*WM, layout.Change) error) func(*WM, []string) error {
	return func(wm *WM, args []string) error {
		if len(args) != 1 {
			return errors.New("expected more or less")
		}
		c, ok := layout.ParseChange(args[0])
		if !ok {
			return fmt.Errorf("invalid change %q", args[0])
		}
		return fn(wm, c)
	}
}

func withWorkspace(fn func(*WM, int) error) func(*WM, []string) error {
	return func(wm *WM, args []string) error {
		if len(args) != 1 {
			return errors.New("expected a workspace")
		}
		i, err := wm.workspaceIndex(args[0])
		if err != nil {
			return err
		}
		return fn(wm, i)
	}
}

func lookupCommand(line string) (command, []string, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return command{}, nil, errors.New("empty command")
	}
	cmd, ok := commands[fields[0]]
	if !ok {
		return command{}, nil, fmt.Errorf("unknown command %q", fields[0])
	}
	return cmd, fields[1:], nil
}

// checkCommand reports whether line names a known command.
func checkCommand(line string) error {
	_, _, err := lookupCommand(line)
	return err
}

// Exec runs a command line such as "cycle_client forward". It must be
// called from the goroutine running Run.
func (wm *WM) Exec(line string) error {
	cmd, args, err := lookupCommand(line)
	if err != nil {
		return err
	}
	name := strings.Fields(line)[0]
	commandsTotal.WithLabelValues(name).Inc()
	log.Debug("exec", "command", line)

	err = cmd.run(wm, args)
	if errors.Is(err, errQuit) {
		wm.quitting = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("%s: %w (usage: %s)", name, err, cmd.usage)
	}
	return nil
}

func spawn(cmd string, args ...string) error {
	c := exec.Command(cmd, args...)
	if err := c.Start(); err != nil {
		return err
	}
	go c.Wait()
	return nil
}
