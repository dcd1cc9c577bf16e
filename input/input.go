// SPDX-License-Identifier: GPL-2.0-or-later

// package input handles button event tracking and key bindings
package input

import (
	"fmt"
	"sort"
	"strings"

	"skelview/cmd"
	"skelview/scene"
)

type button struct {
	// key nums holding it down, can handle 2 keys with the same action
	holdingDown [2]int
	down        bool
}

var (
	Forward   button
	Back      button
	MoveLeft  button
	MoveRight button
	Up        button
	Down      button
	Look      button
)

func (b *button) Down() bool {
	return b.down
}

func (b *button) upKey(k int) {
	switch {
	case k < 0:
		// typed manually
		b.holdingDown = [2]int{}
	case b.holdingDown[0] == k:
		b.holdingDown[0] = 0
	case b.holdingDown[1] == k:
		b.holdingDown[1] = 0
	default:
		return
	}
	// some other key may still hold it down
	b.down = b.holdingDown[0] != 0 || b.holdingDown[1] != 0
}

func (b *button) downKey(k int) {
	switch {
	case b.holdingDown[0] == k || b.holdingDown[1] == k:
		// key repeat
	case b.holdingDown[0] == 0:
		b.holdingDown[0] = k
	case b.holdingDown[1] == 0:
		b.holdingDown[1] = k
	default:
		return
	}
	b.down = true
}

func keyArg(a cmd.Arguments) int {
	if len(a.Args()) < 2 {
		return -1
	}
	return a.Argv(1).Int()
}

func (b *button) upCmd() cmd.Func {
	return func(a cmd.Arguments) error {
		b.upKey(keyArg(a))
		return nil
	}
}

func (b *button) downCmd() cmd.Func {
	return func(a cmd.Arguments) error {
		b.downKey(keyArg(a))
		return nil
	}
}

// Commands registers the +name and -name pairs of every button.
func Commands(c *cmd.Commands) error {
	for _, b := range []struct {
		name string
		b    *button
	}{
		{"forward", &Forward},
		{"back", &Back},
		{"moveleft", &MoveLeft},
		{"moveright", &MoveRight},
		{"moveup", &Up},
		{"movedown", &Down},
		{"look", &Look},
	} {
		if err := c.Add("+"+b.name, b.b.downCmd()); err != nil {
			return err
		}
		if err := c.Add("-"+b.name, b.b.upCmd()); err != nil {
			return err
		}
	}
	return nil
}

// Controls snapshots the buttons for one frame.
func Controls(mouseX, mouseY float32) scene.Controls {
	return scene.Controls{
		Forward: Forward.down,
		Back:    Back.down,
		Left:    MoveLeft.down,
		Right:   MoveRight.down,
		Up:      Up.down,
		Down:    Down.down,
		Look:    Look.down,
		MouseX:  mouseX,
		MouseY:  mouseY,
	}
}

// Bindings maps lower case key names to console lines.
type Bindings map[string]string

// DefaultBindings is the viewer layout.
func DefaultBindings() Bindings {
	return Bindings{
		"w":        "+forward",
		"s":        "+back",
		"a":        "+moveleft",
		"d":        "+moveright",
		"e":        "+moveup",
		"q":        "+movedown",
		"mouse1":   "+look",
		"delete":   "remove",
		"p":        "meshlist",
		"tab":      "nextmodel",
		"b":        "prevbone",
		"n":        "nextbone",
		"pageup":   "recent -1",
		"pagedown": "recent 1",
		"f12":      "screenshot",
	}
}

func (b Bindings) Bind(key, line string) {
	b[strings.ToLower(key)] = line
}

// Line is the console line for a key event. Lines of +commands run on both
// press and release, with the key number appended; others only on press.
func (b Bindings) Line(key string, keynum int, down bool) (string, bool) {
	line, ok := b[strings.ToLower(key)]
	if !ok {
		return "", false
	}
	if strings.HasPrefix(line, "+") {
		if !down {
			line = "-" + line[1:]
		}
		return fmt.Sprintf("%s %d", line, keynum), true
	}
	if !down {
		return "", false
	}
	return line, true
}

// Keys lists the bound keys in order.
func (b Bindings) Keys() []string {
	keys := make([]string, 0, len(b))
	for k := range b {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
