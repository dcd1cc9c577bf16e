// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"skelview/cmd"
	"skelview/conlog"
)

var (
	cvarArray  []*Cvar
	cvarByName = make(map[string]*Cvar)
)

type flag uint64

const (
	// cvar flags bitfield
	NONE    flag = 0
	ARCHIVE flag = 1      // written back to the config file
	NOTIFY  flag = 1 << 1 // changes are logged
	ROM     flag = 1 << 6 // read only after registration
)

type CallbackFunc func(cv *Cvar)

type Cvar struct {
	archive  bool
	notify   bool
	rom      bool
	user     bool
	callback CallbackFunc
	name     string
	// stringValue is the truth, value the derived one
	stringValue  string
	value        float32
	defaultValue string
	id           int
}

func All() []*Cvar {
	return cvarArray
}

func (cv *Cvar) Archive() bool     { return cv.archive }
func (cv *Cvar) Notify() bool      { return cv.notify }
func (cv *Cvar) UserDefined() bool { return cv.user }
func (cv *Cvar) ID() int           { return cv.id }
func (cv *Cvar) Name() string      { return cv.name }
func (cv *Cvar) String() string    { return cv.stringValue }
func (cv *Cvar) Value() float32    { return cv.value }
func (cv *Cvar) Default() string   { return cv.defaultValue }

// SetCallback installs cb and runs it once with the current value.
func (cv *Cvar) SetCallback(cb CallbackFunc) {
	cv.callback = cb
	if cb != nil {
		cb(cv)
	}
}

func (cv *Cvar) SetByString(s string) {
	if cv.rom || s == cv.stringValue {
		return
	}
	cv.set(s)
}

func (cv *Cvar) set(s string) {
	cv.stringValue = s
	pf, _ := strconv.ParseFloat(cv.stringValue, 32)
	cv.value = float32(pf)
	if cv.notify {
		conlog.Printf("\"%s\" changed to \"%s\"\n", cv.name, s)
	}
	if cv.callback != nil {
		cv.callback(cv)
	}
}

func (cv *Cvar) Reset() {
	cv.SetByString(cv.defaultValue)
}

func (cv *Cvar) SetValue(value float32) {
	if float32(int(value)) == value {
		cv.SetByString(strconv.FormatInt(int64(value), 10))
		return
	}
	cv.SetByString(strconv.FormatFloat(float64(value), 'f', -1, 32))
}

func (cv *Cvar) Toggle() {
	if cv.Bool() {
		cv.SetByString("0")
	} else {
		cv.SetByString("1")
	}
}

func (cv *Cvar) Bool() bool {
	return cv.stringValue != "0" && cv.stringValue != ""
}

// Int is the value truncated towards zero.
func (cv *Cvar) Int() int {
	return int(cv.value)
}

func Get(name string) (*Cvar, bool) {
	cv, ok := cvarByName[name]
	return cv, ok
}

func GetByID(id int) (*Cvar, error) {
	if id < 0 || id >= len(cvarArray) {
		return nil, fmt.Errorf("id out of bounds")
	}
	return cvarArray[id], nil
}

// Set changes a registered cvar by name.
func Set(name, value string) error {
	cv, ok := Get(name)
	if !ok {
		return fmt.Errorf("cvar %s not found", name)
	}
	if cv.rom {
		return fmt.Errorf("cvar %s is read only", name)
	}
	cv.SetByString(value)
	return nil
}

func create(name, value string) *Cvar {
	cv := &Cvar{name: name, defaultValue: value, id: len(cvarArray)}
	cv.set(value)
	cvarArray = append(cvarArray, cv)
	cvarByName[name] = cv
	return cv
}

func Register(name, value string, flags flag) (*Cvar, error) {
	if _, ok := cvarByName[name]; ok {
		return nil, fmt.Errorf("Can't register variable %s, already defined", name)
	}
	if cmd.Exists(name) {
		return nil, fmt.Errorf("Can't register variable %s, is a command", name)
	}
	cv := create(name, value)
	cv.archive = flags&ARCHIVE != 0
	cv.notify = flags&NOTIFY != 0
	cv.rom = flags&ROM != 0
	return cv, nil
}

func MustRegister(n, v string, flag flag) *Cvar {
	cv, err := Register(n, v, flag)
	if err != nil {
		log.Panic(err)
	}
	return cv
}

// Execute handles "name" and "name value" console lines.
func Execute(a cmd.Arguments) (bool, error) {
	args := a.Args()
	if len(args) == 0 {
		return false, nil
	}
	cv, ok := Get(args[0].String())
	if !ok {
		return false, nil
	}
	if len(args) == 1 {
		conlog.Printf("\"%s\" is \"%s\"\n", cv.Name(), cv.String())
		return true, nil
	}
	cv.SetByString(args[1].String())
	return true, nil
}

func init() {
	cmd.Must(cmd.AddCommand("cvarlist", list))
	cmd.Must(cmd.AddCommand("cycle", cycle))
	cmd.Must(cmd.AddCommand("inc", inc))
	cmd.Must(cmd.AddCommand("reset", reset))
	cmd.Must(cmd.AddCommand("resetall", resetAll))
	cmd.Must(cmd.AddCommand("set", set))
	cmd.Must(cmd.AddCommand("toggle", toggle))
}

func set(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) < 2 {
		conlog.Printf("set <cvar> <value>\n")
		return nil
	}
	n := args[0].String()
	if cmd.Exists(n) {
		conlog.Printf("conflict with command\n")
		return nil
	}
	if cv, ok := Get(n); ok {
		cv.SetByString(args[1].String())
		return nil
	}
	create(n, args[1].String()).user = true
	return nil
}

func toggle(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 1 {
		conlog.Printf("toggle <cvar> : toggle cvar\n")
		return nil
	}
	if cv, ok := Get(args[0].String()); ok {
		cv.Toggle()
	} else {
		conlog.Printf("toggle: variable %v not found\n", args[0])
	}
	return nil
}

func inc(a cmd.Arguments) error {
	args := a.Args()[1:]
	amount := float32(1)
	switch len(args) {
	case 2:
		amount = args[1].Float32()
	case 1:
	default:
		conlog.Printf("inc <cvar> [amount] : increment cvar\n")
		return nil
	}
	if cv, ok := Get(args[0].String()); ok {
		cv.SetValue(cv.Value() + amount)
	} else {
		conlog.Printf("inc: variable %v not found\n", args[0])
	}
	return nil
}

func reset(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) != 1 {
		conlog.Printf("reset <cvar> : reset cvar to default\n")
		return nil
	}
	if cv, ok := Get(args[0].String()); ok {
		cv.Reset()
	} else {
		conlog.Printf("reset: variable %v not found\n", args[0])
	}
	return nil
}

func resetAll(_ cmd.Arguments) error {
	for _, cv := range All() {
		cv.Reset()
	}
	return nil
}

// Matching returns the cvars whose name starts with prefix, sorted by name.
func Matching(prefix string) []*Cvar {
	var out []*Cvar
	for _, cv := range cvarArray {
		if strings.HasPrefix(cv.name, prefix) {
			out = append(out, cv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func list(a cmd.Arguments) error {
	prefix := a.Argv(1).String()
	cvars := Matching(prefix)
	for _, v := range cvars {
		mark := " "
		if v.Archive() {
			mark = "*"
		}
		conlog.SafePrintf("%s %s \"%s\"\n", mark, v.Name(), v.String())
	}
	if prefix == "" {
		conlog.SafePrintf("%v cvars\n", len(cvars))
		return nil
	}
	conlog.SafePrintf("%v cvars beginning with \"%s\"\n", len(cvars), prefix)
	return nil
}

func cycle(a cmd.Arguments) error {
	args := a.Args()[1:]
	if len(args) < 2 {
		conlog.Printf("cycle <cvar> <value list>: cycle cvar through a list of values\n")
		return nil
	}
	cv, ok := Get(args[0].String())
	if !ok {
		conlog.Printf("cycle: variable %v not found\n", args[0])
		return nil
	}
	values := args[1:]
	next := 0
	for i, v := range values {
		if v.String() == cv.String() {
			next = (i + 1) % len(values)
			break
		}
	}
	cv.SetByString(values[next].String())
	return nil
}
