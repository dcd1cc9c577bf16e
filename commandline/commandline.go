// SPDX-License-Identifier: GPL-2.0-or-later

package commandline

import (
	"flag"
	"fmt"
	"strconv"
)

var (
	fullscreen bool

	developer = boolInt{false, 1}

	height int
	width  int

	basedir string
	config  string
)

type boolInt struct {
	set bool
	num int
}

func (b *boolInt) IsBoolFlag() bool {
	// We can not support both "-flag" and "-flag 10"
	// This allows "-flag", and "-flag=10"
	// and also "-flag=true" and "-flag=false"
	// but not "-flag 10"
	return true
}

func (b *boolInt) Set(s string) error {
	v, err := strconv.ParseInt(s, 0, strconv.IntSize)
	if err != nil {
		v, err := strconv.ParseBool(s)
		b.set = v
		return err
	}
	b.set = v != 0
	b.num = int(v)
	return nil
}

func (b *boolInt) String() string {
	return fmt.Sprintf("Set: %v, Num: %v", b.set, b.num)
}

func register(fs *flag.FlagSet) {
	fs.BoolVar(&fullscreen, "f", false, "")
	fs.BoolVar(&fullscreen, "fullscreen", false, "Start in fullscreen mode")
	fs.Var(&developer, "developer", "Enable debug logging")
	fs.IntVar(&height, "height", 0, "Window height, overrides vid_height")
	fs.IntVar(&width, "width", 0, "Window width, overrides vid_width")
	fs.StringVar(&basedir, "basedir", "", "Directory relative model paths are resolved against")
	fs.StringVar(&config, "config", "", "Config file, default ~/.skelview/config.toml")
}

func init() {
	register(flag.CommandLine)
}

func Fullscreen() bool {
	return fullscreen
}

// Developer reports -developer and its level.
func Developer() (bool, int) {
	return developer.set, developer.num
}

func Width() int {
	return width
}

func Height() int {
	return height
}

func BaseDirectory() string {
	return basedir
}

func ConfigFile() string {
	return config
}

// Files are the model files named after the flags.
func Files() []string {
	return flag.Args()
}
