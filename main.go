// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"flag"

	"github.com/gopxl/mainthread/v2"

	"skelview/viewer"
)

func main() {
	flag.Parse()
	mainthread.Run(viewer.Run)
}
