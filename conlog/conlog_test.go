// SPDX-License-Identifier: GPL-2.0-or-later

package conlog

import (
	"fmt"
	"log"
	"testing"
)

func TestDebugf(t *testing.T) {
	var got []string
	SetPrintf(func(f string, v ...any) { got = append(got, fmt.Sprintf(f, v...)) })
	defer SetPrintf(log.Printf)
	defer SetDebug(false)

	Debugf("hidden %d", 1)
	if len(got) != 0 {
		t.Errorf("Debugf with debug off printed %q", got)
	}
	SetDebug(true)
	Debugf("shown %d", 2)
	if len(got) != 1 || got[0] != "shown 2" {
		t.Errorf("Debugf with debug on = %q, want [\"shown 2\"]", got)
	}
}
