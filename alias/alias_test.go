// SPDX-License-Identifier: GPL-2.0-or-later

package alias

import (
	"fmt"
	"testing"

	"skelview/cbuf"
	"skelview/cmd"
	"skelview/conlog"
)

func TestAliasRegister(t *testing.T) {
	al := New()
	cmds := cmd.New()
	if err := al.Register(cmds); err != nil {
		t.Fatal(err)
	}
	if err := al.Register(cmds); err == nil {
		t.Errorf("second Register succeeded")
	}
}

func TestExecuteAlias(t *testing.T) {
	al := New()
	cmds := cmd.New()
	if err := al.Register(cmds); err != nil {
		t.Fatal(err)
	}
	cb := cbuf.CommandBuffer{}
	boneCount := 0
	p := func(cb *cbuf.CommandBuffer, a cmd.Arguments) (bool, error) {
		if a.Full() != "nextbone" {
			t.Errorf("Full() = %q, want %q", a.Full(), "nextbone")
		} else {
			boneCount++
		}
		return true, nil
	}
	cb.SetCommandExecutors([]cbuf.Efunc{
		cbuf.Commands(cmds), // execute 'alias'
		al.Execute(),        // execute 'skip'
		p,                   // execute 'nextbone'
	})

	cb.AddText("alias skip nextbone\n")
	cb.Execute()
	cb.AddText("skip\n")
	cb.AddText("nextbone\n")
	cb.Execute()
	if boneCount != 2 {
		// for 'skip' -> 'nextbone' and 'nextbone'
		t.Errorf("Executed 'nextbone' %d times, want %d", boneCount, 2)
	}
}

func TestPrintAlias(t *testing.T) {
	var pfout, spfout string
	pf := func(s string, a ...any) {
		pfout += fmt.Sprintf(s, a...)
	}
	spf := func(s string, a ...any) {
		spfout += fmt.Sprintf(s, a...)
	}
	conlog.SetPrintf(pf)
	conlog.SetSafePrintf(spf)
	al := New()
	cmds := cmd.New()
	if err := al.Register(cmds); err != nil {
		t.Fatal(err)
	}
	cb := cbuf.CommandBuffer{}
	cb.SetCommandExecutors([]cbuf.Efunc{
		cbuf.Commands(cmds),
		al.Execute(),
	})

	cb.AddText("alias big \"set bone_node_size 0.05; set bone_link_scale 2\"\n")
	cb.Execute()
	cb.AddText("alias\n")
	cb.Execute()
	if spfout != "  big: set bone_node_size 0.05; set bone_link_scale 2\n1 alias command(s)\n" {
		t.Errorf("%q", spfout)
	}
	cb.AddText("alias big\n")
	cb.Execute()
	if pfout != "  big: set bone_node_size 0.05; set bone_link_scale 2\n" {
		t.Errorf("%q", pfout)
	}
	cb.AddText("unalias big\n")
	cb.Execute()
	if _, ok := al.Get("big"); ok {
		t.Errorf("alias big still defined")
	}
}
