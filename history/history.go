// SPDX-License-Identifier: GPL-2.0-or-later

// Package history keeps the recently opened model files.
package history

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	// add a max size to prevent the file from growing indefinitely
	maxHistory = 32

	Filename = "history.pb"
)

// History is a list of files, oldest first, with a cursor for stepping
// through it. The cursor rests one past the newest entry.
type History struct {
	txt []string
	idx int
}

func (h *History) String() string {
	if len(h.txt) == h.idx {
		return ""
	}
	return h.txt[h.idx]
}

func (h *History) Up() {
	if h.idx > 0 {
		h.idx--
	}
}

func (h *History) Down() {
	if h.idx < len(h.txt) {
		h.idx++
	}
}

// Add appends s as the newest entry. An older copy of s is removed.
func (h *History) Add(s string) {
	h.txt = slices.DeleteFunc(h.txt, func(e string) bool { return e == s })
	h.txt = append(h.txt, s)
	if len(h.txt) > maxHistory {
		h.txt = h.txt[len(h.txt)-maxHistory:]
	}
	h.idx = len(h.txt)
}

func (h *History) Entries() []string {
	return h.txt
}

// Load reads the list stored in path. A missing file is an empty history.
func (h *History) Load(path string) error {
	in, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "read history")
	}
	data := &structpb.ListValue{}
	if err := proto.Unmarshal(in, data); err != nil {
		return errors.Wrap(err, "decode history")
	}
	h.txt = h.txt[:0]
	for _, v := range data.GetValues() {
		if s := v.GetStringValue(); s != "" {
			h.txt = append(h.txt, s)
		}
	}
	h.idx = len(h.txt)
	return nil
}

func (h *History) Save(path string) error {
	l := len(h.txt) - min(len(h.txt), maxHistory)
	data := &structpb.ListValue{}
	for _, s := range h.txt[l:] {
		data.Values = append(data.Values, structpb.NewStringValue(s))
	}
	out, err := proto.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "encode history")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(err, "history directory")
	}
	if err := os.WriteFile(path, out, 0o660); err != nil {
		return errors.Wrap(err, "write history")
	}
	return nil
}
