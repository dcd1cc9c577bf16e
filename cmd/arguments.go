// SPDX-License-Identifier: GPL-2.0-or-later

package cmd

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type QArg struct {
	a string
}

func (a QArg) String() string {
	return a.a
}

func (a QArg) Int() int {
	r, err := strconv.ParseInt(a.a, 10, 0)
	if err != nil {
		return 0
	}
	return int(r)
}

func (a QArg) Float32() float32 {
	r, err := strconv.ParseFloat(a.a, 32)
	if err != nil {
		return 0
	}
	return float32(r)
}

func (a QArg) Bool() bool {
	switch strings.ToLower(a.a) {
	case "1", "t", "true", "on", "yes":
		return true
	default:
		return false
	}
}

type Arguments struct {
	// each arg on its own
	args []QArg
	// the trimmed input line
	full string
}

// Argv is the i-th argument or an empty one.
func (c Arguments) Argv(i int) QArg {
	if i < 0 || i >= len(c.args) {
		return QArg{}
	}
	return c.args[i]
}

func (c Arguments) Full() string {
	return c.full
}

func (c Arguments) Args() []QArg {
	return c.args
}

// ArgumentString is everything after the command name with surrounding
// quotes removed.
func (c Arguments) ArgumentString() string {
	if len(c.args) < 2 {
		return ""
	}
	r := strings.TrimPrefix(c.full, c.args[0].String())
	r = strings.TrimLeftFunc(r, unicode.IsSpace)
	if len(r) > 1 && r[0] == '"' {
		r = strings.Trim(r, "\"\t\n\v\f\r ")
	}
	return r
}

// Parse splits one console line into words. Double quotes group words and
// // starts a comment.
func Parse(s string) Arguments {
	args := Arguments{
		full: strings.TrimFunc(s, unicode.IsSpace),
		args: []QArg{},
	}
	sc := scanner{input: args.full}
	for {
		w, ok := sc.next()
		if !ok {
			return args
		}
		args.args = append(args.args, QArg{w})
	}
}

type scanner struct {
	input string
	pos   int
}

func (s *scanner) peek() (rune, int) {
	if s.pos >= len(s.input) {
		return -1, 0
	}
	return utf8.DecodeRuneInString(s.input[s.pos:])
}

func (s *scanner) next() (string, bool) {
	for {
		r, w := s.peek()
		if r != ' ' && r != '\t' {
			break
		}
		s.pos += w
	}
	r, _ := s.peek()
	switch {
	case r < 0 || r == '\n' || r == '\r':
		return "", false
	case strings.HasPrefix(s.input[s.pos:], "//"):
		s.pos = len(s.input)
		return "", false
	case r == '"':
		start := s.pos + 1
		end := strings.IndexAny(s.input[start:], "\"\n")
		if end < 0 {
			s.pos = len(s.input)
			return s.input[start:], true
		}
		s.pos = start + end + 1
		return s.input[start : start+end], true
	}
	start := s.pos
	for {
		r, w := s.peek()
		if r <= ' ' {
			break
		}
		s.pos += w
	}
	return s.input[start:s.pos], true
}
