// Copyright 2024 The ishishnode Authors
// This file is part of the ishishnode library.
//
// The ishishnode library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Lesser General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// The ishishnode library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU Lesser
// General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the ishishnode library. If not, see <http://www.gnu.org/licenses/>.

package node

import (
	"strings"

	"github.com/peterh/liner"
)

// Console reads interactive lines from the terminal. All actual reads
// happen on a single background goroutine so a command handler's
// follow-up prompts (a wallet name, a password, an address) never race
// the next top-level read: the event loop's console branch must signal
// Done before readLoop will prompt for another top-level command,
// mirroring the original program's sequential stdin reads once a
// command has already been dispatched.
type Console struct {
	line *liner.State

	lines chan string
	done  chan struct{}

	subReq  chan string
	subResp chan lineResult
}

type lineResult struct {
	text string
	err  error
}

// NewConsole starts reading lines from stdin on a background goroutine.
func NewConsole() *Console {
	c := &Console{
		line:    liner.NewLiner(),
		lines:   make(chan string),
		done:    make(chan struct{}),
		subReq:  make(chan string),
		subResp: make(chan lineResult),
	}
	c.line.SetCtrlCAborts(true)
	go c.readLoop()
	return c
}

func (c *Console) readLoop() {
	defer close(c.lines)
	for {
		text, err := c.line.Prompt("> ")
		if err != nil {
			return // EOF or Ctrl-C/Ctrl-D
		}
		c.lines <- strings.TrimSpace(text)
		if !c.serveSubPrompts() {
			return
		}
	}
}

// serveSubPrompts answers any ReadLine calls the dispatched command
// issues, until the event loop signals it is Done processing that
// command. Reports false if the console is being torn down.
func (c *Console) serveSubPrompts() bool {
	for {
		select {
		case prompt, ok := <-c.subReq:
			if !ok {
				return false
			}
			text, err := c.line.Prompt(prompt + " ")
			c.subResp <- lineResult{text: strings.TrimSpace(text), err: err}
		case <-c.done:
			return true
		}
	}
}

// Commands delivers each line entered at the top-level prompt. It is
// closed when the input stream ends. The event loop must call Done
// after it finishes processing each command, including any ReadLine
// calls the handler made.
func (c *Console) Commands() <-chan string {
	return c.lines
}

// Done signals that the event loop has finished processing the last
// command delivered by Commands, so the console may prompt for the
// next one.
func (c *Console) Done() {
	c.done <- struct{}{}
}

// ReadLine blocks for one more line, prompting first. It is meant to be
// called only from within a command handler, synchronously, never
// concurrently with itself.
func (c *Console) ReadLine(prompt string) (string, error) {
	c.subReq <- prompt
	res := <-c.subResp
	return res.text, res.err
}

// Close releases the terminal.
func (c *Console) Close() error {
	close(c.subReq)
	return c.line.Close()
}
