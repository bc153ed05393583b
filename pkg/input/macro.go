// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package input

import (
	"strings"
	"time"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/samber/oops"
)

// The macro DSL describes step sequences in one line, commands separated
// by semicolons:
//
//	ctrl+shift+p; sleep 120; hold alt+tab 250; click left 2
//
// A bare chord taps it. "hold" keeps a chord down for a duration in
// milliseconds, "sleep" pauses, "click" presses a mouse button, optionally
// several times.

// macroLexer tokenizes key names, integers and the chord separator.
var macroLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Punct", Pattern: `[+;]`},
	{Name: "whitespace", Pattern: `\s+`},
})

// Macro is a parsed command sequence.
type Macro struct {
	Commands []*Command `parser:"@@ (';' @@)* ';'?"`
}

// Command is one DSL command.
type Command struct {
	Sleep *SleepCmd `parser:"@@"`
	Hold  *HoldCmd  `parser:"| @@"`
	Click *ClickCmd `parser:"| @@"`
	Tap   *Chord    `parser:"| @@"`
}

// SleepCmd matches: "sleep" millis
type SleepCmd struct {
	Millis int `parser:"'sleep' @Int"`
}

// HoldCmd matches: "hold" chord millis
type HoldCmd struct {
	Chord  *Chord `parser:"'hold' @@"`
	Millis int    `parser:"@Int"`
}

// ClickCmd matches: "click" button [count]
type ClickCmd struct {
	Button string `parser:"'click' @('left' | 'right' | 'middle')"`
	Count  int    `parser:"@Int?"`
}

// Chord matches: key ("+" key)*
type Chord struct {
	Keys []string `parser:"@(Ident | Int) ('+' @(Ident | Int))*"`
}

// macroParser is the singleton participle parser instance.
var macroParser = participle.MustBuild[Macro](
	participle.Lexer(macroLexer),
	participle.UseLookahead(2),
)

// ParseMacro parses a macro string into its AST.
func ParseMacro(text string) (*Macro, error) {
	m, err := macroParser.ParseString("", text)
	if err != nil {
		return nil, oops.In("input").Wrapf(err, "parsing macro")
	}
	return m, nil
}

// Compile parses a macro string and lowers it to a step sequence.
func Compile(text string) ([]Step, error) {
	m, err := ParseMacro(text)
	if err != nil {
		return nil, err
	}
	return m.Steps()
}

// Steps lowers the AST to a playable step sequence.
func (m *Macro) Steps() ([]Step, error) {
	var steps []Step
	for _, cmd := range m.Commands {
		switch {
		case cmd.Sleep != nil:
			steps = append(steps, Sleep{Duration: time.Duration(cmd.Sleep.Millis) * time.Millisecond})
		case cmd.Hold != nil:
			scans, err := cmd.Hold.Chord.scans()
			if err != nil {
				return nil, err
			}
			steps = append(steps, Hold(time.Duration(cmd.Hold.Millis)*time.Millisecond, scans...)...)
		case cmd.Click != nil:
			button, err := parseButton(cmd.Click.Button)
			if err != nil {
				return nil, err
			}
			count := cmd.Click.Count
			if count == 0 {
				count = 1
			}
			steps = append(steps, ClickN(button, count)...)
		case cmd.Tap != nil:
			scans, err := cmd.Tap.scans()
			if err != nil {
				return nil, err
			}
			steps = append(steps, Tap(scans...)...)
		}
	}
	return steps, nil
}

func (c *Chord) scans() ([]Scan, error) {
	scans := make([]Scan, 0, len(c.Keys))
	for _, name := range c.Keys {
		s, ok := LookupKey(name)
		if !ok {
			return nil, oops.In("input").With("key", name).Errorf("unknown key")
		}
		scans = append(scans, s)
	}
	return scans, nil
}

func parseButton(name string) (MouseButton, error) {
	switch name {
	case "left":
		return MouseLeft, nil
	case "right":
		return MouseRight, nil
	case "middle":
		return MouseMiddle, nil
	default:
		return 0, oops.In("input").With("button", name).Errorf("unknown mouse button")
	}
}

// String renders the chord back to source form.
func (c *Chord) String() string {
	return strings.Join(c.Keys, "+")
}
