// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 TileKit Contributors

package input

import "strings"

// keyTable maps macro key names to scan codes (set 1 make codes).
var keyTable = map[string]Scan{
	"esc":       {Code: 0x01},
	"1":         {Code: 0x02},
	"2":         {Code: 0x03},
	"3":         {Code: 0x04},
	"4":         {Code: 0x05},
	"5":         {Code: 0x06},
	"6":         {Code: 0x07},
	"7":         {Code: 0x08},
	"8":         {Code: 0x09},
	"9":         {Code: 0x0A},
	"0":         {Code: 0x0B},
	"minus":     {Code: 0x0C},
	"equals":    {Code: 0x0D},
	"backspace": {Code: 0x0E},
	"tab":       {Code: 0x0F},
	"q":         {Code: 0x10},
	"w":         {Code: 0x11},
	"e":         {Code: 0x12},
	"r":         {Code: 0x13},
	"t":         {Code: 0x14},
	"y":         {Code: 0x15},
	"u":         {Code: 0x16},
	"i":         {Code: 0x17},
	"o":         {Code: 0x18},
	"p":         {Code: 0x19},
	"enter":     {Code: 0x1C},
	"ctrl":      {Code: 0x1D},
	"a":         {Code: 0x1E},
	"s":         {Code: 0x1F},
	"d":         {Code: 0x20},
	"f":         {Code: 0x21},
	"g":         {Code: 0x22},
	"h":         {Code: 0x23},
	"j":         {Code: 0x24},
	"k":         {Code: 0x25},
	"l":         {Code: 0x26},
	"shift":     {Code: 0x2A},
	"z":         {Code: 0x2C},
	"x":         {Code: 0x2D},
	"c":         {Code: 0x2E},
	"v":         {Code: 0x2F},
	"b":         {Code: 0x30},
	"n":         {Code: 0x31},
	"m":         {Code: 0x32},
	"alt":       {Code: 0x38},
	"space":     {Code: 0x39},
	"f1":        {Code: 0x3B},
	"f2":        {Code: 0x3C},
	"f3":        {Code: 0x3D},
	"f4":        {Code: 0x3E},
	"f5":        {Code: 0x3F},
	"f6":        {Code: 0x40},
	"f7":        {Code: 0x41},
	"f8":        {Code: 0x42},
	"f9":        {Code: 0x43},
	"f10":       {Code: 0x44},
	"f11":       {Code: 0x57},
	"f12":       {Code: 0x58},

	"rctrl":  {Code: 0x1D, Extended: true},
	"ralt":   {Code: 0x38, Extended: true},
	"win":    {Code: 0x5B, Extended: true},
	"up":     {Code: 0x48, Extended: true},
	"down":   {Code: 0x50, Extended: true},
	"left":   {Code: 0x4B, Extended: true},
	"right":  {Code: 0x4D, Extended: true},
	"home":   {Code: 0x47, Extended: true},
	"end":    {Code: 0x4F, Extended: true},
	"pgup":   {Code: 0x49, Extended: true},
	"pgdn":   {Code: 0x51, Extended: true},
	"insert": {Code: 0x52, Extended: true},
	"delete": {Code: 0x53, Extended: true},
}

// LookupKey resolves a macro key name, case-insensitively.
func LookupKey(name string) (Scan, bool) {
	s, ok := keyTable[strings.ToLower(name)]
	return s, ok
}
