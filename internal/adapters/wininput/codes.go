// Package wininput injects mouse input with SendInput and polls key state
// with GetAsyncKeyState. Key codes follow the Linux input-event numbering so
// hotkey names stay identical across backends.
package wininput

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	CodeBTNLeft   uint16 = 0x110
	CodeBTNRight  uint16 = 0x111
	CodeBTNMiddle uint16 = 0x112

	codeKEYSpace uint16 = 57
	codeKEYF1    uint16 = 59
	codeKEYF2    uint16 = 60
	codeKEYF3    uint16 = 61
	codeKEYF4    uint16 = 62
	codeKEYF5    uint16 = 63
	codeKEYF6    uint16 = 64
	codeKEYF7    uint16 = 65
	codeKEYF8    uint16 = 66
	codeKEYF9    uint16 = 67
	codeKEYF10   uint16 = 68
	codeKEYF11   uint16 = 87
	codeKEYF12   uint16 = 88
)

const (
	vkLBUTTON uint32 = 0x01
	vkRBUTTON uint32 = 0x02
	vkMBUTTON uint32 = 0x04
	vkSPACE   uint32 = 0x20
	vkF1      uint32 = 0x70
	vkF2      uint32 = 0x71
	vkF3      uint32 = 0x72
	vkF4      uint32 = 0x73
	vkF5      uint32 = 0x74
	vkF6      uint32 = 0x75
	vkF7      uint32 = 0x76
	vkF8      uint32 = 0x77
	vkF9      uint32 = 0x78
	vkF10     uint32 = 0x79
	vkF11     uint32 = 0x7A
	vkF12     uint32 = 0x7B
)

type codeEntry struct {
	name string
	code uint16
	vk   uint32
}

var codeTable = []codeEntry{
	{name: "BTN_LEFT", code: CodeBTNLeft, vk: vkLBUTTON},
	{name: "BTN_RIGHT", code: CodeBTNRight, vk: vkRBUTTON},
	{name: "BTN_MIDDLE", code: CodeBTNMiddle, vk: vkMBUTTON},
	{name: "KEY_SPACE", code: codeKEYSpace, vk: vkSPACE},
	{name: "KEY_F1", code: codeKEYF1, vk: vkF1},
	{name: "KEY_F2", code: codeKEYF2, vk: vkF2},
	{name: "KEY_F3", code: codeKEYF3, vk: vkF3},
	{name: "KEY_F4", code: codeKEYF4, vk: vkF4},
	{name: "KEY_F5", code: codeKEYF5, vk: vkF5},
	{name: "KEY_F6", code: codeKEYF6, vk: vkF6},
	{name: "KEY_F7", code: codeKEYF7, vk: vkF7},
	{name: "KEY_F8", code: codeKEYF8, vk: vkF8},
	{name: "KEY_F9", code: codeKEYF9, vk: vkF9},
	{name: "KEY_F10", code: codeKEYF10, vk: vkF10},
	{name: "KEY_F11", code: codeKEYF11, vk: vkF11},
	{name: "KEY_F12", code: codeKEYF12, vk: vkF12},
}

func ParseCode(value string) (uint16, error) {
	raw := strings.ToUpper(strings.TrimSpace(value))
	if raw == "" {
		return 0, fmt.Errorf("hotkey code is empty")
	}
	for _, entry := range codeTable {
		if entry.name == raw {
			return entry.code, nil
		}
	}

	parsed, err := strconv.ParseInt(raw, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown hotkey %q: use names like KEY_F6/KEY_F7 or numeric code", value)
	}
	if parsed < 0 || parsed > 0xFFFF {
		return 0, fmt.Errorf("hotkey code out of range: %d", parsed)
	}
	return uint16(parsed), nil
}

func FormatCodeName(code uint16) string {
	for _, entry := range codeTable {
		if entry.code == code {
			return entry.name
		}
	}
	return strconv.Itoa(int(code))
}

func CodeToVK(code uint16) (uint32, bool) {
	for _, entry := range codeTable {
		if entry.code == code {
			return entry.vk, true
		}
	}
	return 0, false
}
