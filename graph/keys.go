package graph

import "fmt"

// Key codes stored in on-button key pins. Printable keys use their
// uppercase ASCII code; named keys use the classic desktop key numbering
// so graphs stay portable between hosts.
const (
	KeyNone      = -1
	KeySpace     = 32
	KeyEscape    = 256
	KeyEnter     = 257
	KeyTab       = 258
	KeyBackspace = 259
	KeyInsert    = 260
	KeyDelete    = 261
	KeyRight     = 262
	KeyLeft      = 263
	KeyDown      = 264
	KeyUp        = 265
	KeyPageUp    = 266
	KeyPageDown  = 267
	KeyHome      = 268
	KeyEnd       = 269
	KeyF1        = 290
	KeyF12       = 301
)

var namedKeys = map[int]string{
	KeySpace:     "Space",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyInsert:    "Insert",
	KeyDelete:    "Delete",
	KeyRight:     "Right",
	KeyLeft:      "Left",
	KeyDown:      "Down",
	KeyUp:        "Up",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyHome:      "Home",
	KeyEnd:       "End",
}

// NormalizeKey folds lowercase letters onto their uppercase code
func NormalizeKey(code int) int {
	if code >= 'a' && code <= 'z' {
		return code - 32
	}
	return code
}

// KeyName returns a display name for a key code
func KeyName(code int) string {
	if code == KeyNone {
		return "NONE"
	}
	code = NormalizeKey(code)
	if name, ok := namedKeys[code]; ok {
		return name
	}
	if code >= KeyF1 && code <= KeyF12 {
		return fmt.Sprintf("F%d", code-KeyF1+1)
	}
	if code > 32 && code < 127 {
		return string(rune(code))
	}
	return "Unknown"
}
