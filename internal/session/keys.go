package session

import "strings"

// keyAliases normalizes common key-name spellings.
var keyAliases = map[string]string{
	"return": "enter",
	"esc":    "escape",
	"del":    "delete",
	"bs":     "backspace",
	"cmd":    "meta",
	"super":  "meta",
	"win":    "meta",
	"pgup":   "pageup",
	"pgdn":   "pagedown",
}

// modifierKeys are combo parts treated as modifiers.
var modifierKeys = map[string]bool{
	"ctrl":  true,
	"alt":   true,
	"shift": true,
	"meta":  true,
}

// ParseCombo splits a key combo like "Ctrl+Shift+P" into modifier and
// main-key lists. A combo of only modifiers (e.g. "meta") presses those
// keys themselves, with no modifier mask.
func ParseCombo(combo string) (modifiers, keys []string) {
	for _, part := range strings.Split(combo, "+") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if alias, ok := keyAliases[part]; ok {
			part = alias
		}
		if modifierKeys[part] {
			modifiers = append(modifiers, part)
		} else {
			keys = append(keys, part)
		}
	}
	if len(keys) == 0 && len(modifiers) > 0 {
		return nil, modifiers
	}
	return modifiers, keys
}
