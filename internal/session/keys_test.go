package session

import (
	"reflect"
	"testing"
)

func TestParseCombo(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantMods []string
		wantKeys []string
	}{
		{"simple", "ctrl+s", []string{"ctrl"}, []string{"s"}},
		{"case_and_spaces", "Ctrl + Shift + P", []string{"ctrl", "shift"}, []string{"p"}},
		{"aliases", "cmd+return", []string{"meta"}, []string{"enter"}},
		{"win_alias", "win+e", []string{"meta"}, []string{"e"}},
		{"esc_alias", "esc", nil, []string{"escape"}},
		{"page_aliases", "pgup", nil, []string{"pageup"}},
		{"modifier_only", "meta", nil, []string{"meta"}},
		{"two_modifiers_only", "ctrl+shift", nil, []string{"ctrl", "shift"}},
		{"bare_key", "f5", nil, []string{"f5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mods, keys := ParseCombo(tt.in)
			if !reflect.DeepEqual(mods, tt.wantMods) || !reflect.DeepEqual(keys, tt.wantKeys) {
				t.Errorf("ParseCombo(%q) = %v, %v; want %v, %v", tt.in, mods, keys, tt.wantMods, tt.wantKeys)
			}
		})
	}
}

func TestParseCombo_CaseInsensitiveEquality(t *testing.T) {
	m1, k1 := ParseCombo("Ctrl+Shift+P")
	m2, k2 := ParseCombo("ctrl + shift + p")
	if !reflect.DeepEqual(m1, m2) || !reflect.DeepEqual(k1, k2) {
		t.Errorf("case/spacing changed the parse: %v/%v vs %v/%v", m1, k1, m2, k2)
	}
}
