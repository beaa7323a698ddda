package linuxatspi

import (
	"reflect"
	"testing"
)

func TestParseGVariant(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want any
	}{
		{"string_tuple", "('push button',)", []any{"push button"}},
		{"int_tuple", "(uint32 42,)", []any{int64(42)}},
		{"extents", "((0, 32, 800, 600),)", []any{[]any{int64(0), int64(32), int64(800), int64(600)}}},
		{"state_masks", "([uint32 2097152, uint32 0],)", []any{[]any{int64(2097152), int64(0)}}},
		{"children", "([(':1.5', '/org/a11y/atspi/accessible/7')],)",
			[]any{[]any{[]any{":1.5", "/org/a11y/atspi/accessible/7"}}}},
		{"dict", "({'level': '2', 'tag': 'h2'},)",
			[]any{map[string]any{"level": "2", "tag": "h2"}}},
		{"variant", "(<'Documents'>,)", []any{"Documents"}},
		{"bool", "(true,)", []any{true}},
		{"double", "(0.5,)", []any{0.5}},
		{"escaped_string", `('say \'hi\'',)`, []any{"say 'hi'"}},
		{"empty_array", "([],)", []any{[]any(nil)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseGVariant(tt.in)
			if err != nil {
				t.Fatalf("parseGVariant(%q) error: %v", tt.in, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseGVariant(%q) = %#v, want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseGVariant_Errors(t *testing.T) {
	for _, in := range []string{"('unterminated", "(1,) trailing", ""} {
		if _, err := parseGVariant(in); err == nil {
			t.Errorf("parseGVariant(%q) succeeded, want error", in)
		}
	}
}

func TestCoercions(t *testing.T) {
	if asInt(int64(7)) != 7 || asInt(7.0) != 7 || asInt("x") != 0 {
		t.Error("asInt coercion wrong")
	}
	if asFloat(int64(2)) != 2.0 || asFloat(2.5) != 2.5 {
		t.Error("asFloat coercion wrong")
	}
	if asString("a") != "a" || asString(int64(1)) != "" {
		t.Error("asString coercion wrong")
	}
}
