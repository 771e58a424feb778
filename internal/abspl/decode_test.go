package abspl

import (
	"reflect"
	"testing"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

func TestSplitLines(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", []string{}},
		{"single without terminator", "a", []string{"a"}},
		{"trailing newline", "a\n", []string{"a"}},
		{"blank lines kept", "a\n\nb\n", []string{"a", "", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"lone cr", "a\rb", []string{"a", "b"}},
		{"cr cr lf", "a\r\r\nb", []string{"a", "", "b"}},
		{"vertical tab and form feed", "a\vb\fc", []string{"a", "b", "c"}},
		{"separators", "a\x1cb\x1dc\x1ed", []string{"a", "b", "c", "d"}},
		{"unicode breaks", "a\u0085b\u2028c\u2029d", []string{"a", "b", "c", "d"}},
		{"tabs are not breaks", "a\tb", []string{"a\tb"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := splitLines(tc.in)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("splitLines(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestDecodeMapsEveryByte(t *testing.T) {
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	text := decode(nil, all)
	if !utf8.ValidString(text) {
		t.Fatal("decoded text is not valid UTF-8")
	}
	if got := utf8.RuneCountInString(text); got != 256 {
		t.Fatalf("expected one rune per byte, got %d", got)
	}
}

func TestDecodeUnassignedBytes(t *testing.T) {
	for _, b := range []byte{0x81, 0x8D, 0x8F, 0x90, 0x9D} {
		if got := decode(nil, []byte{b}); got != "\uFFFD" {
			t.Fatalf("byte %#x decoded to %q", b, got)
		}
	}
	if got := decode(nil, []byte{0x80, 0xE9}); got != "€é" {
		t.Fatalf("unexpected decoding %q", got)
	}
	// Only code page 1252 has the unassigned positions.
	if got := decode(charmap.ISO8859_1, []byte{0x81}); got != "\u0081" {
		t.Fatalf("latin-1 decoded 0x81 to %q", got)
	}
}

func TestLabelTablesAreDisjoint(t *testing.T) {
	for label := range settingLabels {
		if _, ok := resultLabels[label]; ok {
			t.Fatalf("label %q appears in both tables", label)
		}
	}
	if len(settingLabels) != len(settingInfo) || len(resultLabels) != len(resultInfo) {
		t.Fatal("duplicate labels collapsed in lookup tables")
	}
	for _, f := range SettingFields() {
		got, ok := LookupSetting(f.Label())
		if !ok || got != f {
			t.Fatalf("LookupSetting(%q) = %v, %v", f.Label(), got, ok)
		}
	}
	for _, f := range ResultFields() {
		got, ok := LookupResult(f.Label())
		if !ok || got != f {
			t.Fatalf("LookupResult(%q) = %v, %v", f.Label(), got, ok)
		}
	}
}

func TestParseRow(t *testing.T) {
	cases := []struct {
		line    string
		want    [4]float64
		wantErr bool
	}{
		{line: "1 2 3 4", want: [4]float64{1, 2, 3, 4}},
		{line: "\t1.5e3\t-2\t+3.0\t4E-2\textra junk", want: [4]float64{1500, -2, 3, 0.04}},
		{line: "1 2 3", wantErr: true},
		{line: "1 2 x 4", wantErr: true},
		{line: "1,0 2 3 4", wantErr: true},
		{line: "0x1p-2 2 3 4", wantErr: true},
		{line: "1 -0X10 3 4", wantErr: true},
		{line: "1 2 3 0x_1p0", wantErr: true},
	}
	for _, tc := range cases {
		got, err := parseRow(tc.line)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("parseRow(%q) expected error", tc.line)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parseRow(%q): %v", tc.line, err)
		}
		if got != tc.want {
			t.Fatalf("parseRow(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}
