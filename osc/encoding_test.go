package osc

import (
	"bytes"
	"testing"
)

func TestReadPaddedString(t *testing.T) {
	for _, tt := range []struct {
		buf     []byte // buffer
		want    int    // bytes needed
		want1   string // resulting string
		wantErr bool
	}{
		{[]byte{'t', 'e', 's', 't', 's', 't', 'r', 'i', 'n', 'g', 0, 0}, 12, "teststring", false},
		{[]byte{'t', 'e', 's', 't', 'e', 'r', 's', 0}, 8, "testers", false},
		{[]byte{'t', 'e', 's', 't', 's', 0, 0, 0}, 8, "tests", false},
		{[]byte{'t', 'e', 's', 0}, 4, "tes", false},
		{[]byte{'t', 'e', 's', 't'}, 0, "", true},      // if there is no null byte at the end, it doesn't work.
		{[]byte{'t', 'e', 's', 't', 's', 0}, 0, "", true}, // truncated padding
	} {
		got, got1, err := readPaddedString(bytes.NewBuffer(tt.buf))
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Error reading padded string: %v", tt.want1, err)
		}
		if got1 != tt.want {
			t.Errorf("%s: Bytes needed don't match; got = %d, want = %d", tt.want1, got1, tt.want)
		}
		if got != tt.want1 {
			t.Errorf("%s: Strings don't match; got = %b, want = %b", tt.want1, []byte(got), []byte(tt.want1))
		}
	}
}

func TestWritePaddedString(t *testing.T) {
	for _, tt := range []struct {
		str  string
		want []byte
	}{
		{"", []byte{0, 0, 0, 0}},
		{"/a", []byte{'/', 'a', 0, 0}},
		{"/ab", []byte{'/', 'a', 'b', 0}},
		{"/abc", []byte{'/', 'a', 'b', 'c', 0, 0, 0, 0}},
		{"testString", []byte{'t', 'e', 's', 't', 'S', 't', 'r', 'i', 'n', 'g', 0, 0}},
	} {
		buf := new(bytes.Buffer)
		n := writePaddedString(tt.str, buf)
		if n != len(tt.want) {
			t.Errorf("%q: written bytes = %d, want %d", tt.str, n, len(tt.want))
		}
		if !bytes.Equal(buf.Bytes(), tt.want) {
			t.Errorf("%q: got = %v, want %v", tt.str, buf.Bytes(), tt.want)
		}
	}
}

func TestPadBytesNeeded(t *testing.T) {
	for _, tt := range []struct {
		in, want int
	}{
		{0, 0},
		{1, 3},
		{3, 1},
		{4, 0},
		{10, 2},
		{32, 0},
		{63, 1},
	} {
		if n := padBytesNeeded(tt.in); n != tt.want {
			t.Errorf("padBytesNeeded(%d) = %d, want %d", tt.in, n, tt.want)
		}
	}
}
