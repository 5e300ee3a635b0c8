package core

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestSourceReader(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{
			name:     "file with BOM",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte("age,email")...),
			expected: "age,email",
		},
		{
			name:     "file without BOM",
			input:    []byte("age,email"),
			expected: "age,email",
		},
		{
			name:     "empty file",
			input:    []byte{},
			expected: "",
		},
		{
			name:     "only BOM",
			input:    []byte{0xEF, 0xBB, 0xBF},
			expected: "",
		},
		{
			name:     "partial BOM is invalid UTF-8",
			input:    []byte{0xEF, 0xBB, 'a', 'b', 'c'},
			expected: "??abc",
		},
		{
			name:     "valid UTF-8 with multibyte",
			input:    []byte("José,Müller"),
			expected: "José,Müller",
		},
		{
			name:     "invalid single byte replaced",
			input:    []byte{'h', 'e', 0x80, 'l', 'o'},
			expected: "he?lo",
		},
		{
			name:     "BOM and invalid byte",
			input:    append([]byte{0xEF, 0xBB, 0xBF}, []byte{'h', 'e', 0x80, 'l', 'o'}...),
			expected: "he?lo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := NewSourceReader(bytes.NewReader(tt.input))
			result, err := io.ReadAll(reader)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(result) != tt.expected {
				t.Errorf("got %q, want %q", string(result), tt.expected)
			}
			if reader.BytesRead() != int64(len(tt.input)) {
				t.Errorf("BytesRead = %d, want %d", reader.BytesRead(), len(tt.input))
			}
		})
	}
}

func TestSourceReader_SmallBuffers(t *testing.T) {
	input := "名前,年齢\nÅsa,30\n"
	reader := NewSourceReader(strings.NewReader(input))

	// One-byte reads force multibyte runes to be split across calls.
	result, err := io.ReadAll(iotest.OneByteReader(reader))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(result) != input {
		t.Errorf("got %q, want %q", string(result), input)
	}
}

func TestSourceReader_ZeroLengthRead(t *testing.T) {
	reader := NewSourceReader(strings.NewReader("abc"))
	n, err := reader.Read(nil)
	if n != 0 || err != nil {
		t.Errorf("Read(nil) = %d, %v; want 0, nil", n, err)
	}
}
