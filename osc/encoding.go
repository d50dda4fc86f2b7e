package osc

import (
	"bytes"

	"github.com/pkg/errors"
)

////
// De/Encoding functions
////

const bit32Size = 4

// MaxPacketSize is the largest UDP payload the receive loop accepts.
const MaxPacketSize = 65507

// readPaddedString reads a padded string from the given reader. The padding
// bytes are removed from the reader.
func readPaddedString(reader *bytes.Buffer) (string, int, error) {
	// Read the string from the reader
	str, err := reader.ReadString(0)
	if err != nil {
		return "", 0, errors.Wrap(err, "readPaddedString")
	}
	n := len(str)

	// Remove the padding bytes (don't know how many there are, but
	// we know that it has to be a multiple of 4)
	padLen := padBytesNeeded(n)
	if padLen > 0 {
		if reader.Len() < padLen {
			return "", 0, errors.Errorf("readPaddedString: missing %d padding bytes", padLen)
		}
		n += padLen
		reader.Next(padLen)
	}

	return str[:len(str)-1], n, nil
}

// writePaddedString writes a NUL-terminated string with padding bytes to the
// buffer and returns the number of bytes written.
func writePaddedString(str string, buf *bytes.Buffer) int {
	buf.WriteString(str)
	buf.WriteByte(0)
	n := len(str) + 1

	padLen := padBytesNeeded(n)
	for i := 0; i < padLen; i++ {
		buf.WriteByte(0)
	}

	return n + padLen
}

// padBytesNeeded determines how many bytes are needed to fill up to the next 4
// byte length.
func padBytesNeeded(elementLen int) int {
	return (4 - (elementLen % 4)) % 4
}
