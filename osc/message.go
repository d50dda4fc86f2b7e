package osc

import (
	"bytes"
	"encoding"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// Message represents a single OSC message. An OSC message consists of an OSC
// address pattern and zero or more arguments.
type Message struct {
	Address   string
	Arguments []interface{}
}

// Verify that Message implements the binary (un)marshaler interfaces.
var (
	_ encoding.BinaryMarshaler   = (*Message)(nil)
	_ encoding.BinaryUnmarshaler = (*Message)(nil)
)

// NewMessage returns a new Message. The address parameter is the OSC address.
func NewMessage(addr string, args ...interface{}) *Message {
	return &Message{Address: addr, Arguments: args}
}

// Encode serializes addr and args into a single OSC message. The address is
// written as given; callers are responsible for the leading '/'.
func Encode(addr string, args ...interface{}) []byte {
	return NewMessage(addr, args...).Bytes()
}

// Append appends the given arguments to the arguments list.
func (m *Message) Append(args ...interface{}) {
	m.Arguments = append(m.Arguments, args...)
}

// Match returns true, if the OSC address pattern of the OSC Message matches the given
// address. The match is case sensitive!
func (m *Message) Match(addr string) bool {
	regexp, err := getRegEx(m.Address)
	if err != nil {
		return false
	}
	return regexp.MatchString(addr)
}

// TypeTags returns the type tag string.
func (m *Message) TypeTags() string {
	if m == nil {
		return ""
	}
	return GetTypeTag(m.Arguments)
}

// String implements the fmt.Stringer interface.
func (m *Message) String() string {
	if m == nil {
		return ""
	}

	var strBuf bytes.Buffer
	strBuf.WriteString(m.Address)
	strBuf.WriteByte(' ')
	strBuf.WriteString(m.TypeTags())

	for _, arg := range m.Arguments {
		switch arg := normalize(arg).(type) {
		case nil:
			strBuf.WriteString(" Nil")
		default:
			fmt.Fprintf(&strBuf, " %v", arg)
		}
	}

	return strBuf.String()
}

// MarshalBinary implements the encoding.BinaryMarshaler interface. It never
// returns an error.
func (m *Message) MarshalBinary() ([]byte, error) {
	return m.Bytes(), nil
}

// Bytes serializes the OSC message. The layout is:
// 1. OSC Address Pattern
// 2. OSC Type Tag String
// 3. OSC Arguments
func (m *Message) Bytes() []byte {
	data := new(bytes.Buffer)
	m.LightMarshalBinary(data)
	return data.Bytes()
}

// LightMarshalBinary writes the serialized message to data.
func (m *Message) LightMarshalBinary(data *bytes.Buffer) {
	writePaddedString(m.Address, data)

	typetags := []byte{','}
	payload := new(bytes.Buffer)

	// Process the type tags and collect all arguments
	for _, arg := range m.Arguments {
		switch t := normalize(arg).(type) {
		case bool:
			if t {
				typetags = append(typetags, byte(TypeTrue))
			} else {
				typetags = append(typetags, byte(TypeFalse))
			}

		case nil:
			typetags = append(typetags, byte(TypeNil))

		case int32:
			typetags = append(typetags, byte(TypeInt32))
			var buf [bit32Size]byte
			binary.BigEndian.PutUint32(buf[:], uint32(t))
			payload.Write(buf[:])

		case float32:
			typetags = append(typetags, byte(TypeFloat32))
			var buf [bit32Size]byte
			binary.BigEndian.PutUint32(buf[:], math.Float32bits(t))
			payload.Write(buf[:])

		case string:
			typetags = append(typetags, byte(TypeString))
			writePaddedString(t, payload)
		}
	}

	// Write the type tag string to the data buffer
	writePaddedString(string(typetags), data)

	// Write the payload (OSC arguments) to the data buffer
	data.Write(payload.Bytes())
}

// ParseMessage decodes a single OSC message.
func ParseMessage(data []byte) (*Message, error) {
	msg := &Message{}
	if err := msg.UnmarshalBinary(data); err != nil {
		return nil, err
	}
	return msg, nil
}

// UnmarshalBinary implements the encoding.BinaryUnmarshaler interface.
// Only the type tags this package writes are understood.
func (m *Message) UnmarshalBinary(data []byte) error {
	if len(data) == 0 || data[0] != '/' {
		return errors.New("UnmarshalBinary: data not a valid OSC message")
	}

	if (len(data) % bit32Size) != 0 {
		return errors.New("UnmarshalBinary: data isn't mod 4")
	}

	b := bytes.NewBuffer(data)

	// First, read the OSC address
	addr, _, err := readPaddedString(b)
	if err != nil {
		return errors.Wrap(err, "UnmarshalBinary")
	}

	// Read all arguments
	m.Address = addr
	m.Arguments = nil
	if err = m.readArguments(b); err != nil {
		return errors.Wrap(err, "UnmarshalBinary")
	}

	return nil
}

// readArguments from `reader` and add them to the OSC message `msg`.
func (m *Message) readArguments(reader *bytes.Buffer) error {
	if reader.Len() == 0 {
		return nil
	}

	// Read the type tag string
	typetags, _, err := readPaddedString(reader)
	if err != nil {
		return errors.Wrap(err, "readArguments")
	}

	if len(typetags) == 0 {
		return nil
	}

	// If the typetag doesn't start with ',', it's not valid
	if typetags[0] != ',' {
		return errors.Errorf("unsupported typetag string: %s", typetags)
	}

	for _, c := range typetags[1:] {
		switch TypeTag(c) {
		default:
			return errors.Errorf("unsupported typetag: %c", c)

		case TypeInt32:
			if reader.Len() < bit32Size {
				return errors.New("readArguments: not enough bytes to read")
			}
			m.Arguments = append(m.Arguments, int32(binary.BigEndian.Uint32(reader.Next(bit32Size))))

		case TypeFloat32:
			if reader.Len() < bit32Size {
				return errors.New("readArguments: not enough bytes to read")
			}
			m.Arguments = append(m.Arguments, math.Float32frombits(binary.BigEndian.Uint32(reader.Next(bit32Size))))

		case TypeString:
			str, _, err := readPaddedString(reader)
			if err != nil {
				return errors.Wrap(err, "readArguments")
			}
			m.Arguments = append(m.Arguments, str)

		case TypeNil:
			m.Arguments = append(m.Arguments, nil)

		case TypeTrue:
			m.Arguments = append(m.Arguments, true)

		case TypeFalse:
			m.Arguments = append(m.Arguments, false)
		}
	}

	return nil
}
