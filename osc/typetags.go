package osc

import (
	"fmt"
	"math"
)

type TypeTag rune

const (
	TypeString  TypeTag = 's'
	TypeInt32   TypeTag = 'i'
	TypeFloat32 TypeTag = 'f'
	TypeNil     TypeTag = 'N'
	TypeTrue    TypeTag = 'T'
	TypeFalse   TypeTag = 'F'
)

// ToTypeTag returns the OSC TypeTag for the given argument.
// Numbers are classified by their value: anything without a fractional part
// that fits in 32 bits is an int32, everything else is a float32. Values of
// unsupported types are sent as their string representation.
func ToTypeTag(arg interface{}) TypeTag {
	switch t := normalize(arg).(type) {
	case bool:
		if t {
			return TypeTrue
		}
		return TypeFalse
	case nil:
		return TypeNil
	case int32:
		return TypeInt32
	case float32:
		return TypeFloat32
	default:
		return TypeString
	}
}

// GetTypeTag returns the OSC TypeTag string for the given slice.
func GetTypeTag(args []interface{}) string {
	tt := make([]byte, 0, len(args)+1)
	tt = append(tt, ',')
	for _, arg := range args {
		tt = append(tt, byte(ToTypeTag(arg)))
	}
	return string(tt)
}

// normalize maps arg onto one of the wire representations: bool, nil,
// int32, float32 or string.
func normalize(arg interface{}) interface{} {
	switch t := arg.(type) {
	case nil, bool, int32, string:
		return t
	case float32:
		return fromFloat(float64(t))
	case float64:
		return fromFloat(t)
	case int:
		return fromInt(int64(t))
	case int8:
		return int32(t)
	case int16:
		return int32(t)
	case int64:
		return fromInt(t)
	case uint:
		return fromFloat(float64(t))
	case uint8:
		return int32(t)
	case uint16:
		return int32(t)
	case uint32:
		return fromInt(int64(t))
	case uint64:
		return fromFloat(float64(t))
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

func fromInt(i int64) interface{} {
	if i < math.MinInt32 || i > math.MaxInt32 {
		return float32(i)
	}
	return int32(i)
}

func fromFloat(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Sprint(f)
	}
	if f == math.Trunc(f) && f >= math.MinInt32 && f <= math.MaxInt32 {
		return int32(f)
	}
	return float32(f)
}
