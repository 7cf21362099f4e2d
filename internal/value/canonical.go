package value

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Type tags used by the canonical encoding. Each normalized value encodes
// as a JSON array of its tag followed by its representation, so that the
// string "37" and the integer 37 never collide.
const (
	tagNull   = "null"
	tagBool   = "bool"
	tagInt    = "int"
	tagFloat  = "float"
	tagString = "string"
	tagBytes  = "bytes"
	tagTime   = "time"
)

// MarshalCanonical produces the canonical encoding of a single normalized
// value. Values that have not been through Normalize are normalized first.
func MarshalCanonical(v any) ([]byte, error) {
	dv, err := Normalize(v)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := writeCanonical(&buf, dv); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalCanonicalList encodes a list of values as a canonical JSON array.
func MarshalCanonicalList(vals []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range vals {
		if i > 0 {
			buf.WriteByte(',')
		}
		enc, err := MarshalCanonical(v)
		if err != nil {
			return nil, fmt.Errorf("args[%d]: %w", i, err)
		}
		buf.Write(enc)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Equal reports whether two values have the same canonical encoding.
// Values that cannot be encoded are never equal to anything.
func Equal(a, b any) bool {
	ea, err := MarshalCanonical(a)
	if err != nil {
		return false
	}
	eb, err := MarshalCanonical(b)
	if err != nil {
		return false
	}
	return bytes.Equal(ea, eb)
}

// EqualList reports whether two argument lists are element-wise Equal.
func EqualList(a, b []any) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func writeCanonical(buf *bytes.Buffer, dv any) error {
	switch val := dv.(type) {
	case nil:
		buf.WriteString(`["` + tagNull + `"]`)
	case bool:
		writeTagged(buf, tagBool, strconv.FormatBool(val))
	case int64:
		writeTaggedString(buf, tagInt, strconv.FormatInt(val, 10))
	case float64:
		writeTaggedString(buf, tagFloat, strconv.FormatFloat(val, 'g', -1, 64))
	case string:
		writeTaggedString(buf, tagString, val)
	case []byte:
		writeTaggedString(buf, tagBytes, base64.StdEncoding.EncodeToString(val))
	case time.Time:
		writeTaggedString(buf, tagTime, val.Format(time.RFC3339Nano))
	default:
		return fmt.Errorf("unsupported driver value type: %T", dv)
	}
	return nil
}

func writeTagged(buf *bytes.Buffer, tag, raw string) {
	buf.WriteString(`["`)
	buf.WriteString(tag)
	buf.WriteString(`",`)
	buf.WriteString(raw)
	buf.WriteByte(']')
}

func writeTaggedString(buf *bytes.Buffer, tag, s string) {
	writeTagged(buf, tag, string(marshalString(s)))
}

// marshalString encodes s as a JSON string without HTML escaping.
func marshalString(s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a Go string cannot fail.
	_ = enc.Encode(s)

	out := buf.Bytes()
	if len(out) > 0 && out[len(out)-1] == '\n' {
		out = out[:len(out)-1]
	}
	return out
}
