package document

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// maxNesting bounds how deeply arrays and objects may nest in a document.
const maxNesting = 4096

// object is a decoded map that remembers key order.
type object struct {
	keys   []string
	values []any
}

func (o *object) add(key string, v any) {
	o.keys = append(o.keys, key)
	o.values = append(o.values, v)
}

func (o *object) len() int { return len(o.keys) }

// readJSON decodes one JSON value. Numbers become int64 when they are
// integral and fit, float64 otherwise.
func readJSON(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := readJSONValue(dec, 0)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected data after the document at offset %d", dec.InputOffset())
		}
		return nil, err
	}
	return v, nil
}

func readJSONValue(dec *json.Decoder, depth int) (any, error) {
	if depth > maxNesting {
		return nil, fmt.Errorf("document nests deeper than %d levels", maxNesting)
	}

	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '[':
			items := []any{}
			for dec.More() {
				v, err := readJSONValue(dec, depth+1)
				if err != nil {
					return nil, err
				}
				items = append(items, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return items, nil
		case '{':
			obj := &object{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("object key %v is not a string", keyTok)
				}
				v, err := readJSONValue(dec, depth+1)
				if err != nil {
					return nil, err
				}
				obj.add(key, v)
			}
			if _, err := dec.Token(); err != nil {
				return nil, err
			}
			return obj, nil
		}
		return nil, fmt.Errorf("unexpected %q at offset %d", rune(t), dec.InputOffset())
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, nil
		}
		return t.Float64()
	default:
		// string, bool or nil
		return t, nil
	}
}

// readMsgpack decodes one MessagePack value, keeping map key order.
func readMsgpack(r io.Reader) (any, error) {
	m := &msgpackReader{dec: msgpack.NewDecoder(r)}
	// The decoder reads a ByteScanner directly, so Len stays exact.
	if l, ok := r.(interface {
		io.ByteScanner
		Len() int
	}); ok {
		m.remaining = l.Len
	}

	v, err := m.value(0)
	if err != nil {
		return nil, err
	}
	if _, err := m.dec.PeekCode(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected data after the document")
		}
		return nil, err
	}
	return v, nil
}

// preallocLimit caps the capacity taken from untrusted length headers.
const preallocLimit = 1024

// msgpackReader decodes MessagePack values. remaining, when set, reports
// the unread input size so that impossible lengths fail up front.
type msgpackReader struct {
	dec       *msgpack.Decoder
	remaining func() int
}

// checkLen rejects a length header that the rest of the input cannot hold.
// Every entry takes at least minSize bytes.
func (m *msgpackReader) checkLen(n, minSize int) error {
	if n < 0 {
		return nil
	}
	if m.remaining != nil && n > m.remaining()/minSize {
		return fmt.Errorf("length %d exceeds the remaining input", n)
	}
	return nil
}

func (m *msgpackReader) value(depth int) (any, error) {
	if depth > maxNesting {
		return nil, fmt.Errorf("document nests deeper than %d levels", maxNesting)
	}

	c, err := m.dec.PeekCode()
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, err
	}

	switch {
	case c == msgpcode.Nil:
		return nil, m.dec.DecodeNil()

	case msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32:
		n, err := m.dec.DecodeArrayLen()
		if err != nil {
			return nil, err
		}
		if err := m.checkLen(n, 1); err != nil {
			return nil, err
		}
		items := make([]any, 0, min(max(n, 0), preallocLimit))
		for i := 0; i < n; i++ {
			v, err := m.value(depth + 1)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		return items, nil

	case msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32:
		n, err := m.dec.DecodeMapLen()
		if err != nil {
			return nil, err
		}
		if err := m.checkLen(n, 2); err != nil {
			return nil, err
		}
		obj := &object{}
		for i := 0; i < n; i++ {
			key, err := m.dec.DecodeString()
			if err != nil {
				return nil, fmt.Errorf("object key: %w", err)
			}
			v, err := m.value(depth + 1)
			if err != nil {
				return nil, err
			}
			obj.add(key, v)
		}
		return obj, nil
	}

	v, err := m.dec.DecodeInterfaceLoose()
	if err != nil {
		return nil, err
	}
	if b, ok := v.([]byte); ok {
		return string(b), nil
	}
	return v, nil
}
