// Package json implements the format adapter for the JSON syntax.
//
// The document is decoded token by token instead of through an intermediate
// map, so that object keys keep the order of the source document and numbers
// keep their integer or floating point nature.
package json

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"go.dedis.ch/databind/format"
	"go.dedis.ch/databind/value"
	"golang.org/x/xerrors"
)

func init() {
	format.Register(Adapter{})
}

// Adapter is the JSON format adapter.
//
// - implements format.Adapter
type Adapter struct{}

// Name implements format.Adapter. It returns the JSON format name.
func (Adapter) Name() string {
	return "json"
}

// Load implements format.Adapter. It parses the data into a value tree.
func (Adapter) Load(data []byte) (value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	res, err := decodeValue(dec)
	if err != nil {
		return nil, xerrors.Errorf("couldn't decode json: %v", err)
	}

	if _, err := dec.Token(); err != io.EOF {
		return nil, xerrors.New("trailing data after the json document")
	}

	return res, nil
}

// Dump implements format.Adapter. It renders the value tree as JSON,
// preserving the key order of objects.
func (Adapter) Dump(v value.Value) ([]byte, error) {
	buf := new(bytes.Buffer)

	err := encodeValue(buf, v)
	if err != nil {
		return nil, xerrors.Errorf("couldn't encode json: %v", err)
	}

	return buf.Bytes(), nil
}

func decodeValue(dec *json.Decoder) (value.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (value.Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		if t == '{' {
			return decodeObject(dec)
		}
		if t == '[' {
			return decodeSequence(dec)
		}

		return nil, xerrors.Errorf("unexpected delimiter '%v'", t)

	case bool:
		return value.Bool(t), nil

	case string:
		return value.String(t), nil

	case json.Number:
		return decodeNumber(t)

	case nil:
		return value.Null{}, nil

	default:
		return nil, xerrors.Errorf("unexpected token '%v'", tok)
	}
}

func decodeObject(dec *json.Decoder) (value.Value, error) {
	res := value.NewObject()

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}

		key, ok := tok.(string)
		if !ok {
			return nil, xerrors.Errorf("unexpected object key '%v'", tok)
		}

		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}

		res.Set(key, v)
	}

	// Consume the closing brace.
	_, err := dec.Token()
	if err != nil {
		return nil, err
	}

	return res, nil
}

func decodeSequence(dec *json.Decoder) (value.Value, error) {
	res := value.Sequence{}

	for dec.More() {
		v, err := decodeValue(dec)
		if err != nil {
			return nil, err
		}

		res = append(res, v)
	}

	// Consume the closing bracket.
	_, err := dec.Token()
	if err != nil {
		return nil, err
	}

	return res, nil
}

func decodeNumber(num json.Number) (value.Value, error) {
	if !strings.ContainsAny(num.String(), ".eE") {
		i, err := num.Int64()
		if err == nil {
			return value.NewInt(i), nil
		}
	}

	f, err := num.Float64()
	if err != nil {
		return nil, xerrors.Errorf("invalid number '%s': %v", num, err)
	}

	return value.NewFloat(f), nil
}

func encodeValue(buf *bytes.Buffer, v value.Value) error {
	switch t := v.(type) {
	case nil, value.Null:
		buf.WriteString("null")

	case value.Bool:
		buf.WriteString(strconv.FormatBool(bool(t)))

	case value.Number:
		buf.WriteString(t.String())

	case value.String:
		data, err := json.Marshal(string(t))
		if err != nil {
			return err
		}

		buf.Write(data)

	case value.Sequence:
		buf.WriteByte('[')

		for i, item := range t {
			if i > 0 {
				buf.WriteByte(',')
			}

			err := encodeValue(buf, item)
			if err != nil {
				return err
			}
		}

		buf.WriteByte(']')

	case *value.Object:
		buf.WriteByte('{')

		for i, key := range t.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}

			data, err := json.Marshal(key)
			if err != nil {
				return err
			}

			buf.Write(data)
			buf.WriteByte(':')

			item, _ := t.Get(key)

			err = encodeValue(buf, item)
			if err != nil {
				return err
			}
		}

		buf.WriteByte('}')

	default:
		return xerrors.Errorf("unsupported value of type '%T'", v)
	}

	return nil
}
