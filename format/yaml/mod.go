// Package yaml implements the format adapter for the YAML syntax.
//
// Loading goes through the untyped representation of the yaml library, which
// does not expose the key order of the source document: keys are sorted so
// that the result is at least deterministic. Dumping preserves the key order
// of the value tree.
package yaml

import (
	"sort"

	"go.dedis.ch/databind/format"
	"go.dedis.ch/databind/value"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

func init() {
	format.Register(Adapter{})
}

// Adapter is the YAML format adapter.
//
// - implements format.Adapter
type Adapter struct{}

// Name implements format.Adapter. It returns the YAML format name.
func (Adapter) Name() string {
	return "yaml"
}

// Load implements format.Adapter. It parses the data into a value tree.
func (Adapter) Load(data []byte) (value.Value, error) {
	var raw interface{}

	err := yaml.Unmarshal(data, &raw)
	if err != nil {
		return nil, xerrors.Errorf("couldn't decode yaml: %v", err)
	}

	return fromYAML(raw)
}

// Dump implements format.Adapter. It renders the value tree as YAML.
func (Adapter) Dump(v value.Value) ([]byte, error) {
	raw, err := toYAML(v)
	if err != nil {
		return nil, err
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return nil, xerrors.Errorf("couldn't encode yaml: %v", err)
	}

	return data, nil
}

func fromYAML(raw interface{}) (value.Value, error) {
	switch t := raw.(type) {
	case nil:
		return value.Null{}, nil

	case bool:
		return value.Bool(t), nil

	case int:
		return value.NewInt(int64(t)), nil

	case int64:
		return value.NewInt(t), nil

	case float64:
		return value.NewFloat(t), nil

	case string:
		return value.String(t), nil

	case []interface{}:
		res := make(value.Sequence, len(t))
		for i, item := range t {
			v, err := fromYAML(item)
			if err != nil {
				return nil, err
			}

			res[i] = v
		}

		return res, nil

	case map[interface{}]interface{}:
		keys := make([]string, 0, len(t))
		for key := range t {
			str, ok := key.(string)
			if !ok {
				return nil, xerrors.Errorf("yaml keys must be strings, got '%v'", key)
			}

			keys = append(keys, str)
		}

		sort.Strings(keys)

		res := value.NewObject()
		for _, key := range keys {
			v, err := fromYAML(t[key])
			if err != nil {
				return nil, err
			}

			res.Set(key, v)
		}

		return res, nil

	default:
		return nil, xerrors.Errorf("unsupported yaml value of type '%T'", raw)
	}
}

func toYAML(v value.Value) (interface{}, error) {
	switch t := v.(type) {
	case nil, value.Null:
		return nil, nil

	case value.Bool:
		return bool(t), nil

	case value.Number:
		if t.IsInt() {
			i, _ := t.Int()
			return i, nil
		}

		return t.Float(), nil

	case value.String:
		return string(t), nil

	case value.Sequence:
		res := make([]interface{}, len(t))
		for i, item := range t {
			raw, err := toYAML(item)
			if err != nil {
				return nil, err
			}

			res[i] = raw
		}

		return res, nil

	case *value.Object:
		res := make(yaml.MapSlice, 0, t.Len())
		for _, key := range t.Keys() {
			item, _ := t.Get(key)

			raw, err := toYAML(item)
			if err != nil {
				return nil, err
			}

			res = append(res, yaml.MapItem{Key: key, Value: raw})
		}

		return res, nil

	default:
		return nil, xerrors.Errorf("unsupported value of type '%T'", v)
	}
}
