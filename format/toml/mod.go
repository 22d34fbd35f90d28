// Package toml implements the format adapter for the TOML syntax.
//
// The root of a TOML document is always a table, so only object roots can be
// dumped. TOML has no null: a null value anywhere in the tree is an error
// rather than a silent omission.
package toml

import (
	"sort"
	"time"

	"github.com/pelletier/go-toml"
	"go.dedis.ch/databind/format"
	"go.dedis.ch/databind/value"
	"golang.org/x/xerrors"
)

func init() {
	format.Register(Adapter{})
}

// Adapter is the TOML format adapter.
//
// - implements format.Adapter
type Adapter struct{}

// Name implements format.Adapter. It returns the TOML format name.
func (Adapter) Name() string {
	return "toml"
}

// Load implements format.Adapter. It parses the data into a value tree. The
// keys of a table are ordered by their position in the source document.
func (Adapter) Load(data []byte) (value.Value, error) {
	tree, err := toml.LoadBytes(data)
	if err != nil {
		return nil, xerrors.Errorf("couldn't decode toml: %v", err)
	}

	return fromTree(tree)
}

// Dump implements format.Adapter. It renders the value tree as TOML.
func (Adapter) Dump(v value.Value) ([]byte, error) {
	obj, ok := v.(*value.Object)
	if !ok {
		return nil, xerrors.Errorf("toml documents must be objects, got '%T'", v)
	}

	raw, err := toRaw(obj)
	if err != nil {
		return nil, err
	}

	tree, err := toml.TreeFromMap(raw.(map[string]interface{}))
	if err != nil {
		return nil, xerrors.Errorf("couldn't build toml tree: %v", err)
	}

	res, err := tree.ToTomlString()
	if err != nil {
		return nil, xerrors.Errorf("couldn't encode toml: %v", err)
	}

	return []byte(res), nil
}

func fromTree(tree *toml.Tree) (value.Value, error) {
	keys := tree.Keys()

	sort.Slice(keys, func(i, j int) bool {
		pi, pj := tree.GetPosition(keys[i]), tree.GetPosition(keys[j])
		if pi.Line != pj.Line {
			return pi.Line < pj.Line
		}

		return pi.Col < pj.Col
	})

	res := value.NewObject()

	for _, key := range keys {
		v, err := fromTOML(tree.Get(key))
		if err != nil {
			return nil, err
		}

		res.Set(key, v)
	}

	return res, nil
}

func fromTOML(raw interface{}) (value.Value, error) {
	switch t := raw.(type) {
	case *toml.Tree:
		return fromTree(t)

	case []*toml.Tree:
		res := make(value.Sequence, len(t))
		for i, tree := range t {
			v, err := fromTree(tree)
			if err != nil {
				return nil, err
			}

			res[i] = v
		}

		return res, nil

	case []interface{}:
		res := make(value.Sequence, len(t))
		for i, item := range t {
			v, err := fromTOML(item)
			if err != nil {
				return nil, err
			}

			res[i] = v
		}

		return res, nil

	case bool:
		return value.Bool(t), nil

	case int64:
		return value.NewInt(t), nil

	case float64:
		return value.NewFloat(t), nil

	case string:
		return value.String(t), nil

	case time.Time:
		return value.String(t.Format(time.RFC3339)), nil

	default:
		return nil, xerrors.Errorf("unsupported toml value of type '%T'", raw)
	}
}

func toRaw(v value.Value) (interface{}, error) {
	switch t := v.(type) {
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
			raw, err := toRaw(item)
			if err != nil {
				return nil, err
			}

			res[i] = raw
		}

		return res, nil

	case *value.Object:
		res := make(map[string]interface{}, t.Len())
		for _, key := range t.Keys() {
			item, _ := t.Get(key)

			raw, err := toRaw(item)
			if err != nil {
				return nil, err
			}

			res[key] = raw
		}

		return res, nil

	default:
		return nil, xerrors.Errorf("toml cannot encode %s values", value.Shape(v))
	}
}
