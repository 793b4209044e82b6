package contracts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ID is a record identifier. Inputs may carry ids as strings, numbers or
// booleans; all of them decode to the same string key, so seller 1 and
// seller "1" are one seller. null decodes to the empty id.
type ID string

// String returns the id as a plain string
func (id ID) String() string {
	return string(id)
}

// UnmarshalJSON accepts any JSON scalar
func (id *ID) UnmarshalJSON(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch s := v.(type) {
	case nil:
		*id = ""
	case string:
		*id = ID(s)
	case json.Number:
		*id = ID(normalizeNumber(s.String()))
	case bool:
		*id = ID(strconv.FormatBool(s))
	default:
		return fmt.Errorf("id must be a scalar, got %s", b)
	}
	return nil
}

// UnmarshalYAML accepts any YAML scalar
func (id *ID) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: id must be a scalar", node.Line)
	}

	switch node.Tag {
	case "!!null":
		*id = ""
	case "!!int", "!!float":
		*id = ID(normalizeNumber(node.Value))
	default:
		*id = ID(node.Value)
	}
	return nil
}

// normalizeNumber formats numeric ids canonically so 1, 1.0 and 1e0 agree
func normalizeNumber(s string) string {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return s
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
