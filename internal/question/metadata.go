package question

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// member is one key of a JSON object with its raw value.
type member struct {
	key   string
	value json.RawMessage
}

// decodeObject reads a top-level JSON object keeping key order.
func decodeObject(data []byte) ([]member, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("metadata is not a JSON object")
	}
	var out []member
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		out = append(out, member{key: key, value: v})
	}
	return out, nil
}

// patchObject overwrites the members of base that appear in update and
// appends the rest of update in its own order.
func patchObject(base, update []member) []member {
	idx := make(map[string]int, len(base))
	for i, m := range base {
		idx[m.key] = i
	}
	out := append([]member(nil), base...)
	for _, u := range update {
		if i, ok := idx[u.key]; ok {
			out[i].value = u.value
			continue
		}
		out = append(out, u)
	}
	return out
}

// encodeObject renders members with two-space indentation and a trailing
// newline, the layout of JSON.stringify(v, null, 2).
func encodeObject(members []member) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, m := range members {
		if i > 0 {
			buf.WriteString(",")
		}
		key, err := marshalNoEscape(m.key)
		if err != nil {
			return nil, err
		}
		buf.WriteString("\n  ")
		buf.Write(key)
		buf.WriteString(": ")
		if err := json.Indent(&buf, m.value, "  ", "  "); err != nil {
			return nil, fmt.Errorf("key %q: %w", m.key, err)
		}
	}
	if len(members) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
