package actionlog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Marshal encodes r as a JSON object whose first field is "action".
func Marshal(r Record) ([]byte, error) {
	body, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding %s record: %w", r.Action(), err)
	}
	if len(body) < 2 || body[0] != '{' {
		return nil, fmt.Errorf("encoding %s record: not a JSON object", r.Action())
	}

	var buf bytes.Buffer
	buf.Grow(len(body) + len(r.Action()) + 12)
	buf.WriteString(`{"action":`)
	buf.WriteString(strconv.Quote(r.Action()))
	if len(body) > 2 {
		buf.WriteByte(',')
	}
	buf.Write(body[1:])
	return buf.Bytes(), nil
}

// MarshalJSON encodes the log as a JSON array of tagged records.
func (l Log) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, r := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// Actions lists the action tag of every record, in order.
func (l Log) Actions() []string {
	out := make([]string, len(l))
	for i, r := range l {
		out[i] = r.Action()
	}
	return out
}
