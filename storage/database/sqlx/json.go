package sqlxrepos

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/pkg/errors"
)

// jsonText is a JSON column: JSONB on postgres, TEXT on SQLite.
type jsonText []byte

func newJSONText(v interface{}) (jsonText, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encoding JSON column")
	}
	return b, nil
}

func (j jsonText) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return string(j), nil
}

func (j *jsonText) Scan(src interface{}) error {
	switch s := src.(type) {
	case nil:
		*j = nil
	case []byte:
		*j = append((*j)[:0], s...)
	case string:
		*j = jsonText(s)
	default:
		return errors.Errorf("cannot scan %T into a JSON column", src)
	}
	return nil
}

func (j jsonText) decode(v interface{}) error {
	if err := json.Unmarshal(j, v); err != nil {
		return errors.Wrap(err, "decoding JSON column")
	}
	return nil
}
