package http

import (
	"bytes"
	"encoding/json"

	"tds-assistant/service"
)

// amount accepts either a JSON number or free text from a form field.
// Text that is not a usable number becomes 0.
type amount struct {
	value float64
	set   bool
}

func (a *amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	a.set = true
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		a.set = s != ""
		a.value = service.ParseAmount(s)
		return nil
	}
	return json.Unmarshal(data, &a.value)
}
