package session

import "encoding/json"

// Data is the persisted session payload.
//
// Username is the authenticated identity; a session is logged in when it is
// non-empty. Values holds everything else handlers store. Values round-trip
// through JSON, so numbers come back as float64.
type Data struct {
	Values   map[string]any `json:"values,omitempty"`
	ID       string         `json:"id"`
	Username string         `json:"username,omitempty"`
}

func (d Data) encode() (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeData(raw string) (Data, error) {
	var d Data
	if raw == "" {
		return d, nil
	}
	err := json.Unmarshal([]byte(raw), &d)
	return d, err
}
