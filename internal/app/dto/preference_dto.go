package dto

import (
	"encoding/json"
	"time"
)

type Preference struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type PreferenceBody struct {
	Value json.RawMessage `json:"value"`
}
