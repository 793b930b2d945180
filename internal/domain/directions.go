package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DirectionsStatusOK = "OK"

// DirectionsResponse - ответ провайдера маршрутов (Google Directions compatible)
type DirectionsResponse struct {
	Status       string            `json:"status"`
	ErrorMessage string            `json:"error_message,omitempty"`
	Routes       []DirectionsRoute `json:"routes"`
}

type DirectionsRoute struct {
	Summary string          `json:"summary,omitempty"`
	Legs    []DirectionsLeg `json:"legs"`
}

type DirectionsLeg struct {
	Distance LegDistance `json:"distance"`
	Duration LegDuration `json:"duration"`
}

type LegDistance struct {
	Value float64 `json:"value"` // meters
	Text  string  `json:"text,omitempty"`
}

// LegDuration accepts {"value": 123} as well as a duration string such as "123s".
type LegDuration struct {
	Seconds float64
	Text    string
}

func (d *LegDuration) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil
	}

	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		secs, err := parseDurationString(s)
		if err != nil {
			return err
		}
		d.Seconds = secs
		return nil
	}

	var obj struct {
		Value json.RawMessage `json:"value"`
		Text  string          `json:"text"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode leg duration: %w", err)
	}
	d.Text = obj.Text
	if len(obj.Value) == 0 {
		return nil
	}
	if obj.Value[0] == '"' {
		var s string
		if err := json.Unmarshal(obj.Value, &s); err != nil {
			return err
		}
		secs, err := parseDurationString(s)
		if err != nil {
			return err
		}
		d.Seconds = secs
		return nil
	}
	return json.Unmarshal(obj.Value, &d.Seconds)
}

func (d LegDuration) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Value float64 `json:"value"`
		Text  string  `json:"text,omitempty"`
	}{d.Seconds, d.Text})
}

func parseDurationString(s string) (float64, error) {
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return secs, nil
	}
	dur, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parse leg duration %q: %w", s, err)
	}
	return dur.Seconds(), nil
}
