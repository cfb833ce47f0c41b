package templates

import (
	"encoding/json"
	"fmt"

	"github.com/san-kum/physplay/internal/vmath"
)

// StarterData seeds a template with initial positions.
type StarterData struct {
	Positions []vmath.Vec2 `json:"positions"`
}

func NewStarter(positions []vmath.Vec2) (json.RawMessage, error) {
	return json.Marshal(StarterData{Positions: positions})
}

func decodeStarter(raw json.RawMessage) (StarterData, error) {
	var s StarterData
	if len(raw) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(raw, &s); err != nil {
		return s, fmt.Errorf("starter data: %w", err)
	}
	return s, nil
}

func decodePayload(name string, raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return fmt.Errorf("no data provided for the %q event", name)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%s payload: %w", name, err)
	}
	return nil
}
