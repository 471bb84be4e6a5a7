package dto

import "encoding/json"

// Admin setting values are stored verbatim as JSON documents. Shapes are a
// convention, not a schema: a handful of known layouts plus an opaque
// fallback for anything new.
const (
	SettingShapeFlag      = "flag"      // {"enabled": bool, "message"?: string}
	SettingShapeThreshold = "threshold" // {"value": number, "unit"?: string}
	SettingShapeToggles   = "toggles"   // flat object of bool fields
	SettingShapeOpaque    = "opaque"
)

type FlagSetting struct {
	Enabled   bool   `json:"enabled"`
	Message   string `json:"message,omitempty"`
	Frequency string `json:"frequency,omitempty"`
}

type ThresholdSetting struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// ClassifyAdminSettingValue inspects a stored document and reports which of
// the known shapes it matches. Callers that need the actual fields unmarshal
// into the matching struct; everything else stays opaque.
func ClassifyAdminSettingValue(raw json.RawMessage) string {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return SettingShapeOpaque
	}

	if _, ok := probe["enabled"]; ok {
		return SettingShapeFlag
	}
	if _, ok := probe["value"]; ok {
		return SettingShapeThreshold
	}

	if len(probe) == 0 {
		return SettingShapeOpaque
	}
	for _, v := range probe {
		var b bool
		if err := json.Unmarshal(v, &b); err != nil {
			return SettingShapeOpaque
		}
	}
	return SettingShapeToggles
}
