package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyAdminSettingValue(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"flag", `{"enabled":true}`, SettingShapeFlag},
		{"flag wins over extra keys", `{"enabled":false,"note":"x"}`, SettingShapeFlag},
		{"threshold", `{"value":500}`, SettingShapeThreshold},
		{"toggles", `{"dashboard":true,"email":false,"sms":false}`, SettingShapeToggles},
		{"mixed object is opaque", `{"dashboard":true,"limit":5}`, SettingShapeOpaque},
		{"empty object is opaque", `{}`, SettingShapeOpaque},
		{"string is opaque", `"maintenance at noon"`, SettingShapeOpaque},
		{"number is opaque", `42`, SettingShapeOpaque},
		{"array is opaque", `["a","b"]`, SettingShapeOpaque},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ClassifyAdminSettingValue(json.RawMessage(tc.raw)))
		})
	}
}
