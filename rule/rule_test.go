package rule

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComposeValidUID(t *testing.T) {
	uid, err := Compose("test.com", "qc", "1.0.0", "qwerty.qwerty")
	require.NoError(t, err)
	assert.Equal(t, "test.com", uid.EmanatingEntity)
	assert.Equal(t, "qc", uid.Standard)
	assert.Equal(t, "1.0.0", uid.DefinitionSetting)
	assert.Equal(t, "qwerty.qwerty", uid.RuleFullName)
	assert.Equal(t, "test.com:qc:1.0.0:qwerty.qwerty", uid.String())
}

func TestComposeSingleSegmentName(t *testing.T) {
	uid, err := Compose("asam.net", "json", "1.0.0", "valid_schema")
	require.NoError(t, err)
	assert.Equal(t, "asam.net:json:1.0.0:valid_schema", uid.String())
}

func TestComposeInvalidField(t *testing.T) {
	tests := []struct {
		name  string
		uid   [4]string
		field string
	}{
		{"empty entity", [4]string{"", "qc", "1.0.0", "qwerty.qwerty"}, "emanating_entity"},
		{"entity without dot", [4]string{"test", "qc", "1.0.0", "qwerty.qwerty"}, "emanating_entity"},
		{"empty standard", [4]string{"test.com", "", "1.0.0", "qwerty.qwerty"}, "standard"},
		{"uppercase standard", [4]string{"test.com", "QC", "1.0.0", "qwerty.qwerty"}, "standard"},
		{"empty setting", [4]string{"test.com", "qc", "", "qwerty.qwerty"}, "definition_setting"},
		{"setting without dot", [4]string{"test.com", "qc", "1", "qwerty.qwerty"}, "definition_setting"},
		{"empty name", [4]string{"test.com", "qc", "1.0.0", ""}, "rule_full_name"},
		{"capitalized name segment", [4]string{"test.com", "qc", "1.0.0", "qwerty.Qwerty"}, "rule_full_name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compose(tt.uid[0], tt.uid[1], tt.uid[2], tt.uid[3])
			require.Error(t, err)

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	uid, err := Parse("test.com:qc:1.0.0:qwerty.qwerty")
	require.NoError(t, err)

	composed, err := Compose(uid.EmanatingEntity, uid.Standard, uid.DefinitionSetting, uid.RuleFullName)
	require.NoError(t, err)
	assert.Equal(t, uid, composed)
	assert.Equal(t, "test.com:qc:1.0.0:qwerty.qwerty", composed.String())
}

func TestParseMalformedUID(t *testing.T) {
	for _, raw := range []string{"", "test.com", "test.com:qc", "test.com:qc:1.0.0"} {
		_, err := Parse(raw)
		require.Error(t, err, "uid %q", raw)
		assert.ErrorIs(t, err, ErrMalformedUID, "uid %q", raw)
	}
}

func TestParseInvalidField(t *testing.T) {
	tests := []struct {
		raw   string
		field string
	}{
		{":qc:1.0.0:qwerty.qwerty", "emanating_entity"},
		{"test.com::1.0.0:qwerty.qwerty", "standard"},
		{"test.com:qc::qwerty.qwerty", "definition_setting"},
		{"test.com:qc:1.0.0:", "rule_full_name"},
		{"test.com:qc:1.0.0:qwerty.qwerty:extra", "rule_full_name"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			_, err := Parse(tt.raw)
			require.Error(t, err)
			assert.False(t, errors.Is(err, ErrMalformedUID))

			var fieldErr *FieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestValidateReportsPattern(t *testing.T) {
	uid := UID{EmanatingEntity: "asam.net", Standard: "xodr", DefinitionSetting: "1.0.0", RuleFullName: "road.lane.link.zero_width"}
	require.NoError(t, uid.Validate())

	uid.DefinitionSetting = "v1"
	err := uid.Validate()
	require.Error(t, err)

	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, `^[0-9]+(\.[0-9]+)+$`, fieldErr.Pattern)
	assert.Contains(t, err.Error(), "definition_setting")
}
