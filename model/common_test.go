package model

import (
	"encoding/xml"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityValues(t *testing.T) {
	assert.Equal(t, 1, int(SeverityError))
	assert.Equal(t, 2, int(SeverityWarning))
	assert.Equal(t, 3, int(SeverityInformation))

	for _, s := range AllSeverities() {
		assert.True(t, s.IsValid(), s.String())
	}
	assert.False(t, Severity(0).IsValid())
	assert.False(t, Severity(4).IsValid())
	assert.Equal(t, "severity(4)", Severity(4).String())
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		in   string
		want Severity
	}{
		{"error", SeverityError},
		{"WARNING", SeverityWarning},
		{"information", SeverityInformation},
		{"1", SeverityError},
		{"3", SeverityInformation},
	}
	for _, tt := range tests {
		got, err := ParseSeverity(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, in := range []string{"", "fatal", "0", "4"} {
		_, err := ParseSeverity(in)
		assert.Error(t, err, in)
	}
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus("Completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got)

	_, err = ParseStatus("running")
	assert.Error(t, err)

	assert.False(t, Status("").IsValid())
	assert.Len(t, AllStatuses(), 3)
}

func TestNormalizeParamValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want any
	}{
		{"string", "TestStr", "TestStr"},
		{"int", 1, int64(1)},
		{"int32", int32(-7), int64(-7)},
		{"uint8", uint8(255), int64(255)},
		{"int64", int64(42), int64(42)},
		{"float32", float32(2), float64(2)},
		{"float64", 2.0, 2.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeParamValue(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeParamValueRejects(t *testing.T) {
	for name, in := range map[string]any{
		"nil":      nil,
		"bool":     true,
		"slice":    []string{"x"},
		"nan":      math.NaN(),
		"inf":      math.Inf(1),
		"max uint": uint64(math.MaxUint64),
	} {
		_, err := NormalizeParamValue(in)
		assert.Error(t, err, name)
	}
}

func TestFormatParamValue(t *testing.T) {
	assert.Equal(t, "TestStr", FormatParamValue("TestStr"))
	assert.Equal(t, "1", FormatParamValue(int64(1)))
	assert.Equal(t, "2.0", FormatParamValue(2.0))
	assert.Equal(t, "0.5", FormatParamValue(0.5))
	assert.Equal(t, "1e+21", FormatParamValue(1e21))
	assert.Equal(t, "", FormatParamValue(nil))
}

func TestParseParamValue(t *testing.T) {
	assert.Equal(t, int64(1), ParseParamValue("1"))
	assert.Equal(t, 2.0, ParseParamValue("2.0"))
	assert.Equal(t, "TestStr", ParseParamValue("TestStr"))
	assert.Equal(t, "", ParseParamValue(""))
	// Strings spelling non-finite floats must stay strings.
	assert.Equal(t, "NaN", ParseParamValue("NaN"))
	assert.Equal(t, "+Inf", ParseParamValue("+Inf"))
}

func TestParamValueKindSurvivesRoundTrip(t *testing.T) {
	for _, value := range []any{"TestStr", int64(1), 2.0} {
		back := ParseParamValue(FormatParamValue(value))
		assert.Equal(t, value, back)
	}
}

func TestParamXMLRoundTrip(t *testing.T) {
	data, err := xml.Marshal(Param{Name: "testParam", Value: 2.0})
	require.NoError(t, err)
	assert.Equal(t, `<Param name="testParam" value="2.0"></Param>`, string(data))

	var back Param
	require.NoError(t, xml.Unmarshal(data, &back))
	assert.Equal(t, Param{Name: "testParam", Value: 2.0}, back)
}

func TestParamMissingValueReadsAsEmptyString(t *testing.T) {
	var p Param
	require.NoError(t, xml.Unmarshal([]byte(`<Param name="x"/>`), &p))
	assert.Equal(t, Param{Name: "x", Value: ""}, p)
}

func TestParamValidate(t *testing.T) {
	require.NoError(t, Param{Name: "p", Value: "v"}.Validate())

	err := Param{Name: "", Value: "v"}.Validate()
	require.Error(t, err)

	err = Param{Name: "p", Value: true}.Validate()
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Error(), `param "p"`)
}
