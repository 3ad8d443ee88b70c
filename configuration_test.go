package baselib

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qc-framework/baselib/model"
)

const demoApplication = "DemoCheckerBundle"

func TestSetGlobalParams(t *testing.T) {
	cfg := NewConfiguration()
	require.NoError(t, cfg.SetGlobalParam("testConfigParamStr", "TestStr"))
	require.NoError(t, cfg.SetGlobalParam("testConfigParamInt", 1))
	require.NoError(t, cfg.SetGlobalParam("testConfigParamFloat", 2.0))

	assert.Equal(t, "TestStr", cfg.GlobalParam("testConfigParamStr"))
	assert.Equal(t, int64(1), cfg.GlobalParam("testConfigParamInt"))
	assert.Equal(t, 2.0, cfg.GlobalParam("testConfigParamFloat"))
	assert.Nil(t, cfg.GlobalParam("unknown"))

	assert.Equal(t, map[string]any{
		"testConfigParamStr":   "TestStr",
		"testConfigParamInt":   int64(1),
		"testConfigParamFloat": 2.0,
	}, cfg.GlobalParams())
}

func TestGlobalParamsOnEmptyStore(t *testing.T) {
	cfg := NewConfiguration()
	assert.Nil(t, cfg.GlobalParam("any"))
	assert.Empty(t, cfg.GlobalParams())
}

func TestSetGlobalParamRejectsInvalidValue(t *testing.T) {
	cfg := NewConfiguration()
	err := cfg.SetGlobalParam("bad", []string{"x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported param value type")
}

func TestCheckerBundleParams(t *testing.T) {
	cfg := NewConfiguration()
	cfg.RegisterCheckerBundle(demoApplication)
	require.NoError(t, cfg.SetCheckerBundleParam(demoApplication, "strResultFile", "demo_result.xqar"))
	require.NoError(t, cfg.SetCheckerBundleParam(demoApplication, "intParam", 42))

	assert.Equal(t, "demo_result.xqar", cfg.CheckerBundleParam(demoApplication, "strResultFile"))
	assert.Equal(t, int64(42), cfg.CheckerBundleParam(demoApplication, "intParam"))
	assert.Nil(t, cfg.CheckerBundleParam(demoApplication, "unknown"))
	assert.Nil(t, cfg.CheckerBundleParam("UnknownBundle", "strResultFile"))

	require.NotNil(t, cfg.CheckerBundle(demoApplication))
	assert.Nil(t, cfg.CheckerBundle("UnknownBundle"))
}

func TestSetCheckerBundleParamUnknownBundle(t *testing.T) {
	cfg := NewConfiguration()
	cfg.RegisterCheckerBundle(demoApplication)

	err := cfg.SetCheckerBundleParam("UnknownBundle", "p", "v")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBundleNotFound)
	assert.Contains(t, err.Error(), `checker bundle "UnknownBundle" does not exist on the configuration`)
}

func TestSetCheckerBundleParamOnEmptyStore(t *testing.T) {
	cfg := NewConfiguration()
	err := cfg.SetCheckerBundleParam(demoApplication, "p", "v")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestConfigCheckerParams(t *testing.T) {
	cfg := NewConfiguration()
	cfg.RegisterCheckerBundle(demoApplication)
	require.NoError(t, cfg.RegisterChecker(demoApplication, "exampleChecker", model.SeverityInformation, model.SeverityError))
	require.NoError(t, cfg.SetCheckerParam(demoApplication, "exampleChecker", "testParam", "checkerValue"))

	assert.Equal(t, "checkerValue", cfg.CheckerParam(demoApplication, "exampleChecker", "testParam"))
	assert.Nil(t, cfg.CheckerParam(demoApplication, "exampleChecker", "unknown"))
	assert.Nil(t, cfg.CheckerParam(demoApplication, "unknownChecker", "testParam"))
	assert.Nil(t, cfg.CheckerParam("UnknownBundle", "exampleChecker", "testParam"))

	assert.Equal(t, []string{"exampleChecker"}, cfg.BundleCheckerIDs(demoApplication))
	assert.Nil(t, cfg.BundleCheckerIDs("UnknownBundle"))

	bundle := cfg.CheckerBundle(demoApplication)
	require.NotNil(t, bundle)
	checker := bundle.Checker("exampleChecker")
	require.NotNil(t, checker)
	assert.Equal(t, model.SeverityError, checker.MaxLevel)
	assert.Equal(t, model.SeverityInformation, checker.MinLevel)
}

func TestRegisterCheckerInvalidSeverity(t *testing.T) {
	cfg := NewConfiguration()
	cfg.RegisterCheckerBundle(demoApplication)

	err := cfg.RegisterChecker(demoApplication, "c", model.Severity(0), model.SeverityError)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid severity range")

	err = cfg.RegisterChecker(demoApplication, "c", model.SeverityInformation, model.Severity(9))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid severity range")
}

func TestRegisterCheckerUnknownConfigBundle(t *testing.T) {
	cfg := NewConfiguration()
	cfg.RegisterCheckerBundle(demoApplication)

	err := cfg.RegisterChecker("UnknownBundle", "c", model.SeverityInformation, model.SeverityError)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBundleNotFound)
}

func TestReportModuleParams(t *testing.T) {
	cfg := NewConfiguration()
	cfg.RegisterReportModule("TextReport")
	require.NoError(t, cfg.SetReportModuleParam("TextReport", "strParam", "outputName"))

	assert.Equal(t, "outputName", cfg.ReportModuleParam("TextReport", "strParam"))
	assert.Nil(t, cfg.ReportModuleParam("TextReport", "unknown"))
	assert.Nil(t, cfg.ReportModuleParam("UnknownModule", "strParam"))

	modules := cfg.ReportModules()
	require.Len(t, modules, 1)
	assert.Equal(t, "TextReport", modules[0].Application)

	err := cfg.SetReportModuleParam("UnknownModule", "p", "v")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrReportModuleNotFound)
}

func TestConfigurationWriteCanonicalBytes(t *testing.T) {
	cfg := NewConfiguration()
	require.NoError(t, cfg.SetGlobalParam("XodrFile", "track.xodr"))
	require.NoError(t, cfg.SetGlobalParam("floatParam", 2.0))
	cfg.RegisterReportModule("TextReport")
	require.NoError(t, cfg.SetReportModuleParam("TextReport", "strParam", "outputName"))
	cfg.RegisterCheckerBundle(demoApplication)
	require.NoError(t, cfg.SetCheckerBundleParam(demoApplication, "strResultFile", "demo_result.xqar"))
	require.NoError(t, cfg.RegisterChecker(demoApplication, "exampleChecker", model.SeverityInformation, model.SeverityError))
	require.NoError(t, cfg.SetCheckerParam(demoApplication, "exampleChecker", "testParam", "checkerValue"))

	path := filepath.Join(t.TempDir(), "config.xml")
	require.NoError(t, cfg.Write(path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)

	want, err := os.ReadFile(filepath.Join("testdata", "ordered_config.xml"))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestConfigurationLoadOrderIndependent(t *testing.T) {
	ordered := NewConfiguration()
	require.NoError(t, ordered.Load(filepath.Join("testdata", "ordered_config.xml")))

	unordered := NewConfiguration()
	require.NoError(t, unordered.Load(filepath.Join("testdata", "unordered_config.xml")))

	// Attribute and element order in the input does not matter: both
	// files rewrite to the same canonical bytes.
	dir := t.TempDir()
	orderedOut := filepath.Join(dir, "ordered.xml")
	unorderedOut := filepath.Join(dir, "unordered.xml")
	require.NoError(t, ordered.Write(orderedOut))
	require.NoError(t, unordered.Write(unorderedOut))

	orderedData, err := os.ReadFile(orderedOut)
	require.NoError(t, err)
	unorderedData, err := os.ReadFile(unorderedOut)
	require.NoError(t, err)
	assert.Equal(t, string(orderedData), string(unorderedData))

	// The ordered fixture is already canonical.
	source, err := os.ReadFile(filepath.Join("testdata", "ordered_config.xml"))
	require.NoError(t, err)
	assert.Equal(t, string(source), string(orderedData))

	// Spot-check the parsed content of the scrambled file.
	assert.Equal(t, "track.xodr", unordered.GlobalParam("XodrFile"))
	assert.Equal(t, 2.0, unordered.GlobalParam("floatParam"))
	assert.Equal(t, "demo_result.xqar", unordered.CheckerBundleParam(demoApplication, "strResultFile"))
	assert.Equal(t, "checkerValue", unordered.CheckerParam(demoApplication, "exampleChecker", "testParam"))
	assert.Equal(t, "outputName", unordered.ReportModuleParam("TextReport", "strParam"))
}

func TestConfigurationLoadTwiceFails(t *testing.T) {
	path := filepath.Join("testdata", "ordered_config.xml")

	cfg := NewConfiguration()
	require.NoError(t, cfg.Load(path))

	err := cfg.Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAlreadyLoaded)

	require.NoError(t, cfg.Reload(path))
	assert.Equal(t, "track.xodr", cfg.GlobalParam("XodrFile"))
}

func TestConfigurationLoadMissingFile(t *testing.T) {
	cfg := NewConfiguration()
	err := cfg.Load(filepath.Join(t.TempDir(), "absent.xml"))
	require.Error(t, err)

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, KindIO, storeErr.Kind)
}

func TestConfigurationLoadRejectsWrongRoot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrong.xml")
	content := `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<CheckerResults version="0.0.1"></CheckerResults>
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg := NewConfiguration()
	err := cfg.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected element type <Config>")
}

func TestConfigurationWriteEmpty(t *testing.T) {
	cfg := NewConfiguration()
	err := cfg.Write(filepath.Join(t.TempDir(), "config.xml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestConfigurationWriteRejectsEmptyBundle(t *testing.T) {
	cfg := NewConfiguration()
	cfg.RegisterCheckerBundle(demoApplication)

	err := cfg.Write(filepath.Join(t.TempDir(), "config.xml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, &StoreError{Kind: KindSchema})
	assert.Contains(t, err.Error(), "at least one param or checker is required")
}

func TestConfigurationRoundTripKeepsValueKinds(t *testing.T) {
	cfg := NewConfiguration()
	require.NoError(t, cfg.SetGlobalParam("strParam", "TestStr"))
	require.NoError(t, cfg.SetGlobalParam("intParam", 1))
	require.NoError(t, cfg.SetGlobalParam("floatParam", 2.0))

	path := filepath.Join(t.TempDir(), "config.xml")
	require.NoError(t, cfg.Write(path))

	loaded := NewConfiguration()
	require.NoError(t, loaded.Load(path))

	assert.Equal(t, "TestStr", loaded.GlobalParam("strParam"))
	assert.Equal(t, int64(1), loaded.GlobalParam("intParam"))
	assert.Equal(t, 2.0, loaded.GlobalParam("floatParam"))
}
