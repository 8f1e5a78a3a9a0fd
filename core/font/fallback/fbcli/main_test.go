package main

import (
	"testing"

	"github.com/npillmayer/fontfallback/core/font"
	"github.com/npillmayer/fontfallback/core/font/fallback"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontfallback.fonts")
	defer teardown()
	//
	for line, expected := range map[string]Command{
		"quit":                      {code: QUIT},
		"help manual":               {code: HELP, arg: "manual"},
		"load  /tmp/Go Regular.ttf": {code: LOAD, arg: "/tmp/Go Regular.ttf"},
		"Category serif":            {code: CATEGORY, arg: "serif"},
		"manual Helvetica, Arial":   {code: MANUAL, arg: "Helvetica, Arial"},
		"resolve":                   {code: RESOLVE},
		"css":                       {code: CSS},
		"metrics":                   {code: METRICS},
	} {
		cmd, err := parseCommand(line)
		if assert.NoError(t, err, line) {
			assert.Equal(t, expected, cmd, line)
		}
	}
	for _, line := range []string{"load", "category", "frobnicate"} {
		_, err := parseCommand(line)
		assert.Error(t, err, line)
	}
}

func TestInterpreterSession(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontfallback.fonts")
	defer teardown()
	//
	intp := NewIntp(testconfig.Conf{})
	quit, err := intp.execute(Command{code: RESOLVE})
	assert.False(t, quit)
	assert.Error(t, err, "resolve without a font should fail")
	//
	f, err := font.ParseOpenTypeFont(goregular.TTF)
	require.NoError(t, err)
	require.NoError(t, intp.registry.StoreFont(f))
	intp.font = f
	for _, cmd := range []Command{
		{code: CATEGORY, arg: "sans-serif"},
		{code: MANUAL, arg: "Helvetica, Arial"},
		{code: RESOLVE},
		{code: CSS},
		{code: METRICS},
		{code: HELP},
	} {
		quit, err := intp.execute(cmd)
		require.NoError(t, err, "command %d", cmd.code)
		assert.False(t, quit)
	}
	require.Len(t, intp.fallbacks, 2)
	auto, ok := intp.fallbacks[0].(fallback.Automatic)
	require.True(t, ok, "have %v", intp.fallbacks[0])
	assert.Equal(t, "Arial", auto.LocalFontFamily)
	assert.NotNil(t, auto.Adjustment)
	assert.Equal(t, fallback.Manual{"Helvetica", "Arial"}, intp.fallbacks[1])
	//
	quit, err = intp.execute(Command{code: QUIT})
	assert.NoError(t, err)
	assert.True(t, quit)
}

func TestChangesInvalidateFallbacks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontfallback.fonts")
	defer teardown()
	//
	intp := NewIntp(testconfig.Conf{})
	f, err := font.ParseOpenTypeFont(goregular.TTF)
	require.NoError(t, err)
	require.NoError(t, intp.registry.StoreFont(f))
	intp.font = f
	for _, cmd := range []Command{
		{code: CATEGORY, arg: "sans-serif"},
		{code: MANUAL, arg: "Helvetica"},
		{code: RESOLVE},
		{code: CATEGORY, arg: "serif"},
	} {
		_, err := intp.execute(cmd)
		require.NoError(t, err, "command %d", cmd.code)
	}
	assert.Nil(t, intp.fallbacks, "category change should drop resolved fallbacks")
	_, err = intp.execute(Command{code: CSS})
	require.NoError(t, err)
	require.Len(t, intp.fallbacks, 2)
	assert.Equal(t, "Times New Roman", intp.fallbacks[0].(fallback.Automatic).LocalFontFamily)
	//
	_, err = intp.execute(Command{code: MANUAL, arg: "Georgia, serif"})
	require.NoError(t, err)
	assert.Nil(t, intp.fallbacks, "manual change should drop resolved fallbacks")
	_, err = intp.execute(Command{code: CSS})
	require.NoError(t, err)
	require.Len(t, intp.fallbacks, 2)
	assert.Equal(t, fallback.Manual{"Georgia", "serif"}, intp.fallbacks[1])
}

func TestNoAdjustConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "fontfallback.fonts")
	defer teardown()
	//
	conf := testconfig.Conf{}
	conf.Set(fallback.ConfigAdjust, "false")
	intp := NewIntp(conf)
	f, err := font.ParseOpenTypeFont(goregular.TTF)
	require.NoError(t, err)
	require.NoError(t, intp.registry.StoreFont(f))
	intp.font = f
	intp.registry.SetCategory(f.Family, "sans-serif")
	require.NoError(t, intp.resolve())
	require.Len(t, intp.fallbacks, 1)
	assert.Nil(t, intp.fallbacks[0].(fallback.Automatic).Adjustment)
}
