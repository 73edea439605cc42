package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/qwave/internal/quantum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	dir := t.TempDir()

	cfgFile := filepath.Join(dir, "run.yaml")
	fromFile := DefaultConfig()
	fromFile.Points = 3000
	fromFile.Time = 0.6
	fromFile.Params = Parameters{Potential: KindStep, V0: 0.7}
	require.NoError(t, Save(cfgFile, fromFile))

	paramsFile := filepath.Join(dir, DefaultParamsFile)
	wellParams := Parameters{Potential: KindWell, V0: 2, Width: 0.1, X0: 0.5, Sigma: 0.05}
	require.NoError(t, os.WriteFile(paramsFile, []byte(FormatParameters(wellParams)), 0644))

	missing := filepath.Join(dir, "missing.txt")
	setPoints := func(n int) func(*RunConfig) {
		return func(c *RunConfig) { c.Points = n }
	}

	tests := []struct {
		name  string
		src   Sources
		check func(t *testing.T, cfg *RunConfig)
	}{
		{
			name: "defaults",
			src:  Sources{},
			check: func(t *testing.T, cfg *RunConfig) {
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
		{
			name: "config file",
			src:  Sources{ConfigFile: cfgFile},
			check: func(t *testing.T, cfg *RunConfig) {
				assert.Equal(t, 3000, cfg.Points)
				assert.Equal(t, 0.6, cfg.Time)
				assert.Equal(t, KindStep, cfg.Params.Kind())
			},
		},
		{
			name: "parameter file over defaults",
			src:  Sources{ParamsFile: paramsFile},
			check: func(t *testing.T, cfg *RunConfig) {
				assert.Equal(t, wellParams, cfg.Params)
			},
		},
		{
			name: "optional parameter file missing",
			src:  Sources{ParamsFile: missing},
			check: func(t *testing.T, cfg *RunConfig) {
				assert.Equal(t, DefaultParameters(), cfg.Params)
			},
		},
		{
			name: "config file keeps its params over an implicit parameter file",
			src:  Sources{ConfigFile: cfgFile, ParamsFile: paramsFile},
			check: func(t *testing.T, cfg *RunConfig) {
				assert.Equal(t, KindStep, cfg.Params.Kind())
				assert.Equal(t, 0.7, cfg.Params.V0)
			},
		},
		{
			name: "required parameter file beats the config file",
			src:  Sources{ConfigFile: cfgFile, ParamsFile: paramsFile, ParamsRequired: true},
			check: func(t *testing.T, cfg *RunConfig) {
				assert.Equal(t, 3000, cfg.Points)
				assert.Equal(t, wellParams, cfg.Params)
			},
		},
		{
			name: "potential overrides the kind only",
			src:  Sources{ParamsFile: paramsFile, Potential: "Barrier"},
			check: func(t *testing.T, cfg *RunConfig) {
				assert.Equal(t, KindBarrier, cfg.Params.Kind())
				assert.Equal(t, 2.0, cfg.Params.V0)
				assert.Equal(t, 0.1, cfg.Params.Width)
			},
		},
		{
			name: "preset of the parameter file kind",
			src:  Sources{ParamsFile: paramsFile, Preset: "deep"},
			check: func(t *testing.T, cfg *RunConfig) {
				assert.Equal(t, *GetPreset(KindWell, "deep"), cfg.Params)
			},
		},
		{
			name: "preset of the overriding potential",
			src:  Sources{ParamsFile: paramsFile, Potential: KindBarrier, Preset: "thin"},
			check: func(t *testing.T, cfg *RunConfig) {
				assert.Equal(t, *GetPreset(KindBarrier, "thin"), cfg.Params)
			},
		},
		{
			name: "overrides apply last in order",
			src: Sources{
				ConfigFile: cfgFile,
				Overrides:  []func(*RunConfig){setPoints(4000), setPoints(5000)},
			},
			check: func(t *testing.T, cfg *RunConfig) {
				assert.Equal(t, 5000, cfg.Points)
				assert.Equal(t, 0.6, cfg.Time)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Resolve(tt.src)
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestResolve_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("barrier 1.0\n"), 0644))

	tests := []struct {
		name    string
		src     Sources
		invalid bool
	}{
		{"missing config file", Sources{ConfigFile: filepath.Join(dir, "none.yaml")}, false},
		{"required parameter file missing", Sources{ParamsFile: filepath.Join(dir, "none.txt"), ParamsRequired: true}, false},
		{"malformed parameter file", Sources{ParamsFile: bad}, true},
		{"unknown preset", Sources{Potential: KindWell, Preset: "bottomless"}, true},
		{"unknown potential", Sources{Potential: "cliff"}, true},
		{"override fails validation", Sources{Overrides: []func(*RunConfig){func(c *RunConfig) { c.Time = 2 }}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Resolve(tt.src)
			require.Error(t, err)
			assert.Nil(t, cfg)
			if tt.invalid {
				assert.ErrorIs(t, err, quantum.ErrInvalidParameter)
			}
		})
	}
}
