package config

import "sort"

// Presets holds named parameter records per potential kind.
var Presets = map[string]map[string]Parameters{
	KindStep: {
		"low":  {Potential: KindStep, V0: 0.5},
		"high": {Potential: KindStep, V0: 1.5},
	},
	KindBarrier: {
		"thin":   {Potential: KindBarrier, V0: 1.0, Width: 0.005},
		"thick":  {Potential: KindBarrier, V0: 1.0, Width: 0.02},
		"tunnel": {Potential: KindBarrier, V0: 1.2, Width: 0.004},
	},
	KindWell: {
		"shallow": {Potential: KindWell, V0: 0.5, Width: 0.1},
		"deep":    {Potential: KindWell, V0: 2.0, Width: 0.1},
	},
	KindGaussian: {
		"bump": {Potential: KindGaussian, X0: 0.5, Sigma: 0.05},
	},
}

func GetPreset(kind, preset string) *Parameters {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	p, ok := kindPresets[preset]
	if !ok {
		return nil
	}
	return &p
}

func ListPresets(kind string) []string {
	kindPresets, ok := Presets[kind]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(kindPresets))
	for name := range kindPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
