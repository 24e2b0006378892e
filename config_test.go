package texpack

import (
	"errors"
	"testing"
)

func TestValidateDimensions(t *testing.T) {
	cases := []struct {
		name string
		edit func(c *PackerConfig)
	}{
		{"zero width", func(c *PackerConfig) { c.MaxWidth = 0 }},
		{"zero height", func(c *PackerConfig) { c.MaxHeight = 0 }},
		{"negative padding", func(c *PackerConfig) { c.TexturePadding = -1 }},
		{"border swallows page", func(c *PackerConfig) { c.MaxWidth = 100; c.MaxHeight = 100; c.BorderPadding = 50 }},
		{"negative page ceiling", func(c *PackerConfig) { c.MaxPages = -1 }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.edit(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", tc.name, err)
		}
	}

	good := DefaultConfig()
	if err := good.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfigFromTOML(t *testing.T) {
	doc := []byte(`
max_width = 512
max_height = 256
allow_rotation = false
texture_padding = 4
texture_extrusion = 1
power_of_two = true
family = "maxrects"
mr_heuristic = "bssf"
g_choice = "worstareafit"
g_split = "maxas"
auto_mode = "fast"
sort_order = "height_desc"
transparent_policy = "one_by_one"
time_budget_ms = 150
`)
	cfg, err := ConfigFromTOML(doc)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxWidth != 512 || cfg.MaxHeight != 256 || cfg.AllowRotation {
		t.Errorf("dimensions not decoded: %+v", cfg)
	}
	if cfg.TexturePadding != 4 || cfg.TextureExtrusion != 1 || !cfg.PowerOfTwo {
		t.Errorf("padding not decoded: %+v", cfg)
	}
	if cfg.Family != MaxRects || cfg.MRHeuristic != MaxRectsBSSF {
		t.Errorf("family not decoded: %v/%v", cfg.Family, cfg.MRHeuristic)
	}
	if cfg.GChoice != GuillotineWAF || cfg.GSplit != SplitMaximizeArea {
		t.Errorf("guillotine rules not decoded: %v/%v", cfg.GChoice, cfg.GSplit)
	}
	if cfg.AutoMode != AutoFast || cfg.SortOrder != SortHeightDesc {
		t.Errorf("modes not decoded: %v/%v", cfg.AutoMode, cfg.SortOrder)
	}
	if cfg.TransparentPolicy != TransparentOneByOne || cfg.TimeBudgetMS != 150 {
		t.Errorf("policy not decoded: %v/%d", cfg.TransparentPolicy, cfg.TimeBudgetMS)
	}
	// Unset fields keep their defaults.
	if !cfg.Trim {
		t.Error("trim default lost")
	}
}

func TestConfigFromTOMLRejectsUnknownNames(t *testing.T) {
	if _, err := ConfigFromTOML([]byte(`family = "quadtree"`)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := ConfigFromTOML([]byte(`sort_order = "random"`)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestParseRoundTrips(t *testing.T) {
	for _, f := range []AlgorithmFamily{Skyline, MaxRects, Guillotine, Auto} {
		got, ok := ParseAlgorithmFamily(f.String())
		if !ok || got != f {
			t.Errorf("family %v round-trips to %v ok=%v", f, got, ok)
		}
	}
	for _, h := range []MaxRectsHeuristic{MaxRectsBAF, MaxRectsBSSF, MaxRectsBLSF, MaxRectsBL, MaxRectsCP} {
		got, ok := ParseMaxRectsHeuristic(h.String())
		if !ok || got != h {
			t.Errorf("mr heuristic %v round-trips to %v ok=%v", h, got, ok)
		}
	}
	for _, c := range []GuillotineChoice{GuillotineBAF, GuillotineBSSF, GuillotineBLSF, GuillotineWAF, GuillotineWSSF, GuillotineWLSF} {
		got, ok := ParseGuillotineChoice(c.String())
		if !ok || got != c {
			t.Errorf("choice %v round-trips to %v ok=%v", c, got, ok)
		}
	}
	for _, g := range []GuillotineSplit{SplitShorterLeftoverAxis, SplitLongerLeftoverAxis, SplitMinimizeArea, SplitMaximizeArea, SplitShorterAxis, SplitLongerAxis} {
		got, ok := ParseGuillotineSplit(g.String())
		if !ok || got != g {
			t.Errorf("split %v round-trips to %v ok=%v", g, got, ok)
		}
	}
	for _, o := range []SortOrder{SortAreaDesc, SortMaxSideDesc, SortHeightDesc, SortWidthDesc, SortPerimeterDesc, SortKeyAsc} {
		got, ok := ParseSortOrder(o.String())
		if !ok || got != o {
			t.Errorf("sort order %v round-trips to %v ok=%v", o, got, ok)
		}
	}
}

// vim: ts=4
