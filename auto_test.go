package texpack

import (
	"math/rand"
	"testing"
)

func TestAutoReturnsLayoutWithZeroBudget(t *testing.T) {
	cfg := layoutConfig(128, 128, Auto)
	cfg.AutoMode = AutoQuality
	cfg.TimeBudgetMS = 0
	cfg.AllowRotation = true

	items := []LayoutSize{
		{Key: "a", W: 40, H: 30},
		{Key: "b", W: 25, H: 55},
		{Key: "c", W: 60, H: 10},
	}
	atlas, err := PackLayout(items, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(atlas.Pages) == 0 {
		t.Fatal("auto produced no pages")
	}
	checkAtlas(t, atlas, &cfg)

	again, err := PackLayout(items, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !atlasEqual(atlas, again) {
		t.Error("auto winner not reproducible")
	}
}

func TestAutoFastMode(t *testing.T) {
	cfg := layoutConfig(128, 128, Auto)
	cfg.AutoMode = AutoFast
	cfg.AllowRotation = true

	r := rand.New(rand.NewSource(21))
	items := randomSizes(48, r, 6, 30)
	atlas, err := PackLayout(items, cfg)
	if err != nil {
		t.Fatal(err)
	}
	checkAtlas(t, atlas, &cfg)
}

func TestAutoParallelMatchesSequential(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	items := randomSizes(96, r, 6, 36)

	cfg := layoutConfig(256, 256, Auto)
	cfg.AutoMode = AutoQuality
	cfg.AllowRotation = true

	sequential, err := PackLayout(items, cfg)
	if err != nil {
		t.Fatal(err)
	}
	cfg.Parallel = true
	parallel, err := PackLayout(items, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !atlasEqual(sequential, parallel) {
		t.Error("parallel evaluation changed the winner")
	}
}

func TestAutoCandidateSets(t *testing.T) {
	base := DefaultConfig()
	base.Family = Auto

	base.AutoMode = AutoFast
	fast := autoCandidates(&base, 10)
	if len(fast) != 2 {
		t.Errorf("fast portfolio has %d candidates", len(fast))
	}

	base.AutoMode = AutoQuality
	quality := autoCandidates(&base, 10)
	if len(quality) <= len(fast) {
		t.Errorf("quality portfolio (%d) not larger than fast (%d)", len(quality), len(fast))
	}
	for _, c := range quality {
		if c.Family == Auto {
			t.Error("candidate left family as Auto")
		}
		if c.Family == MaxRects && c.MRReference {
			t.Error("mr_reference enabled below both thresholds")
		}
	}

	// Crossing either threshold enables the reference split for MaxRects candidates.
	base.TimeBudgetMS = defaultMRRefTimeMSThreshold
	quality = autoCandidates(&base, 10)
	seenMR := false
	for _, c := range quality {
		if c.Family == MaxRects {
			seenMR = true
			if !c.MRReference {
				t.Error("mr_reference not enabled at the time threshold")
			}
		}
	}
	if !seenMR {
		t.Error("quality portfolio lacks MaxRects candidates")
	}

	base.TimeBudgetMS = 0
	quality = autoCandidates(&base, defaultMRRefInputThreshold)
	for _, c := range quality {
		if c.Family == MaxRects && !c.MRReference {
			t.Error("mr_reference not enabled at the input-count threshold")
		}
	}
}

// vim: ts=4
