package texpack

import (
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DefaultSize is the default width/height used as the maximum extent of a page.
//
// This is based off a maximum texture size supported by most GPUs in common use. If this
// library is not being used for creating a texture atlas, then there is absolutely no
// significance about this number other than providing a sane starting point.
const DefaultSize = 1024

// PackerConfig describes a packing run. The zero value is not valid; use DefaultConfig as a
// starting point and override fields as needed.
type PackerConfig struct {
	// MaxWidth is the maximum page width in pixels.
	MaxWidth int `json:"max_width" toml:"max_width"`
	// MaxHeight is the maximum page height in pixels.
	MaxHeight int `json:"max_height" toml:"max_height"`
	// AllowRotation permits 90-degree rotation of placements where beneficial.
	AllowRotation bool `json:"allow_rotation" toml:"allow_rotation"`
	// ForceMaxDimensions emits pages at exactly MaxWidth x MaxHeight, skipping the final
	// shrink and the power-of-two/square adjustment.
	ForceMaxDimensions bool `json:"force_max_dimensions" toml:"force_max_dimensions"`

	// BorderPadding is the number of pixels reserved at each page edge.
	BorderPadding int `json:"border_padding" toml:"border_padding"`
	// TexturePadding is the number of pixels between sprite slots.
	TexturePadding int `json:"texture_padding" toml:"texture_padding"`
	// TextureExtrusion is the number of edge-replicated pixels inside each slot.
	TextureExtrusion int `json:"texture_extrusion" toml:"texture_extrusion"`

	// Trim removes transparent borders (alpha <= TrimThreshold) before packing.
	Trim bool `json:"trim" toml:"trim"`
	// TrimThreshold is the highest alpha value still considered transparent.
	TrimThreshold uint8 `json:"trim_threshold" toml:"trim_threshold"`
	// TransparentPolicy controls fully transparent inputs under trim.
	TransparentPolicy TransparentPolicy `json:"transparent_policy" toml:"-"`
	// TextureOutlines draws red outlines around frames on output pages (debug).
	TextureOutlines bool `json:"texture_outlines" toml:"texture_outlines"`

	// PowerOfTwo constrains final page dimensions to powers of two.
	PowerOfTwo bool `json:"power_of_two" toml:"power_of_two"`
	// Square constrains final pages to be square.
	Square bool `json:"square" toml:"square"`
	// UseWasteMap enables gap recovery in the Skyline algorithm.
	UseWasteMap bool `json:"use_waste_map" toml:"use_waste_map"`

	// Family selects the placement algorithm.
	Family AlgorithmFamily `json:"family" toml:"-"`
	// MRHeuristic selects the MaxRects scoring rule.
	MRHeuristic MaxRectsHeuristic `json:"mr_heuristic" toml:"-"`
	// SkylineHeuristic selects the Skyline level rule.
	SkylineHeuristic SkylineHeuristic `json:"skyline_heuristic" toml:"-"`
	// GChoice selects the Guillotine free-rectangle choice rule.
	GChoice GuillotineChoice `json:"g_choice" toml:"-"`
	// GSplit selects the Guillotine cut axis rule.
	GSplit GuillotineSplit `json:"g_split" toml:"-"`
	// AutoMode selects the Auto portfolio size.
	AutoMode AutoMode `json:"auto_mode" toml:"-"`
	// SortOrder selects the pre-placement item ordering.
	SortOrder SortOrder `json:"sort_order" toml:"-"`

	// TimeBudgetMS bounds Auto portfolio evaluation in milliseconds; 0 disables the budget.
	// The budget gates candidate admission only: a running candidate always completes, and
	// the first candidate is always admitted. Parallel evaluation starts every candidate at
	// once, so the budget excludes none there.
	TimeBudgetMS int64 `json:"time_budget_ms" toml:"time_budget_ms"`
	// Parallel evaluates Auto candidates concurrently. Unless the time budget stops the
	// sequential run early, the winner is identical either way.
	Parallel bool `json:"parallel" toml:"parallel"`

	// MRReference selects the reference-accurate MaxRects split/prune (SplitFreeNode plus a
	// staged prune). When false, a simpler but correct subtractive split is used, which may
	// retain dominated free rectangles and pack slightly worse.
	MRReference bool `json:"mr_reference" toml:"mr_reference"`
	// AutoMRRefTimeMSThreshold enables MRReference for Auto MaxRects candidates when the time
	// budget meets this value. 0 uses the built-in default.
	AutoMRRefTimeMSThreshold int64 `json:"auto_mr_ref_time_ms_threshold" toml:"auto_mr_ref_time_ms_threshold"`
	// AutoMRRefInputThreshold enables MRReference for Auto MaxRects candidates when the input
	// count meets this value. 0 uses the built-in default.
	AutoMRRefInputThreshold int `json:"auto_mr_ref_input_threshold" toml:"auto_mr_ref_input_threshold"`

	// MaxPages bounds the number of pages a session may allocate; 0 means unbounded.
	// The offline pipeline ignores it.
	MaxPages int `json:"max_pages" toml:"max_pages"`

	// Logger receives stage and skip diagnostics. Nil uses log.Default.
	Logger *log.Logger `json:"-" toml:"-"`
}

// Defaults used by the Auto portfolio to decide when the reference MaxRects split is worth
// its CPU cost.
const (
	defaultMRRefTimeMSThreshold = 200
	defaultMRRefInputThreshold  = 800
)

// DefaultConfig returns a configuration with sensible defaults suitable for general-purpose
// atlas packing.
func DefaultConfig() PackerConfig {
	return PackerConfig{
		MaxWidth:       DefaultSize,
		MaxHeight:      DefaultSize,
		AllowRotation:  true,
		TexturePadding: 2,
		Trim:           true,
	}
}

// ConfigFromTOML decodes a configuration from TOML bytes, starting from DefaultConfig for
// fields the document does not set. Enumerated options use their string forms
// (e.g. family = "maxrects").
func ConfigFromTOML(data []byte) (PackerConfig, error) {
	type tomlConfig struct {
		PackerConfig
		Family            string `toml:"family"`
		MRHeuristic       string `toml:"mr_heuristic"`
		SkylineHeuristic  string `toml:"skyline_heuristic"`
		GChoice           string `toml:"g_choice"`
		GSplit            string `toml:"g_split"`
		AutoMode          string `toml:"auto_mode"`
		SortOrder         string `toml:"sort_order"`
		TransparentPolicy string `toml:"transparent_policy"`
	}

	raw := tomlConfig{PackerConfig: DefaultConfig()}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return PackerConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg := raw.PackerConfig
	var ok bool
	if raw.Family != "" {
		if cfg.Family, ok = ParseAlgorithmFamily(raw.Family); !ok {
			return PackerConfig{}, fmt.Errorf("%w: unknown family %q", ErrInvalidConfig, raw.Family)
		}
	}
	if raw.MRHeuristic != "" {
		if cfg.MRHeuristic, ok = ParseMaxRectsHeuristic(raw.MRHeuristic); !ok {
			return PackerConfig{}, fmt.Errorf("%w: unknown mr_heuristic %q", ErrInvalidConfig, raw.MRHeuristic)
		}
	}
	if raw.SkylineHeuristic != "" {
		if cfg.SkylineHeuristic, ok = ParseSkylineHeuristic(raw.SkylineHeuristic); !ok {
			return PackerConfig{}, fmt.Errorf("%w: unknown skyline_heuristic %q", ErrInvalidConfig, raw.SkylineHeuristic)
		}
	}
	if raw.GChoice != "" {
		if cfg.GChoice, ok = ParseGuillotineChoice(raw.GChoice); !ok {
			return PackerConfig{}, fmt.Errorf("%w: unknown g_choice %q", ErrInvalidConfig, raw.GChoice)
		}
	}
	if raw.GSplit != "" {
		if cfg.GSplit, ok = ParseGuillotineSplit(raw.GSplit); !ok {
			return PackerConfig{}, fmt.Errorf("%w: unknown g_split %q", ErrInvalidConfig, raw.GSplit)
		}
	}
	if raw.AutoMode != "" {
		if cfg.AutoMode, ok = ParseAutoMode(raw.AutoMode); !ok {
			return PackerConfig{}, fmt.Errorf("%w: unknown auto_mode %q", ErrInvalidConfig, raw.AutoMode)
		}
	}
	if raw.SortOrder != "" {
		if cfg.SortOrder, ok = ParseSortOrder(raw.SortOrder); !ok {
			return PackerConfig{}, fmt.Errorf("%w: unknown sort_order %q", ErrInvalidConfig, raw.SortOrder)
		}
	}
	switch raw.TransparentPolicy {
	case "", "skip":
		cfg.TransparentPolicy = TransparentSkip
	case "keep":
		cfg.TransparentPolicy = TransparentKeep
	case "one_by_one":
		cfg.TransparentPolicy = TransparentOneByOne
	case "strict":
		cfg.TransparentPolicy = TransparentStrict
	default:
		return PackerConfig{}, fmt.Errorf("%w: unknown transparent_policy %q", ErrInvalidConfig, raw.TransparentPolicy)
	}
	return cfg, nil
}

// Validate tests whether the configuration is in good form: positive dimensions and padding
// that leaves at least one usable pixel inside the border.
func (c *PackerConfig) Validate() error {
	if c.MaxWidth < 1 || c.MaxHeight < 1 {
		return fmt.Errorf("%w: page dimensions must be greater than 0 (got %dx%d)",
			ErrInvalidConfig, c.MaxWidth, c.MaxHeight)
	}
	if c.BorderPadding < 0 || c.TexturePadding < 0 || c.TextureExtrusion < 0 {
		return fmt.Errorf("%w: padding values must not be negative", ErrInvalidConfig)
	}
	usableW := c.MaxWidth - c.BorderPadding*2
	usableH := c.MaxHeight - c.BorderPadding*2
	if usableW < 1 || usableH < 1 {
		return fmt.Errorf("%w: border_padding (%d) leaves no usable space on a %dx%d page",
			ErrInvalidConfig, c.BorderPadding, c.MaxWidth, c.MaxHeight)
	}
	if c.MaxPages < 0 {
		return fmt.Errorf("%w: max_pages must not be negative", ErrInvalidConfig)
	}
	return nil
}

// pageExtent returns the working page dimensions: the configured maximums rounded down to
// the largest size satisfying the power-of-two/square constraints.
func (c *PackerConfig) pageExtent() (int, int) {
	w, h := c.MaxWidth, c.MaxHeight
	if c.PowerOfTwo {
		w = prevPow2(w)
		h = prevPow2(h)
	}
	if c.Square {
		m := min(w, h)
		w, h = m, m
	}
	return w, h
}

// usable returns the page area available inside the border padding.
func (c *PackerConfig) usable() Rect {
	w, h := c.pageExtent()
	pad := c.BorderPadding
	return NewRect(pad, pad, w-pad*2, h-pad*2)
}

// slotExtent expands content dimensions to the reserved slot: padding between slots plus
// extrusion on each side.
func (c *PackerConfig) slotExtent(w, h int) (int, int) {
	e := c.TextureExtrusion * 2
	return w + c.TexturePadding + e, h + c.TexturePadding + e
}

// frameOffset is the offset of the content frame inside its reserved slot. Integer division
// truncates, so half-padding on even values is symmetric.
func (c *PackerConfig) frameOffset() int {
	return c.TextureExtrusion + c.TexturePadding/2
}

func (c *PackerConfig) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

func (c *PackerConfig) mrRefTimeThreshold() int64 {
	if c.AutoMRRefTimeMSThreshold > 0 {
		return c.AutoMRRefTimeMSThreshold
	}
	return defaultMRRefTimeMSThreshold
}

func (c *PackerConfig) mrRefInputThreshold() int {
	if c.AutoMRRefInputThreshold > 0 {
		return c.AutoMRRefInputThreshold
	}
	return defaultMRRefInputThreshold
}

// vim: ts=4
