package texpack

import "image"

// Version is the library version reported in atlas metadata.
const Version = "0.3.0"

// SchemaVersion identifies the field layout of Atlas/Page/Frame/Rect/Meta. Downstream
// tooling can use it to handle future additive changes.
const SchemaVersion = "1"

// Pivot is a normalized anchor point within a frame's untrimmed source, where (0, 0) is the
// top-left corner and (1, 1) the bottom-right.
type Pivot struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CenterPivot is the default pivot: the center of the source size.
var CenterPivot = Pivot{X: 0.5, Y: 0.5}

// Frame is the placement record of one sprite inside a page.
type Frame struct {
	// Key is the caller-chosen unique identifier of the sprite.
	Key string `json:"key"`
	// Frame is the placed rectangle within the page, with post-rotation width/height.
	Frame Rect `json:"frame"`
	// Rotated indicates the content is rotated 90 degrees clockwise at blit time.
	Rotated bool `json:"rotated"`
	// Trimmed indicates transparent borders were removed from the source.
	Trimmed bool `json:"trimmed"`
	// Source is the sub-rectangle of the original image that remains after trimming.
	Source Rect `json:"source"`
	// SourceSize is the original, untrimmed image size.
	SourceSize Size `json:"source_size"`
	// Pivot is the sprite anchor, relative to SourceSize.
	Pivot Pivot `json:"pivot"`
}

// Page is a single rectangular texture containing non-overlapping frames.
type Page struct {
	ID     int     `json:"id"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Frames []Frame `json:"frames"`
}

// Meta carries atlas-level metadata commonly consumed by exporters and templates.
type Meta struct {
	// SchemaVersion allows downstream tooling to handle future additive changes. String to
	// allow non-integer versions like "1.0"; current: "1".
	SchemaVersion  string `json:"schema_version"`
	App            string `json:"app"`
	Version        string `json:"version"`
	Format         string `json:"format"`
	Scale          float64 `json:"scale"`
	PowerOfTwo     bool   `json:"power_of_two"`
	Square         bool   `json:"square"`
	MaxDim         Size   `json:"max_dim"`
	BorderPadding  int    `json:"border_padding"`
	TexturePadding int    `json:"texture_padding"`
	Extrude        int    `json:"extrude"`
	AllowRotation  bool   `json:"allow_rotation"`
	TrimMode       string `json:"trim_mode"`
}

// Atlas is the collection of pages representing the final packed output, ordered by page id
// starting at 0. An atlas is immutable once returned.
type Atlas struct {
	Pages []Page `json:"pages"`
	Meta  Meta   `json:"meta"`
}

// PackStats summarizes the efficiency of a packed atlas.
type PackStats struct {
	// Pages is the number of pages in the atlas.
	Pages int
	// Frames is the total number of placed frames.
	Frames int
	// TotalArea is the sum of page areas.
	TotalArea int
	// UsedArea is the sum of frame areas.
	UsedArea int
	// Occupancy is UsedArea/TotalArea in the range [0, 1].
	Occupancy float64
}

// Stats computes packing statistics for the atlas.
func (a *Atlas) Stats() PackStats {
	var st PackStats
	st.Pages = len(a.Pages)
	for i := range a.Pages {
		p := &a.Pages[i]
		st.TotalArea += p.Width * p.Height
		st.Frames += len(p.Frames)
		for j := range p.Frames {
			st.UsedArea += p.Frames[j].Frame.Area()
		}
	}
	if st.TotalArea > 0 {
		st.Occupancy = float64(st.UsedArea) / float64(st.TotalArea)
	}
	return st
}

func (c *PackerConfig) newMeta() Meta {
	trimMode := "none"
	if c.Trim {
		trimMode = "trim"
	}
	return Meta{
		SchemaVersion:  SchemaVersion,
		App:            "texpack",
		Version:        Version,
		Format:         "RGBA8888",
		Scale:          1.0,
		PowerOfTwo:     c.PowerOfTwo,
		Square:         c.Square,
		MaxDim:         NewSize(c.MaxWidth, c.MaxHeight),
		BorderPadding:  c.BorderPadding,
		TexturePadding: c.TexturePadding,
		Extrude:        c.TextureExtrusion,
		AllowRotation:  c.AllowRotation,
		TrimMode:       trimMode,
	}
}

// InputImage is an in-memory image to pack, identified by a caller-chosen key.
type InputImage struct {
	Key   string
	Image image.Image
}

// LayoutItem is a layout-only input with optional source metadata. When Source or SourceSize
// is set the caller's trimming metadata is propagated as-is; the pipeline never re-trims.
type LayoutItem struct {
	Key        string
	W, H       int
	Source     *Rect
	SourceSize *Size
	Trimmed    bool
}

// OutputPage pairs a logical page record with its rendered RGBA bitmap.
type OutputPage struct {
	Page Page
	RGBA *image.RGBA
}

// PackOutput is the result of a full packing run: the atlas plus rendered pages.
type PackOutput struct {
	Atlas Atlas
	Pages []OutputPage
}

// Stats computes packing statistics for this output.
func (o *PackOutput) Stats() PackStats {
	return o.Atlas.Stats()
}

// vim: ts=4
