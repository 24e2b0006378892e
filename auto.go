package texpack

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// autoCandidates builds the portfolio evaluated by the Auto family. Candidate order is part
// of the contract: the index is the final tie-break, so the winner never depends on
// completion order.
func autoCandidates(base *PackerConfig, inputCount int) []PackerConfig {
	enableMRRef := base.AutoMode == AutoQuality &&
		(base.TimeBudgetMS >= base.mrRefTimeThreshold() || inputCount >= base.mrRefInputThreshold())

	push := func(list []PackerConfig, mutate func(c *PackerConfig)) []PackerConfig {
		c := *base
		mutate(&c)
		return append(list, c)
	}

	var cands []PackerConfig
	if base.AutoMode == AutoFast {
		cands = push(cands, func(c *PackerConfig) {
			c.Family = Skyline
			c.SkylineHeuristic = SkylineBottomLeft
		})
		cands = push(cands, func(c *PackerConfig) {
			c.Family = MaxRects
			c.MRHeuristic = MaxRectsBAF
			c.MRReference = false
		})
		return cands
	}

	cands = push(cands, func(c *PackerConfig) {
		c.Family = Skyline
		c.SkylineHeuristic = SkylineMinWaste
		c.UseWasteMap = true
	})
	cands = push(cands, func(c *PackerConfig) {
		c.Family = Skyline
		c.SkylineHeuristic = SkylineBottomLeft
		c.UseWasteMap = false
	})
	for _, h := range []MaxRectsHeuristic{MaxRectsBAF, MaxRectsBSSF, MaxRectsBLSF, MaxRectsBL, MaxRectsCP} {
		h := h
		cands = push(cands, func(c *PackerConfig) {
			c.Family = MaxRects
			c.MRHeuristic = h
			c.MRReference = enableMRRef
		})
	}
	cands = push(cands, func(c *PackerConfig) {
		c.Family = Guillotine
		c.GChoice = GuillotineBAF
		c.GSplit = SplitShorterLeftoverAxis
	})
	cands = push(cands, func(c *PackerConfig) {
		c.Family = Guillotine
		c.GChoice = GuillotineBSSF
		c.GSplit = SplitMinimizeArea
	})
	return cands
}

// packAuto evaluates the candidate portfolio over the shared pre-processed items and keeps
// the winner by the lexicographic objective (pages, total page area, candidate index).
func packAuto(prep []prepared, cfg *PackerConfig) (*Atlas, error) {
	cands := autoCandidates(cfg, len(prep))
	logger := cfg.logger()
	start := time.Now()

	results := make([]*Atlas, len(cands))
	if cfg.Parallel {
		var g errgroup.Group
		for i := range cands {
			i := i
			g.Go(func() error {
				// Each worker owns its candidate config and engine state; only the
				// finished atlas crosses the boundary.
				atlas, err := packPrepared(prep, &cands[i])
				if err == nil {
					results[i] = atlas
				}
				return nil
			})
		}
		g.Wait()
	} else {
		for i := range cands {
			if i > 0 && cfg.TimeBudgetMS > 0 &&
				time.Since(start).Milliseconds() > cfg.TimeBudgetMS {
				logger.Debug("portfolio budget exhausted",
					"evaluated", i, "candidates", len(cands))
				break
			}
			atlas, err := packPrepared(prep, &cands[i])
			if err != nil {
				continue
			}
			results[i] = atlas
		}
	}

	var best *Atlas
	bestPages := 0
	bestArea := 0
	bestIndex := -1
	for i, atlas := range results {
		if atlas == nil {
			continue
		}
		pages := len(atlas.Pages)
		area := 0
		for j := range atlas.Pages {
			area += atlas.Pages[j].Width * atlas.Pages[j].Height
		}
		if best == nil || pages < bestPages || (pages == bestPages && area < bestArea) {
			best = atlas
			bestPages = pages
			bestArea = area
			bestIndex = i
		}
		logger.Debug("portfolio candidate",
			"index", i, "family", cands[i].Family, "pages", pages, "area", area)
	}
	if best == nil {
		return nil, fmt.Errorf("%w: no portfolio candidate produced a layout", ErrInvalidInput)
	}

	// The winner's metadata is rebuilt from the base config rather than the candidate's.
	best.Meta = cfg.newMeta()
	logger.Debug("portfolio winner",
		"index", bestIndex, "pages", bestPages, "area", bestArea,
		"duration", time.Since(start))
	return best, nil
}

// vim: ts=4
