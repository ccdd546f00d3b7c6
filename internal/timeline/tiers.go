package timeline

import (
	"sort"

	"github.com/llm-case-studies/whowhe2wha/internal/model"
)

// UnassignedTierName labels the tier synthesized when the configuration is
// empty.
const UnassignedTierName = "Unassigned"

// PackOptions are the vertical geometry constants for tier packing.
type PackOptions struct {
	LaneHeight         float64
	LaneStartOffset    float64
	CategoryGap        float64
	InterTierBarHeight float64
	MinTotalHeight     float64
}

func DefaultPackOptions() PackOptions {
	return PackOptions{
		LaneHeight:         28,
		LaneStartOffset:    16,
		CategoryGap:        10,
		InterTierBarHeight: 6,
		MinTotalHeight:     240,
	}
}

// TierLayout is the resolved shape of one swimlane band. A tier with no
// visible projects still keeps its padding height so separators stay put.
type TierLayout struct {
	Index      int
	Name       string
	Categories []model.Category
	LaneCount  int
	Height     float64
}

// CategoryLayout is a category block's extent inside its tier. Top is
// tier-relative; PositionMapper adds the tier's cumulative top.
type CategoryLayout struct {
	Top       float64
	Height    float64
	TierIndex int
}

// Lane is one project's row inside a tier. TopOffset is tier-relative.
type Lane struct {
	TierIndex int
	LaneIndex int
	TopOffset float64
}

// Packing is the full lane assignment for one (config, categories, projects)
// input. Derived and ephemeral; recompute on any input change.
type Packing struct {
	Tiers       []TierLayout
	Categories  map[model.Category]CategoryLayout
	Lanes       map[int64]Lane
	TotalHeight float64
	// TopPadding is the symmetric slack added when the stacked tiers fall
	// below MinTotalHeight.
	TopPadding float64
	Options    PackOptions
}

// Pack assigns every visible project a lane and every category a vertical
// extent. The walk order is fully determined by the inputs: categories sort
// lexicographically, projects sort by ascending id, and the tier order is the
// configuration's own. Identical inputs always produce identical output.
func Pack(cfg model.TierConfig, all []model.Category, visible map[model.Category][]model.Project, opts PackOptions) Packing {
	assignment, tierNames := resolveAssignments(cfg, all)

	p := Packing{
		Categories: make(map[model.Category]CategoryLayout, len(all)),
		Lanes:      make(map[int64]Lane),
		Options:    opts,
	}

	tierCount := len(tierNames)
	byTier := make([][]model.Category, tierCount)
	for _, cat := range sortedCategories(assignment) {
		idx := assignment[cat]
		byTier[idx] = append(byTier[idx], cat)
	}

	for idx := 0; idx < tierCount; idx++ {
		layout := TierLayout{Index: idx, Name: tierNames[idx], Categories: byTier[idx]}

		lane := 0
		blocks := 0
		for _, cat := range byTier[idx] {
			projects := sortedProjects(visible[cat])
			if len(projects) == 0 {
				// Record empty categories so lookups stay total; they own no
				// lanes and add no gap.
				p.Categories[cat] = CategoryLayout{
					Top:       opts.LaneStartOffset + float64(lane)*opts.LaneHeight + float64(blocks)*opts.CategoryGap,
					Height:    0,
					TierIndex: idx,
				}
				continue
			}

			top := opts.LaneStartOffset + float64(lane)*opts.LaneHeight + float64(blocks)*opts.CategoryGap
			for _, proj := range projects {
				p.Lanes[proj.ID] = Lane{
					TierIndex: idx,
					LaneIndex: lane,
					TopOffset: opts.LaneStartOffset + float64(lane)*opts.LaneHeight + float64(blocks)*opts.CategoryGap,
				}
				lane++
			}
			p.Categories[cat] = CategoryLayout{
				Top:       top,
				Height:    float64(len(projects)) * opts.LaneHeight,
				TierIndex: idx,
			}
			blocks++
		}

		layout.LaneCount = lane
		gaps := blocks - 1
		if gaps < 0 {
			gaps = 0
		}
		layout.Height = float64(lane)*opts.LaneHeight + float64(gaps)*opts.CategoryGap + 2*opts.LaneStartOffset
		p.Tiers = append(p.Tiers, layout)
	}

	stacked := 0.0
	for _, t := range p.Tiers {
		stacked += t.Height
	}
	if tierCount > 1 {
		stacked += float64(tierCount-1) * opts.InterTierBarHeight
	}
	p.TotalHeight = stacked
	if stacked < opts.MinTotalHeight {
		p.TopPadding = (opts.MinTotalHeight - stacked) / 2
		p.TotalHeight = opts.MinTotalHeight
	}
	return p
}

// resolveAssignments maps every category to exactly one tier index. Pass one
// collects explicit assignments in tier order, first claim wins; pass two
// folds the complement into the last tier. An empty configuration synthesizes
// a single Unassigned tier holding everything.
func resolveAssignments(cfg model.TierConfig, all []model.Category) (map[model.Category]int, []string) {
	if len(cfg) == 0 {
		assignment := make(map[model.Category]int, len(all))
		for _, cat := range all {
			assignment[cat] = 0
		}
		return assignment, []string{UnassignedTierName}
	}

	known := make(map[model.Category]bool, len(all))
	for _, cat := range all {
		known[cat] = true
	}

	assignment := make(map[model.Category]int, len(all))
	names := make([]string, len(cfg))
	for idx, tier := range cfg {
		names[idx] = tier.Name
		for _, cat := range tier.Categories {
			if !known[cat] {
				continue
			}
			if _, claimed := assignment[cat]; claimed {
				continue
			}
			assignment[cat] = idx
		}
	}

	last := len(cfg) - 1
	for _, cat := range all {
		if _, ok := assignment[cat]; !ok {
			assignment[cat] = last
		}
	}
	return assignment, names
}

func sortedCategories(assignment map[model.Category]int) []model.Category {
	out := make([]model.Category, 0, len(assignment))
	for cat := range assignment {
		out = append(out, cat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedProjects(projects []model.Project) []model.Project {
	out := append([]model.Project(nil), projects...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
