package prompt

import (
	"fmt"

	"github.com/alexanderramin/bluum/internal/seed"
)

// Thresholds tune the anti-repetition rules. A rule only applies when the
// candidate set it leaves behind is at least as large as its minimum.
type Thresholds struct {
	RecentIDWindow       int
	MinAfterIDExclusion  int
	MinAfterTagExclusion int
}

// DefaultThresholds avoids the last three prompts while at least five
// remain, and a twice-repeated primary tag while at least three remain.
func DefaultThresholds() Thresholds {
	return Thresholds{
		RecentIDWindow:       3,
		MinAfterIDExclusion:  5,
		MinAfterTagExclusion: 3,
	}
}

// SelectionContext carries the recent history for one user, newest first.
type SelectionContext struct {
	UserID            string
	DateLocal         string
	RecentHistoryTags []string
	RecentPromptIDs   []string
}

func (c SelectionContext) dailyKey() string {
	return fmt.Sprintf("%s-%s", c.UserID, c.DateLocal)
}

func (c SelectionContext) swapKey() string {
	return fmt.Sprintf("%s-%s-swap", c.UserID, c.DateLocal)
}

// Policy picks prompts deterministically from a catalog.
type Policy struct {
	catalog    *Catalog
	thresholds Thresholds
}

func NewPolicy(catalog *Catalog, thresholds Thresholds) *Policy {
	return &Policy{catalog: catalog, thresholds: thresholds}
}

func (p *Policy) Catalog() *Catalog { return p.catalog }

// Select returns the prompt for ctx. The same context always yields the
// same prompt.
func (p *Policy) Select(ctx SelectionContext) Prompt {
	candidates := p.catalog.All()

	window := ctx.RecentPromptIDs
	if len(window) > p.thresholds.RecentIDWindow {
		window = window[:p.thresholds.RecentIDWindow]
	}
	avoid := make(map[string]bool, len(window))
	for _, id := range window {
		avoid[id] = true
	}
	candidates = narrow(candidates, p.thresholds.MinAfterIDExclusion, func(pr Prompt) bool {
		return !avoid[pr.ID]
	})

	if tags := ctx.RecentHistoryTags; len(tags) >= 2 && tags[0] == tags[1] {
		repeated := tags[0]
		candidates = narrow(candidates, p.thresholds.MinAfterTagExclusion, func(pr Prompt) bool {
			return pr.PrimaryTag() != repeated
		})
	}

	return candidates[seed.Index(ctx.dailyKey(), len(candidates))]
}

// PickAlternate returns a prompt other than currentID for a swap, preferring
// one with a different primary tag. It reports false when the catalog has
// nothing else to offer.
func (p *Policy) PickAlternate(currentID string, ctx SelectionContext) (Prompt, bool) {
	candidates := filter(p.catalog.All(), func(pr Prompt) bool { return pr.ID != currentID })
	if len(candidates) == 0 {
		return Prompt{}, false
	}

	if current, ok := p.catalog.Get(currentID); ok {
		tag := current.PrimaryTag()
		candidates = narrow(candidates, p.thresholds.MinAfterTagExclusion, func(pr Prompt) bool {
			return pr.PrimaryTag() != tag
		})
	}

	return candidates[seed.Index(ctx.swapKey(), len(candidates))], true
}

// narrow applies keep only when at least min candidates survive.
func narrow(candidates []Prompt, min int, keep func(Prompt) bool) []Prompt {
	filtered := filter(candidates, keep)
	if len(filtered) > 0 && len(filtered) >= min {
		return filtered
	}
	return candidates
}

func filter(candidates []Prompt, keep func(Prompt) bool) []Prompt {
	out := make([]Prompt, 0, len(candidates))
	for _, c := range candidates {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}
