package pricing

import "github.com/wasifshah085/AngelBabyDresses-sub000/internal/modules/catalog"

// Resolve picks the campaign that applies to the item, or nil.
//
// active must already be sorted by descending priority (the cache guarantees
// this); the first eligible campaign wins, which is the priority tie-break.
func Resolve(item catalog.Item, active []Campaign) *Campaign {
	for i := range active {
		c := &active[i]
		if c.UsageExhausted() {
			continue
		}
		if c.Excludes(item.ID) {
			continue
		}
		if c.AppliesTo(item) {
			return c
		}
	}
	return nil
}
