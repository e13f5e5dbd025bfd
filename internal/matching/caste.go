package matching

import (
	"github.com/vivahmatch/backend/internal/constants"
	"github.com/vivahmatch/backend/internal/models"
	"github.com/vivahmatch/backend/internal/utils"
)

// CombineCastes normalises the caste dimensions of f before matching.
//
// A list holding "All" is unconstrained and is cleared. When both lists still
// have values they collapse into CombinedCastes (groups first, de-duplicated)
// and the source lists are cleared. A single populated list is left as is.
// A caller-supplied CombinedCastes is kept when there is nothing to combine.
func CombineCastes(f models.FilterCriteria) models.FilterCriteria {
	out := f.Clone()
	groups := withoutAll(out.CasteGroups)
	subs := withoutAll(out.CasteSubcastes)
	out.CasteGroups, out.CasteSubcastes = groups, subs

	if len(groups) == 0 || len(subs) == 0 {
		return out
	}

	combined := make([]string, 0, len(groups)+len(subs))
	for _, v := range append(append([]string{}, groups...), subs...) {
		if models.IsActive(v) {
			combined = append(combined, v)
		}
	}
	out.CombinedCastes = utils.UniqueStrings(combined)
	if out.CombinedCastes == nil {
		out.CombinedCastes = []string{}
	}
	out.CasteGroups = []string{}
	out.CasteSubcastes = []string{}
	return out
}

func withoutAll(values []string) []string {
	for _, v := range values {
		if v == constants.FilterValueAll {
			return []string{}
		}
	}
	return values
}
