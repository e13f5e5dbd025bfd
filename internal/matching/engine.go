// Package matching evaluates filter criteria against profiles. Evaluation is a
// pure conjunction of independent predicates over a snapshot of the profile
// collection, so results depend only on the input and keep collection order.
package matching

import (
	"context"
	"fmt"
	"strings"

	"github.com/vivahmatch/backend/internal/catalog"
	"github.com/vivahmatch/backend/internal/models"
)

// ProfileSource supplies the profile collection in its stored order.
type ProfileSource interface {
	ListProfiles(ctx context.Context) ([]*models.Profile, error)
}

// Engine runs filter criteria against a ProfileSource.
type Engine struct {
	source ProfileSource
}

// NewEngine creates an engine over source.
func NewEngine(source ProfileSource) *Engine {
	return &Engine{source: source}
}

// Search returns every active profile, not owned by excludeUserID, that
// satisfies all populated predicates of f. The result is never nil.
func (e *Engine) Search(ctx context.Context, f models.FilterCriteria, excludeUserID string) ([]*models.Profile, error) {
	profiles, err := e.source.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return Filter(profiles, f, excludeUserID), nil
}

// Filter applies Match to every profile and keeps input order.
func Filter(profiles []*models.Profile, f models.FilterCriteria, excludeUserID string) []*models.Profile {
	result := make([]*models.Profile, 0)
	for _, p := range profiles {
		if Match(p, f, excludeUserID) {
			result = append(result, p)
		}
	}
	return result
}

// Match reports whether p passes the baseline (active, not excluded) and
// every populated predicate in f.
func Match(p *models.Profile, f models.FilterCriteria, excludeUserID string) bool {
	if p == nil || !p.Active {
		return false
	}
	if excludeUserID != "" && p.UserID == excludeUserID {
		return false
	}
	if f.VerifiedOnly && !p.Verified {
		return false
	}

	return matchAge(p, f) &&
		matchHeight(p, f) &&
		matchIncome(p, f) &&
		matchExact(p, f) &&
		matchSubstrings(p, f) &&
		matchCaste(p, f) &&
		intersects(p.SpiritualPractices, f.SpiritualPractices) &&
		intersects(p.SacredTexts, f.SacredTexts) &&
		intersectsFold(spokenLanguages(p), f.OtherLanguages)
}

func matchAge(p *models.Profile, f models.FilterCriteria) bool {
	if f.AgeMin > 0 && p.Age < f.AgeMin {
		return false
	}
	if f.AgeMax > 0 && p.Age > f.AgeMax {
		return false
	}
	return true
}

// Heights are labels, so bounds compare by catalog position.
func matchHeight(p *models.Profile, f models.FilterCriteria) bool {
	minSet, maxSet := models.IsActive(f.HeightMin), models.IsActive(f.HeightMax)
	if !minSet && !maxSet {
		return true
	}
	pos := catalog.HeightPosition(p.Height)
	if pos < 0 {
		return false
	}
	if minSet && pos < catalog.HeightPosition(f.HeightMin) {
		return false
	}
	if maxSet && pos > catalog.HeightPosition(f.HeightMax) {
		return false
	}
	return true
}

// Income bucket i spans IncomeMin[i]..IncomeMax[i]; the lists are parallel,
// so a bucket is inside the range when its index lies between the bounds.
func matchIncome(p *models.Profile, f models.FilterCriteria) bool {
	minSet, maxSet := models.IsActive(f.AnnualIncomeMin), models.IsActive(f.AnnualIncomeMax)
	if !minSet && !maxSet {
		return true
	}
	bucket := catalog.IncomeBucketPosition(p.AnnualIncome)
	if bucket < 0 {
		return false
	}
	if minSet && bucket < catalog.IncomeMinPosition(f.AnnualIncomeMin) {
		return false
	}
	if maxSet && bucket > catalog.IncomeMaxPosition(f.AnnualIncomeMax) {
		return false
	}
	return true
}

func matchExact(p *models.Profile, f models.FilterCriteria) bool {
	pairs := [...][2]string{
		{f.Gender, p.Gender},
		{f.Religion, p.Religion},
		{f.Caste, p.Caste},
		{f.Education, p.Education},
		{f.Profession, p.Profession},
		{f.MaritalStatus, p.MaritalStatus},
		{f.MotherTongue, p.MotherTongue},
		{f.Ethnicity, p.Ethnicity},
		{f.Country, p.Country},
		{f.EatingHabits, p.EatingHabits},
		{f.DrinkingHabits, p.DrinkingHabits},
		{f.SmokingHabits, p.SmokingHabits},
		{f.PhysicalStatus, p.PhysicalStatus},
		{f.BloodGroup, p.BloodGroup},
		{f.HasChildren, p.HasChildren},
		{f.DietaryLifestyle, p.DietaryLifestyle},
		{f.Manglik, p.Manglik},
		{f.Rashi, p.Rashi},
		{f.Nakshatra, p.Nakshatra},
	}
	for _, pair := range pairs {
		if models.IsActive(pair[0]) && pair[0] != pair[1] {
			return false
		}
	}
	return true
}

func matchSubstrings(p *models.Profile, f models.FilterCriteria) bool {
	pairs := [...][2]string{
		{f.State, p.State},
		{f.City, p.City},
		{f.GuruLineage, p.GuruLineage},
	}
	for _, pair := range pairs {
		if models.IsActive(pair[0]) && !containsFold(pair[1], pair[0]) {
			return false
		}
	}
	return true
}

// matchCaste uses combinedCastes when present; otherwise groups and subcastes
// each apply as an OR of substrings.
func matchCaste(p *models.Profile, f models.FilterCriteria) bool {
	if combined := models.ActiveValues(f.CombinedCastes); len(combined) > 0 {
		return containsAnyFold(p.Caste, combined)
	}
	if groups := models.ActiveValues(f.CasteGroups); len(groups) > 0 && !containsAnyFold(p.Caste, groups) {
		return false
	}
	if subs := models.ActiveValues(f.CasteSubcastes); len(subs) > 0 && !containsAnyFold(p.Caste, subs) {
		return false
	}
	return true
}

func spokenLanguages(p *models.Profile) []string {
	langs := make([]string, 0, len(p.Languages)+1)
	if p.MotherTongue != "" {
		langs = append(langs, p.MotherTongue)
	}
	return append(langs, p.Languages...)
}

// intersects is true when want is unconstrained or shares a value with have.
func intersects(have, want []string) bool {
	want = models.ActiveValues(want)
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func intersectsFold(have, want []string) bool {
	want = models.ActiveValues(want)
	if len(want) == 0 {
		return true
	}
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(substr)))
}

func containsAnyFold(s string, substrs []string) bool {
	for _, sub := range substrs {
		if containsFold(s, sub) {
			return true
		}
	}
	return false
}
