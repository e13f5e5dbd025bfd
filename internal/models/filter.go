package models

import (
	"reflect"
	"strings"

	"github.com/vivahmatch/backend/internal/constants"
)

// FilterCriteria is the sparse search request shape. Empty strings, zero ages,
// empty lists and the "All" sentinel all mean "no constraint".
type FilterCriteria struct {
	AgeMin          int    `json:"ageMin,omitempty" validate:"omitempty,gte=0,lte=120"`
	AgeMax          int    `json:"ageMax,omitempty" validate:"omitempty,gte=0,lte=120"`
	HeightMin       string `json:"heightMin,omitempty" validate:"omitempty,filter_option=height"`
	HeightMax       string `json:"heightMax,omitempty" validate:"omitempty,filter_option=height"`
	AnnualIncomeMin string `json:"annualIncomeMin,omitempty" validate:"omitempty,filter_option=income_min"`
	AnnualIncomeMax string `json:"annualIncomeMax,omitempty" validate:"omitempty,filter_option=income_max"`

	Gender        string `json:"gender,omitempty" validate:"omitempty,filter_option=gender"`
	MotherTongue  string `json:"motherTongue,omitempty" validate:"omitempty,max=50"`
	Religion      string `json:"religion,omitempty" validate:"omitempty,filter_option=religion"`
	Caste         string `json:"caste,omitempty" validate:"omitempty,max=100"`
	Ethnicity     string `json:"ethnicity,omitempty" validate:"omitempty,max=50"`
	MaritalStatus string `json:"maritalStatus,omitempty" validate:"omitempty,filter_option=marital_status"`
	Country       string `json:"country,omitempty" validate:"omitempty,max=60"`
	State         string `json:"state,omitempty" validate:"omitempty,max=60"`
	City          string `json:"city,omitempty" validate:"omitempty,max=60"`
	Education     string `json:"education,omitempty" validate:"omitempty,max=100"`
	Profession    string `json:"profession,omitempty" validate:"omitempty,max=100"`

	EatingHabits     string `json:"eatingHabits,omitempty" validate:"omitempty,filter_option=eating_habits"`
	DrinkingHabits   string `json:"drinkingHabits,omitempty" validate:"omitempty,filter_option=drinking_habits"`
	SmokingHabits    string `json:"smokingHabits,omitempty" validate:"omitempty,filter_option=smoking_habits"`
	PhysicalStatus   string `json:"physicalStatus,omitempty" validate:"omitempty,filter_option=physical_status"`
	BloodGroup       string `json:"bloodGroup,omitempty" validate:"omitempty,filter_option=blood_group"`
	HasChildren      string `json:"hasChildren,omitempty" validate:"omitempty,filter_option=has_children"`
	DietaryLifestyle string `json:"dietaryLifestyle,omitempty" validate:"omitempty,filter_option=dietary_lifestyle"`
	GuruLineage      string `json:"guruLineage,omitempty" validate:"omitempty,max=100"`

	Manglik   string `json:"manglik,omitempty" validate:"omitempty,filter_option=manglik"`
	Rashi     string `json:"rashi,omitempty" validate:"omitempty,filter_option=rashi"`
	Nakshatra string `json:"nakshatra,omitempty" validate:"omitempty,filter_option=nakshatra"`

	CasteGroups        []string `json:"casteGroups,omitempty" validate:"omitempty,dive,max=100"`
	CasteSubcastes     []string `json:"casteSubcastes,omitempty" validate:"omitempty,dive,max=100"`
	CombinedCastes     []string `json:"combinedCastes,omitempty" validate:"omitempty,dive,max=100"`
	SpiritualPractices []string `json:"spiritualPractices,omitempty" validate:"omitempty,dive,filter_option=spiritual_practices"`
	SacredTexts        []string `json:"sacredTexts,omitempty" validate:"omitempty,dive,filter_option=sacred_texts"`
	OtherLanguages     []string `json:"otherLanguages,omitempty" validate:"omitempty,dive,max=50"`

	VerifiedOnly bool `json:"verifiedOnly,omitempty"`
}

// NewFilterCriteria returns the cleared baseline: only the caste lists are kept, empty.
func NewFilterCriteria() FilterCriteria {
	return FilterCriteria{
		CasteGroups:    []string{},
		CasteSubcastes: []string{},
	}
}

// Clone returns a deep copy of the criteria.
func (f FilterCriteria) Clone() FilterCriteria {
	c := f
	v := reflect.ValueOf(&c).Elem()
	for i := 0; i < v.NumField(); i++ {
		fv := v.Field(i)
		if fv.Kind() == reflect.Slice && !fv.IsNil() {
			cp := reflect.MakeSlice(fv.Type(), fv.Len(), fv.Len())
			reflect.Copy(cp, fv)
			fv.Set(cp)
		}
	}
	return c
}

// Equal compares two criteria field by field, by their effect on a search.
// List fields compare as multisets of active values, so order is ignored and
// a nil list equals an empty one. Blank and "All" scalars are the same
// unconstrained value.
func (f FilterCriteria) Equal(other FilterCriteria) bool {
	a := reflect.ValueOf(f)
	b := reflect.ValueOf(other)
	for i := 0; i < a.NumField(); i++ {
		av, bv := a.Field(i), b.Field(i)
		switch av.Kind() {
		case reflect.Slice:
			if !sameElements(ActiveValues(av.Interface().([]string)), ActiveValues(bv.Interface().([]string))) {
				return false
			}
		case reflect.String:
			if activeScalar(av.String()) != activeScalar(bv.String()) {
				return false
			}
		default:
			if av.Interface() != bv.Interface() {
				return false
			}
		}
	}
	return true
}

func activeScalar(value string) string {
	if !IsActive(value) {
		return ""
	}
	return value
}

// IsEmpty reports whether no field carries a meaningful selection.
func (f FilterCriteria) IsEmpty() bool {
	return f.FieldCount() == 0
}

// FieldCount returns the number of fields with a meaningful selection.
func (f FilterCriteria) FieldCount() int {
	n := 0
	v := reflect.ValueOf(f)
	for i := 0; i < v.NumField(); i++ {
		if meaningful(v.Field(i)) {
			n++
		}
	}
	return n
}

// IsActive reports whether a scalar filter value constrains the result.
func IsActive(value string) bool {
	value = strings.TrimSpace(value)
	return value != "" && value != constants.FilterValueAll
}

// ActiveValues drops blanks and the "All" sentinel from a list filter.
// A list that contained "All" is unconstrained and yields nil.
func ActiveValues(values []string) []string {
	var out []string
	for _, v := range values {
		if strings.TrimSpace(v) == constants.FilterValueAll {
			return nil
		}
		if IsActive(v) {
			out = append(out, v)
		}
	}
	return out
}

func meaningful(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return IsActive(v.String())
	case reflect.Slice:
		return len(ActiveValues(v.Interface().([]string))) > 0
	default:
		return !v.IsZero()
	}
}

func sameElements(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, s := range a {
		counts[s]++
	}
	for _, s := range b {
		counts[s]--
		if counts[s] < 0 {
			return false
		}
	}
	return true
}

// SearchRequest is the body of POST /api/profiles/search.
type SearchRequest struct {
	Filters       FilterCriteria `json:"filters"`
	ExcludeUserID string         `json:"excludeUserId,omitempty" validate:"omitempty,max=64"`
}

// SearchResponse carries the matching profiles in collection order.
type SearchResponse struct {
	Profiles []*Profile `json:"profiles"`
}
