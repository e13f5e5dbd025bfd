// Package catalog holds the canonical option lists shared by profiles, filters
// and clients. Height and income values are display labels, so their order is
// defined by position in these lists and never by string comparison.
package catalog

import (
	"fmt"
	"math"
)

// List names, usable as the parameter of the `catalog` validation tag.
const (
	ListGender             = "gender"
	ListMaritalStatus      = "marital_status"
	ListReligion           = "religion"
	ListEatingHabits       = "eating_habits"
	ListDrinkingHabits     = "drinking_habits"
	ListSmokingHabits      = "smoking_habits"
	ListPhysicalStatus     = "physical_status"
	ListBloodGroup         = "blood_group"
	ListHasChildren        = "has_children"
	ListManglik            = "manglik"
	ListRashi              = "rashi"
	ListNakshatra          = "nakshatra"
	ListHoroscopeSign      = "horoscope_sign"
	ListDietaryLifestyle   = "dietary_lifestyle"
	ListSpiritualPractices = "spiritual_practices"
	ListSacredTexts        = "sacred_texts"
	ListHeight             = "height"
	ListIncome             = "income"
	ListIncomeMin          = "income_min"
	ListIncomeMax          = "income_max"
)

// Height bounds in inches (4ft 6in to 7ft 0in).
const (
	minHeightInches = 54
	maxHeightInches = 84
)

var enumerations = map[string][]string{
	ListGender:        {"Male", "Female"},
	ListMaritalStatus: {"Never Married", "Divorced", "Widowed", "Awaiting Divorce", "Annulled"},
	ListReligion: {
		"Hinduism", "Islam", "Christianity", "Sikhism", "Buddhism", "Jainism",
		"Judaism", "Zoroastrianism", "Spiritual - not religious", "Other",
	},
	ListEatingHabits:   {"Vegetarian", "Non-Vegetarian", "Eggetarian", "Vegan", "Jain"},
	ListDrinkingHabits: {"Doesn't Drink", "Drinks Socially", "Drinks Regularly"},
	ListSmokingHabits:  {"Doesn't Smoke", "Smokes Occasionally", "Smokes Regularly"},
	ListPhysicalStatus: {"Normal", "Physically Challenged"},
	ListBloodGroup:     {"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"},
	ListHasChildren:    {"No", "Yes, living together", "Yes, not living together"},
	ListManglik:        {"Yes", "No", "Partial", "Don't Know"},
	ListRashi: {
		"Mesha", "Vrishabha", "Mithuna", "Karka", "Simha", "Kanya",
		"Tula", "Vrishchika", "Dhanu", "Makara", "Kumbha", "Meena",
	},
	ListNakshatra: {
		"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra", "Punarvasu",
		"Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni", "Hasta",
		"Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha", "Mula", "Purva Ashadha",
		"Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha", "Purva Bhadrapada",
		"Uttara Bhadrapada", "Revati",
	},
	ListHoroscopeSign: {
		"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
		"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
	},
	ListDietaryLifestyle: {"Sattvic", "Vegetarian", "Vegan", "Jain Vegetarian", "Non-Vegetarian", "Flexible"},
	ListSpiritualPractices: {
		"Meditation & Dhyana", "Yoga Practice", "Daily Puja", "Kirtan & Bhajan",
		"Seva (Selfless Service)", "Pilgrimage", "Fasting (Vrat)", "Scripture Study",
		"Mantra Japa", "Pranayama",
	},
	ListSacredTexts: {
		"Bhagavad Gita", "Ramayana", "Mahabharata", "Vedas", "Upanishads",
		"Srimad Bhagavatam", "Guru Granth Sahib", "Puranas", "Yoga Sutras",
		"Quran", "Bible", "Dhammapada", "Agamas",
	},
	// Bucket i of a profile's income spans IncomeMin[i] to IncomeMax[i].
	ListIncome: {
		"Rs. 0 - 1 Lakh", "Rs. 1 - 2 Lakh", "Rs. 2 - 4 Lakh", "Rs. 4 - 7 Lakh",
		"Rs. 7 - 10 Lakh", "Rs. 10 - 15 Lakh", "Rs. 15 - 20 Lakh", "Rs. 20 - 30 Lakh",
		"Rs. 30 - 50 Lakh", "Rs. 50 - 75 Lakh", "Rs. 75 Lakh - 1 Crore", "Rs. 1 Crore & above",
	},
	ListIncomeMin: {
		"Rs. 0", "Rs. 1 Lakh", "Rs. 2 Lakh", "Rs. 4 Lakh", "Rs. 7 Lakh", "Rs. 10 Lakh",
		"Rs. 15 Lakh", "Rs. 20 Lakh", "Rs. 30 Lakh", "Rs. 50 Lakh", "Rs. 75 Lakh", "Rs. 1 Crore",
	},
	ListIncomeMax: {
		"Rs. 1 Lakh", "Rs. 2 Lakh", "Rs. 4 Lakh", "Rs. 7 Lakh", "Rs. 10 Lakh", "Rs. 15 Lakh",
		"Rs. 20 Lakh", "Rs. 30 Lakh", "Rs. 50 Lakh", "Rs. 75 Lakh", "Rs. 1 Crore", "Rs. 1 Crore & above",
	},
}

// positions indexes every list by value for constant-time lookups.
var positions map[string]map[string]int

func init() {
	enumerations[ListHeight] = buildHeights()

	positions = make(map[string]map[string]int, len(enumerations))
	for name, values := range enumerations {
		index := make(map[string]int, len(values))
		for i, v := range values {
			index[v] = i
		}
		positions[name] = index
	}
}

// buildHeights renders every whole inch from 4ft 6in to 7ft 0in as
// "5ft 6in (168 cm)".
func buildHeights() []string {
	heights := make([]string, 0, maxHeightInches-minHeightInches+1)
	for in := minHeightInches; in <= maxHeightInches; in++ {
		heights = append(heights, HeightLabel(in))
	}
	return heights
}

// HeightLabel formats a height given in inches the way profiles store it.
func HeightLabel(inches int) string {
	cm := int(math.Round(float64(inches) * 2.54))
	return fmt.Sprintf("%dft %din (%d cm)", inches/12, inches%12, cm)
}

// List returns a copy of the named option list, or nil if no such list exists.
func List(name string) []string {
	values, ok := enumerations[name]
	if !ok {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// Lists returns copies of every option list keyed by list name.
func Lists() map[string][]string {
	out := make(map[string][]string, len(enumerations))
	for name := range enumerations {
		out[name] = List(name)
	}
	return out
}

// Contains reports whether value is one of the named list's options.
func Contains(name, value string) bool {
	_, ok := positions[name][value]
	return ok
}

// Position returns the index of value in the named list, or -1.
func Position(name, value string) int {
	if i, ok := positions[name][value]; ok {
		return i
	}
	return -1
}

// At returns the option at index i of the named list, or "" when out of range.
func At(name string, i int) string {
	values := enumerations[name]
	if i < 0 || i >= len(values) {
		return ""
	}
	return values[i]
}

// Heights returns the ordered height options.
func Heights() []string { return List(ListHeight) }

// HeightPosition returns the position of a height label, or -1.
func HeightPosition(label string) int { return Position(ListHeight, label) }

// IncomeBucketPosition returns the position of a profile income bucket, or -1.
func IncomeBucketPosition(bucket string) int { return Position(ListIncome, bucket) }

// IncomeMinPosition returns the position of a lower income bound option, or -1.
func IncomeMinPosition(option string) int { return Position(ListIncomeMin, option) }

// IncomeMaxPosition returns the position of an upper income bound option, or -1.
func IncomeMaxPosition(option string) int { return Position(ListIncomeMax, option) }
