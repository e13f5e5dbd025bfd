package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivahmatch/backend/internal/models"
)

func TestFilterCriteria_Equal(t *testing.T) {
	base := models.FilterCriteria{
		AgeMin:             25,
		Religion:           "Hinduism",
		SpiritualPractices: []string{"Yoga Practice", "Daily Puja"},
	}

	tests := []struct {
		name  string
		other models.FilterCriteria
		want  bool
	}{
		{
			name:  "identical",
			other: base.Clone(),
			want:  true,
		},
		{
			name: "list order ignored",
			other: models.FilterCriteria{
				AgeMin:             25,
				Religion:           "Hinduism",
				SpiritualPractices: []string{"Daily Puja", "Yoga Practice"},
				CasteGroups:        []string{},
			},
			want: true,
		},
		{
			name:  "scalar differs",
			other: models.FilterCriteria{AgeMin: 26, Religion: "Hinduism", SpiritualPractices: []string{"Yoga Practice", "Daily Puja"}},
			want:  false,
		},
		{
			name:  "list multiplicity differs",
			other: models.FilterCriteria{AgeMin: 25, Religion: "Hinduism", SpiritualPractices: []string{"Yoga Practice", "Yoga Practice"}},
			want:  false,
		},
		{
			name: "All and blank scalars are both unconstrained",
			other: models.FilterCriteria{
				AgeMin:             25,
				Religion:           "Hinduism",
				Gender:             "All",
				MaritalStatus:      " ",
				SpiritualPractices: []string{"Yoga Practice", "Daily Puja"},
				CasteGroups:        []string{"All"},
			},
			want: true,
		},
		{
			name:  "All differs from a real value",
			other: models.FilterCriteria{AgeMin: 25, Religion: "All", SpiritualPractices: []string{"Yoga Practice", "Daily Puja"}},
			want:  false,
		},
		{
			name:  "verified flag differs",
			other: models.FilterCriteria{AgeMin: 25, Religion: "Hinduism", SpiritualPractices: []string{"Yoga Practice", "Daily Puja"}, VerifiedOnly: true},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Equal(tt.other))
			assert.Equal(t, tt.want, tt.other.Equal(base), "Equal is symmetric")
		})
	}
}

func TestFilterCriteria_IsEmpty(t *testing.T) {
	assert.True(t, models.FilterCriteria{}.IsEmpty())
	assert.True(t, models.NewFilterCriteria().IsEmpty())
	assert.True(t, models.FilterCriteria{Religion: "All", CasteGroups: []string{"All"}}.IsEmpty())
	assert.False(t, models.FilterCriteria{City: "Pune"}.IsEmpty())
	assert.False(t, models.FilterCriteria{AgeMax: 40}.IsEmpty())
	assert.False(t, models.FilterCriteria{VerifiedOnly: true}.IsEmpty())
}

func TestFilterCriteria_FieldCount(t *testing.T) {
	f := models.FilterCriteria{
		AgeMin:      25,
		AgeMax:      30,
		Religion:    "Hinduism",
		Gender:      "All",
		SacredTexts: []string{"Vedas"},
	}
	assert.Equal(t, 4, f.FieldCount())
}

func TestFilterCriteria_Clone(t *testing.T) {
	f := models.FilterCriteria{CasteGroups: []string{"Brahmin"}}

	c := f.Clone()
	c.CasteGroups[0] = "Kshatriya"

	assert.Equal(t, "Brahmin", f.CasteGroups[0])
}

func TestActiveValues(t *testing.T) {
	assert.Nil(t, models.ActiveValues([]string{"Brahmin", "All"}))
	assert.Equal(t, []string{"Brahmin"}, models.ActiveValues([]string{"", "Brahmin", "  "}))
	assert.Nil(t, models.ActiveValues(nil))
}

func TestSavedFilterPreset_JSONFlattensCriteria(t *testing.T) {
	preset := models.SavedFilterPreset{
		ID:             "p-1",
		Name:           "Save 1",
		FilterCriteria: models.FilterCriteria{AgeMin: 25, Religion: "Hinduism"},
	}

	data, err := json.Marshal(preset)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"p-1","name":"Save 1","ageMin":25,"religion":"Hinduism"}`, string(data))

	var decoded models.SavedFilterPreset
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.FilterCriteria.Equal(preset.FilterCriteria))
}

func TestParseAutoPresetName(t *testing.T) {
	tests := []struct {
		name   string
		want   int
		wantOK bool
	}{
		{"Save 1", 1, true},
		{"Save 12", 12, true},
		{"Save 0", 0, false},
		{"Save 01", 0, false},
		{"Save x", 0, false},
		{"save 1", 0, false},
		{"My Search", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := models.ParseAutoPresetName(tt.name)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, n)
		})
	}
	assert.Equal(t, "Save 3", models.AutoPresetName(3))
}
