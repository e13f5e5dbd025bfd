package models

import (
	"time"
)

// Profile is one person's matrimonial listing.
// Height and AnnualIncome hold catalog labels; their order comes from the catalog.
type Profile struct {
	ID     string `json:"id" db:"id"`
	UserID string `json:"userId" db:"user_id"`

	Name          string   `json:"name" db:"name"`
	Age           int      `json:"age" db:"age"`
	Gender        string   `json:"gender" db:"gender"`
	Height        string   `json:"height,omitempty" db:"height"`
	MotherTongue  string   `json:"motherTongue,omitempty" db:"mother_tongue"`
	Languages     []string `json:"languages,omitempty" db:"languages"`
	Religion      string   `json:"religion,omitempty" db:"religion"`
	Caste         string   `json:"caste,omitempty" db:"caste"`
	Ethnicity     string   `json:"ethnicity,omitempty" db:"ethnicity"`
	MaritalStatus string   `json:"maritalStatus,omitempty" db:"marital_status"`
	Country       string   `json:"country,omitempty" db:"country"`
	State         string   `json:"state,omitempty" db:"state"`
	City          string   `json:"city,omitempty" db:"city"`

	Education    string `json:"education,omitempty" db:"education"`
	Profession   string `json:"profession,omitempty" db:"profession"`
	AnnualIncome string `json:"annualIncome,omitempty" db:"annual_income"`

	EatingHabits     string `json:"eatingHabits,omitempty" db:"eating_habits"`
	DrinkingHabits   string `json:"drinkingHabits,omitempty" db:"drinking_habits"`
	SmokingHabits    string `json:"smokingHabits,omitempty" db:"smoking_habits"`
	PhysicalStatus   string `json:"physicalStatus,omitempty" db:"physical_status"`
	BloodGroup       string `json:"bloodGroup,omitempty" db:"blood_group"`
	HealthConditions string `json:"healthConditions,omitempty" db:"health_conditions"`
	HasChildren      string `json:"hasChildren,omitempty" db:"has_children"`

	SpiritualPractices []string `json:"spiritualPractices,omitempty" db:"spiritual_practices"`
	SacredTexts        []string `json:"sacredTexts,omitempty" db:"sacred_texts"`
	GuruLineage        string   `json:"guruLineage,omitempty" db:"guru_lineage"`
	DietaryLifestyle   string   `json:"dietaryLifestyle,omitempty" db:"dietary_lifestyle"`

	// Astrological attributes come from a mock calculator, not an ephemeris.
	Rashi         string `json:"rashi,omitempty" db:"rashi"`
	Nakshatra     string `json:"nakshatra,omitempty" db:"nakshatra"`
	HoroscopeSign string `json:"horoscopeSign,omitempty" db:"horoscope_sign"`
	Manglik       string `json:"manglik,omitempty" db:"manglik"`
	GunaScore     int    `json:"gunaScore" db:"guna_score"`

	About string `json:"about,omitempty" db:"about"`

	Verified  bool      `json:"verified" db:"verified"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// TableName returns the database table name for the Profile model.
func (p *Profile) TableName() string {
	return "profiles"
}

// Clone returns a deep copy so callers can't mutate stored slices.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	c := *p
	c.Languages = cloneStrings(p.Languages)
	c.SpiritualPractices = cloneStrings(p.SpiritualPractices)
	c.SacredTexts = cloneStrings(p.SacredTexts)
	return &c
}

// ProfileCreate is the request body for creating the caller's own profile.
type ProfileCreate struct {
	Name          string   `json:"name" validate:"required,min=2,max=100"`
	Age           int      `json:"age" validate:"required,gte=18,lte=100"`
	Gender        string   `json:"gender" validate:"required,catalog=gender"`
	Height        string   `json:"height" validate:"omitempty,catalog=height"`
	MotherTongue  string   `json:"motherTongue" validate:"omitempty,max=50"`
	Languages     []string `json:"languages" validate:"omitempty,max=10,dive,max=50"`
	Religion      string   `json:"religion" validate:"omitempty,catalog=religion"`
	Caste         string   `json:"caste" validate:"omitempty,max=100"`
	Ethnicity     string   `json:"ethnicity" validate:"omitempty,max=50"`
	MaritalStatus string   `json:"maritalStatus" validate:"omitempty,catalog=marital_status"`
	Country       string   `json:"country" validate:"omitempty,max=60"`
	State         string   `json:"state" validate:"omitempty,max=60"`
	City          string   `json:"city" validate:"omitempty,max=60"`

	Education    string `json:"education" validate:"omitempty,max=100"`
	Profession   string `json:"profession" validate:"omitempty,max=100"`
	AnnualIncome string `json:"annualIncome" validate:"omitempty,catalog=income"`

	EatingHabits     string `json:"eatingHabits" validate:"omitempty,catalog=eating_habits"`
	DrinkingHabits   string `json:"drinkingHabits" validate:"omitempty,catalog=drinking_habits"`
	SmokingHabits    string `json:"smokingHabits" validate:"omitempty,catalog=smoking_habits"`
	PhysicalStatus   string `json:"physicalStatus" validate:"omitempty,catalog=physical_status"`
	BloodGroup       string `json:"bloodGroup" validate:"omitempty,catalog=blood_group"`
	HealthConditions string `json:"healthConditions" validate:"omitempty,max=200"`
	HasChildren      string `json:"hasChildren" validate:"omitempty,catalog=has_children"`

	SpiritualPractices []string `json:"spiritualPractices" validate:"omitempty,dive,catalog=spiritual_practices"`
	SacredTexts        []string `json:"sacredTexts" validate:"omitempty,dive,catalog=sacred_texts"`
	GuruLineage        string   `json:"guruLineage" validate:"omitempty,max=100"`
	DietaryLifestyle   string   `json:"dietaryLifestyle" validate:"omitempty,catalog=dietary_lifestyle"`

	About string `json:"about" validate:"omitempty,max=2000"`
}

// NewProfile builds an active, unverified profile for userID from a create request.
// Astrological fields are left for the caller to fill.
func NewProfile(id, userID string, in *ProfileCreate) *Profile {
	now := time.Now().UTC()
	return &Profile{
		ID:                 id,
		UserID:             userID,
		Name:               in.Name,
		Age:                in.Age,
		Gender:             in.Gender,
		Height:             in.Height,
		MotherTongue:       in.MotherTongue,
		Languages:          cloneStrings(in.Languages),
		Religion:           in.Religion,
		Caste:              in.Caste,
		Ethnicity:          in.Ethnicity,
		MaritalStatus:      in.MaritalStatus,
		Country:            in.Country,
		State:              in.State,
		City:               in.City,
		Education:          in.Education,
		Profession:         in.Profession,
		AnnualIncome:       in.AnnualIncome,
		EatingHabits:       in.EatingHabits,
		DrinkingHabits:     in.DrinkingHabits,
		SmokingHabits:      in.SmokingHabits,
		PhysicalStatus:     in.PhysicalStatus,
		BloodGroup:         in.BloodGroup,
		HealthConditions:   in.HealthConditions,
		HasChildren:        in.HasChildren,
		SpiritualPractices: cloneStrings(in.SpiritualPractices),
		SacredTexts:        cloneStrings(in.SacredTexts),
		GuruLineage:        in.GuruLineage,
		DietaryLifestyle:   in.DietaryLifestyle,
		About:              in.About,
		Active:             true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// ProfileUpdate is a partial update. Nil fields are left untouched.
type ProfileUpdate struct {
	Name          *string   `json:"name" validate:"omitempty,min=2,max=100"`
	Age           *int      `json:"age" validate:"omitempty,gte=18,lte=100"`
	Height        *string   `json:"height" validate:"omitempty,catalog=height"`
	MotherTongue  *string   `json:"motherTongue" validate:"omitempty,max=50"`
	Languages     *[]string `json:"languages" validate:"omitempty,max=10,dive,max=50"`
	Religion      *string   `json:"religion" validate:"omitempty,catalog=religion"`
	Caste         *string   `json:"caste" validate:"omitempty,max=100"`
	Ethnicity     *string   `json:"ethnicity" validate:"omitempty,max=50"`
	MaritalStatus *string   `json:"maritalStatus" validate:"omitempty,catalog=marital_status"`
	Country       *string   `json:"country" validate:"omitempty,max=60"`
	State         *string   `json:"state" validate:"omitempty,max=60"`
	City          *string   `json:"city" validate:"omitempty,max=60"`

	Education    *string `json:"education" validate:"omitempty,max=100"`
	Profession   *string `json:"profession" validate:"omitempty,max=100"`
	AnnualIncome *string `json:"annualIncome" validate:"omitempty,catalog=income"`

	EatingHabits     *string `json:"eatingHabits" validate:"omitempty,catalog=eating_habits"`
	DrinkingHabits   *string `json:"drinkingHabits" validate:"omitempty,catalog=drinking_habits"`
	SmokingHabits    *string `json:"smokingHabits" validate:"omitempty,catalog=smoking_habits"`
	PhysicalStatus   *string `json:"physicalStatus" validate:"omitempty,catalog=physical_status"`
	BloodGroup       *string `json:"bloodGroup" validate:"omitempty,catalog=blood_group"`
	HealthConditions *string `json:"healthConditions" validate:"omitempty,max=200"`
	HasChildren      *string `json:"hasChildren" validate:"omitempty,catalog=has_children"`

	SpiritualPractices *[]string `json:"spiritualPractices" validate:"omitempty,dive,catalog=spiritual_practices"`
	SacredTexts        *[]string `json:"sacredTexts" validate:"omitempty,dive,catalog=sacred_texts"`
	GuruLineage        *string   `json:"guruLineage" validate:"omitempty,max=100"`
	DietaryLifestyle   *string   `json:"dietaryLifestyle" validate:"omitempty,catalog=dietary_lifestyle"`

	About  *string `json:"about" validate:"omitempty,max=2000"`
	Active *bool   `json:"active"`
}

// IsEmpty reports whether the update would change nothing.
func (u *ProfileUpdate) IsEmpty() bool {
	return *u == ProfileUpdate{}
}

// ApplyTo merges the set fields into p and bumps UpdatedAt.
func (u *ProfileUpdate) ApplyTo(p *Profile) {
	setString(&p.Name, u.Name)
	if u.Age != nil {
		p.Age = *u.Age
	}
	setString(&p.Height, u.Height)
	setString(&p.MotherTongue, u.MotherTongue)
	setStrings(&p.Languages, u.Languages)
	setString(&p.Religion, u.Religion)
	setString(&p.Caste, u.Caste)
	setString(&p.Ethnicity, u.Ethnicity)
	setString(&p.MaritalStatus, u.MaritalStatus)
	setString(&p.Country, u.Country)
	setString(&p.State, u.State)
	setString(&p.City, u.City)
	setString(&p.Education, u.Education)
	setString(&p.Profession, u.Profession)
	setString(&p.AnnualIncome, u.AnnualIncome)
	setString(&p.EatingHabits, u.EatingHabits)
	setString(&p.DrinkingHabits, u.DrinkingHabits)
	setString(&p.SmokingHabits, u.SmokingHabits)
	setString(&p.PhysicalStatus, u.PhysicalStatus)
	setString(&p.BloodGroup, u.BloodGroup)
	setString(&p.HealthConditions, u.HealthConditions)
	setString(&p.HasChildren, u.HasChildren)
	setStrings(&p.SpiritualPractices, u.SpiritualPractices)
	setStrings(&p.SacredTexts, u.SacredTexts)
	setString(&p.GuruLineage, u.GuruLineage)
	setString(&p.DietaryLifestyle, u.DietaryLifestyle)
	setString(&p.About, u.About)
	if u.Active != nil {
		p.Active = *u.Active
	}
	p.UpdatedAt = time.Now().UTC()
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setStrings(dst *[]string, src *[]string) {
	if src != nil {
		*dst = cloneStrings(*src)
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
