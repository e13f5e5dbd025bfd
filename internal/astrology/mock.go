// Package astrology fills the astrological fields of a profile.
//
// The values are a labelled mock: they are derived from a hash of the profile
// id, not from birth data or an ephemeris. They are stable for a given id so
// that search results and filters over them are reproducible.
package astrology

import (
	"hash/fnv"

	"github.com/vivahmatch/backend/internal/catalog"
	"github.com/vivahmatch/backend/internal/models"
)

// MaxGunaScore is the highest Ashtakoota guna total.
const MaxGunaScore = 36

// Chart is the mock astrological reading for one profile.
type Chart struct {
	Rashi         string
	Nakshatra     string
	HoroscopeSign string
	Manglik       string
	GunaScore     int
}

// Calculator produces charts for profiles.
type Calculator interface {
	Calculate(profileID string) Chart
}

// MockCalculator derives charts deterministically from the profile id.
type MockCalculator struct{}

// NewMockCalculator returns the id-hash based calculator.
func NewMockCalculator() *MockCalculator {
	return &MockCalculator{}
}

// Calculate returns the mock chart for profileID.
func (MockCalculator) Calculate(profileID string) Chart {
	h := fnv.New64a()
	_, _ = h.Write([]byte(profileID))
	seed := h.Sum64()

	pick := func(list string, shift uint) string {
		values := catalog.List(list)
		return values[(seed>>shift)%uint64(len(values))]
	}

	return Chart{
		Rashi:         pick(catalog.ListRashi, 0),
		Nakshatra:     pick(catalog.ListNakshatra, 8),
		HoroscopeSign: pick(catalog.ListHoroscopeSign, 16),
		Manglik:       pick(catalog.ListManglik, 24),
		GunaScore:     int((seed >> 32) % (MaxGunaScore + 1)),
	}
}

// Apply copies c onto the profile's astrological fields.
func (c Chart) Apply(p *models.Profile) {
	p.Rashi = c.Rashi
	p.Nakshatra = c.Nakshatra
	p.HoroscopeSign = c.HoroscopeSign
	p.Manglik = c.Manglik
	p.GunaScore = c.GunaScore
}
