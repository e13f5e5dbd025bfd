package filterstate

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/vivahmatch/backend/internal/catalog"
	"github.com/vivahmatch/backend/internal/models"
)

// Range field keys with clamp rules.
const (
	FieldAgeMin          = "ageMin"
	FieldAgeMax          = "ageMax"
	FieldHeightMin       = "heightMin"
	FieldHeightMax       = "heightMax"
	FieldAnnualIncomeMin = "annualIncomeMin"
	FieldAnnualIncomeMax = "annualIncomeMax"
)

// fieldIndex maps FilterCriteria JSON names to struct field indexes.
var fieldIndex = buildFieldIndex()

func buildFieldIndex() map[string]int {
	t := reflect.TypeOf(models.FilterCriteria{})
	index := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name == "" || name == "-" {
			continue
		}
		index[name] = i
	}
	return index
}

// FieldKeys returns every settable field name in sorted order.
func FieldKeys() []string {
	keys := make([]string, 0, len(fieldIndex))
	for k := range fieldIndex {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseFieldValue converts a command-line string into the Go value SetField
// expects for key. Lists are comma separated; an empty string clears the field.
func ParseFieldValue(key, raw string) (interface{}, error) {
	i, ok := fieldIndex[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	raw = strings.TrimSpace(raw)

	switch reflect.TypeOf(models.FilterCriteria{}).Field(i).Type.Kind() {
	case reflect.Int:
		if raw == "" {
			return 0, nil
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects a number, got %q", ErrInvalidFieldValue, key, raw)
		}
		return n, nil
	case reflect.Bool:
		if raw == "" {
			return false, nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %s expects true or false, got %q", ErrInvalidFieldValue, key, raw)
		}
		return b, nil
	case reflect.Slice:
		values := []string{}
		if raw == "" {
			return values, nil
		}
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
		return values, nil
	default:
		return raw, nil
	}
}

// assignField stores value into f's field key, checking its type.
func assignField(f *models.FilterCriteria, key string, value interface{}) error {
	i, ok := fieldIndex[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	field := reflect.ValueOf(f).Elem().Field(i)

	if value == nil {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}
	v := reflect.ValueOf(value)
	if !v.Type().AssignableTo(field.Type()) {
		return fmt.Errorf("%w: %s expects %s, got %T", ErrInvalidFieldValue, key, field.Type(), value)
	}
	if v.Kind() == reflect.Slice {
		cp := reflect.MakeSlice(field.Type(), v.Len(), v.Len())
		reflect.Copy(cp, v)
		v = cp
	}
	field.Set(v)
	return nil
}

// checkOption rejects range labels that are not catalog options.
func checkOption(key, value, list string) error {
	if !models.IsActive(value) || catalog.Contains(list, value) {
		return nil
	}
	return fmt.Errorf("%w: %q is not a %s option", ErrInvalidFieldValue, value, key)
}

// clampAge keeps set ages inside [min, max] and pulls the opposite bound
// along when the pair would be inverted.
func clampAge(f *models.FilterCriteria, key string, min, max int) {
	clamp := func(v int) int {
		if v == 0 {
			return 0
		}
		if v < min {
			return min
		}
		if v > max {
			return max
		}
		return v
	}
	f.AgeMin, f.AgeMax = clamp(f.AgeMin), clamp(f.AgeMax)
	if f.AgeMin == 0 || f.AgeMax == 0 || f.AgeMin <= f.AgeMax {
		return
	}
	if key == FieldAgeMin {
		f.AgeMax = f.AgeMin
	} else {
		f.AgeMin = f.AgeMax
	}
}

// clampHeight compares heights by position in the ordered height list.
func clampHeight(f *models.FilterCriteria, key string) {
	lo, hi := catalog.HeightPosition(f.HeightMin), catalog.HeightPosition(f.HeightMax)
	if lo < 0 || hi < 0 || lo <= hi {
		return
	}
	if key == FieldHeightMin {
		f.HeightMax = f.HeightMin
	} else {
		f.HeightMin = f.HeightMax
	}
}

// clampIncome compares income bounds by position in the parallel min/max
// option lists and moves the opposite bound to the matching position.
func clampIncome(f *models.FilterCriteria, key string) {
	lo, hi := catalog.IncomeMinPosition(f.AnnualIncomeMin), catalog.IncomeMaxPosition(f.AnnualIncomeMax)
	if lo < 0 || hi < 0 || lo <= hi {
		return
	}
	if key == FieldAnnualIncomeMin {
		f.AnnualIncomeMax = catalog.At(catalog.ListIncomeMax, lo)
	} else {
		f.AnnualIncomeMin = catalog.At(catalog.ListIncomeMin, hi)
	}
}
