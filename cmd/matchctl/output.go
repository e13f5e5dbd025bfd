package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/vivahmatch/backend/internal/filterstate"
	"github.com/vivahmatch/backend/internal/models"
)

// printer renders command results as tables or JSON.
type printer struct {
	w    io.Writer
	json bool
}

func (p *printer) encode(v interface{}) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) message(msg string) error {
	if p.json {
		return p.encode(map[string]string{"message": msg})
	}
	_, err := fmt.Fprintln(p.w, msg)
	return err
}

func (p *printer) profiles(profiles []*models.Profile) error {
	if p.json {
		return p.encode(models.SearchResponse{Profiles: profiles})
	}
	if len(profiles) == 0 {
		_, err := fmt.Fprintln(p.w, "No matching profiles")
		return err
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tAGE\tRELIGION\tCASTE\tCITY\tHEIGHT\tVERIFIED")
	for _, pr := range profiles {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\t%s\t%s\t%t\n",
			pr.ID, pr.Name, pr.Age, dash(pr.Religion), dash(pr.Caste), dash(pr.City), dash(pr.Height), pr.Verified)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(p.w, "%d profile(s)\n", len(profiles))
	return err
}

func (p *printer) presets(presets []models.SavedFilterPreset, active string) error {
	if p.json {
		return p.encode(struct {
			Active  string                     `json:"active,omitempty"`
			Presets []models.SavedFilterPreset `json:"presets"`
		}{Active: active, Presets: presets})
	}
	if len(presets) == 0 {
		_, err := fmt.Fprintln(p.w, "No saved presets")
		return err
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tNAME\tID\tFILTERS")
	for _, preset := range presets {
		marker := ""
		if preset.ID == active {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", marker, preset.Name, preset.ID, summarize(preset.FilterCriteria))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if active == filterstate.LatestSearchID {
		_, err := fmt.Fprintln(p.w, "Active: latest search")
		return err
	}
	return nil
}

func (p *printer) catalog(lists map[string][]string) error {
	if p.json {
		return p.encode(lists)
	}
	names := make([]string, 0, len(lists))
	for name := range lists {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if _, err := fmt.Fprintf(p.w, "%s: %s\n", name, strings.Join(lists[name], ", ")); err != nil {
			return err
		}
	}
	return nil
}

// summarize renders the meaningful fields of f as key=value pairs.
func summarize(f models.FilterCriteria) string {
	raw, err := json.Marshal(f)
	if err != nil {
		return ""
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		switch v := fields[k].(type) {
		case []interface{}:
			if len(v) == 0 {
				continue
			}
			items := make([]string, len(v))
			for i, item := range v {
				items[i] = fmt.Sprint(item)
			}
			parts = append(parts, k+"="+strings.Join(items, ","))
		default:
			parts = append(parts, fmt.Sprintf("%s=%v", k, v))
		}
	}
	return strings.Join(parts, " ")
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
