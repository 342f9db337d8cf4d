package rules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexanderramin/kvitko/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a rule-table encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath infers the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported rule table extension %q (want .json, .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// Warning describes a range entry that will resolve to the default interval.
type Warning struct {
	Species   string
	Season    domain.Season
	Proximity domain.Proximity
	Slot      string
	Value     string
	Reason    string
}

func (w Warning) String() string {
	loc := fmt.Sprintf("%s/%s/%s/%s", w.Species, w.Season, w.Proximity, w.Slot)
	if w.Value == "" {
		return fmt.Sprintf("%s: %s", loc, w.Reason)
	}
	return fmt.Sprintf("%s: %s (%q)", loc, w.Reason, w.Value)
}

// LoadResult is a successfully built table plus any entry-level warnings.
type LoadResult struct {
	Table    *Table
	Warnings []Warning
	Source   string
}

// LoadFile reads and builds a rule table from path.
func LoadFile(path string) (*LoadResult, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rule table: %w", err)
	}
	res, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	res.Source = path
	return res, nil
}

// Parse decodes data in the given format. Structural problems (a missing
// season or proximity block, unknown keys, an empty table) are errors;
// individual range entries that are missing or malformed only produce
// warnings.
func Parse(data []byte, format Format) (*LoadResult, error) {
	doc, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	return build(doc)
}

type document map[string]*speciesDoc

type speciesDoc struct {
	Summer       *seasonDoc `json:"summer" yaml:"summer" toml:"summer"`
	SpringAutumn *seasonDoc `json:"spring_autumn" yaml:"spring_autumn" toml:"spring_autumn"`
	Winter       *seasonDoc `json:"winter" yaml:"winter" toml:"winter"`
}

type seasonDoc struct {
	Near   *proximityDoc `json:"near" yaml:"near" toml:"near"`
	Medium *proximityDoc `json:"medium" yaml:"medium" toml:"medium"`
	Far    *proximityDoc `json:"far" yaml:"far" toml:"far"`
}

type proximityDoc struct {
	TerracottaLight    *string `json:"terracotta_light" yaml:"terracotta_light" toml:"terracotta_light"`
	TerracottaStandard *string `json:"terracotta_standard" yaml:"terracotta_standard" toml:"terracotta_standard"`
	TerracottaHeavy    *string `json:"terracotta_heavy" yaml:"terracotta_heavy" toml:"terracotta_heavy"`
	PlasticLight       *string `json:"plastic_light" yaml:"plastic_light" toml:"plastic_light"`
	PlasticStandard    *string `json:"plastic_standard" yaml:"plastic_standard" toml:"plastic_standard"`
	PlasticHeavy       *string `json:"plastic_heavy" yaml:"plastic_heavy" toml:"plastic_heavy"`
}

func decode(data []byte, format Format) (document, error) {
	var doc document
	switch format {
	case FormatJSON:
		if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
			return decodeLegacyJSON(data)
		}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parsing json: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parsing yaml: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parsing toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported rule table format %q", format)
	}
	return doc, nil
}

func build(doc document) (*LoadResult, error) {
	if len(doc) == 0 {
		return nil, fmt.Errorf("rule table has no species")
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	res := &LoadResult{}
	profiles := make([]*SpeciesProfile, 0, len(keys))
	for _, key := range keys {
		sd := doc[key]
		if sd == nil {
			return nil, fmt.Errorf("species %q: empty profile", key)
		}
		sp := &SpeciesProfile{Key: key}
		seasons := []struct {
			season domain.Season
			doc    *seasonDoc
			dst    *SeasonProfile
		}{
			{domain.SeasonSummer, sd.Summer, &sp.Summer},
			{domain.SeasonSpringAutumn, sd.SpringAutumn, &sp.SpringAutumn},
			{domain.SeasonWinter, sd.Winter, &sp.Winter},
		}
		for _, s := range seasons {
			if s.doc == nil {
				return nil, fmt.Errorf("species %q: missing season %q", key, s.season)
			}
			prox := []struct {
				proximity domain.Proximity
				doc       *proximityDoc
				dst       *ProximityProfile
			}{
				{domain.ProximityNear, s.doc.Near, &s.dst.Near},
				{domain.ProximityMedium, s.doc.Medium, &s.dst.Medium},
				{domain.ProximityFar, s.doc.Far, &s.dst.Far},
			}
			for _, p := range prox {
				if p.doc == nil {
					return nil, fmt.Errorf("species %q: season %q: missing proximity %q", key, s.season, p.proximity)
				}
				*p.dst = p.doc.profile()
				for _, w := range checkProximity(*p.dst, p.doc) {
					w.Species, w.Season, w.Proximity = key, s.season, p.proximity
					res.Warnings = append(res.Warnings, w)
				}
			}
		}
		profiles = append(profiles, sp)
	}

	table, err := NewTable(profiles...)
	if err != nil {
		return nil, err
	}
	res.Table = table
	return res, nil
}

func (d *proximityDoc) profile() ProximityProfile {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return ProximityProfile{
		TerracottaLight:    deref(d.TerracottaLight),
		TerracottaStandard: deref(d.TerracottaStandard),
		TerracottaHeavy:    deref(d.TerracottaHeavy),
		PlasticLight:       deref(d.PlasticLight),
		PlasticStandard:    deref(d.PlasticStandard),
		PlasticHeavy:       deref(d.PlasticHeavy),
	}
}

func checkProximity(p ProximityProfile, d *proximityDoc) []Warning {
	present := []bool{
		d.TerracottaLight != nil, d.TerracottaStandard != nil, d.TerracottaHeavy != nil,
		d.PlasticLight != nil, d.PlasticStandard != nil, d.PlasticHeavy != nil,
	}
	var warnings []Warning
	for i, s := range p.Entries() {
		if !present[i] {
			warnings = append(warnings, Warning{Slot: s.Name(), Reason: fmt.Sprintf("missing entry, defaults to %d days", DefaultIntervalDays)})
			continue
		}
		lo, hi, ok := parseBounds(s.Value)
		if !ok {
			warnings = append(warnings, Warning{Slot: s.Name(), Value: s.Value, Reason: fmt.Sprintf("malformed range, defaults to %d days", DefaultIntervalDays)})
			continue
		}
		if lo > hi {
			warnings = append(warnings, Warning{Slot: s.Name(), Value: s.Value, Reason: "inverted bounds, smaller value used"})
		}
	}
	return warnings
}
