package rules

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Legacy catalogs are a JSON array of {id, name, watering} objects using
// Czech proximity keys and two-letter pot/substrate codes (T = terracotta or
// heavy, P = plastic, L = light, S = standard).

type legacyEntry struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Watering *legacySpec `json:"watering"`
}

type legacySpec struct {
	Summer       *legacySeason `json:"summer"`
	SpringAutumn *legacySeason `json:"spring_autumn"`
	Winter       *legacySeason `json:"winter"`
}

type legacySeason struct {
	Blizko  *legacyPot `json:"blizko"`
	Stredne *legacyPot `json:"stredne"`
	Daleko  *legacyPot `json:"daleko"`
}

type legacyPot struct {
	TL *string `json:"T_L"`
	TS *string `json:"T_S"`
	TT *string `json:"T_T"`
	PL *string `json:"P_L"`
	PS *string `json:"P_S"`
	PT *string `json:"P_T"`
}

func decodeLegacyJSON(data []byte) (document, error) {
	var entries []legacyEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing legacy json catalog: %w", err)
	}
	doc := make(document, len(entries))
	for i, e := range entries {
		name := strings.TrimSpace(e.Name)
		if name == "" {
			return nil, fmt.Errorf("legacy entry %d (id %q): missing name", i, e.ID)
		}
		if _, dup := doc[name]; dup {
			return nil, fmt.Errorf("legacy entry %d: duplicate species %q", i, name)
		}
		if e.Watering == nil {
			doc[name] = nil
			continue
		}
		doc[name] = &speciesDoc{
			Summer:       e.Watering.Summer.toDoc(),
			SpringAutumn: e.Watering.SpringAutumn.toDoc(),
			Winter:       e.Watering.Winter.toDoc(),
		}
	}
	return doc, nil
}

func (s *legacySeason) toDoc() *seasonDoc {
	if s == nil {
		return nil
	}
	return &seasonDoc{
		Near:   s.Blizko.toDoc(),
		Medium: s.Stredne.toDoc(),
		Far:    s.Daleko.toDoc(),
	}
}

func (p *legacyPot) toDoc() *proximityDoc {
	if p == nil {
		return nil
	}
	return &proximityDoc{
		TerracottaLight:    p.TL,
		TerracottaStandard: p.TS,
		TerracottaHeavy:    p.TT,
		PlasticLight:       p.PL,
		PlasticStandard:    p.PS,
		PlasticHeavy:       p.PT,
	}
}
