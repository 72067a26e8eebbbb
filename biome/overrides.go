package biome

import (
	"encoding/json"
	"log"

	"mapengine/common"
)

// OverridesDoc is the persisted per-world biome override document. Every field
// of a record other than the id is optional; absent fields keep the base
// table's value.
type OverridesDoc struct {
	Version int              `json:"version"`
	Biomes  []OverrideRecord `json:"biomes"`
}

// OverrideRecord overrides one biome. PatternSet distinguishes "leave the
// pattern alone" (null Pattern, PatternSet false) from "remove the pattern"
// (explicit null in the document).
type OverrideRecord struct {
	ID         int              `json:"id"`
	Enabled    *bool            `json:"enabled,omitempty"`
	Name       *string          `json:"name,omitempty"`
	Color      *string          `json:"color,omitempty"` // hex6
	RenderRank *int             `json:"renderRank,omitempty"`
	Pattern    *PatternOverride `json:"pattern,omitempty"`
	PatternSet bool             `json:"-"`
	Link       *string          `json:"link,omitempty"`
}

// UnmarshalJSON records whether the pattern key was present at all, so an
// explicit "pattern": null (remove the pattern) is distinguishable from an
// absent key (keep the base pattern).
func (r *OverrideRecord) UnmarshalJSON(data []byte) error {
	type plain OverrideRecord
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	_, p.PatternSet = probe["pattern"]
	*r = OverrideRecord(p)
	return nil
}

// PatternOverride is the serialized pattern form.
type PatternOverride struct {
	Type         PatternType `json:"type"`
	PatternColor *string     `json:"patternColor,omitempty"`
	DarkenFactor float64     `json:"darkenFactor"`
	Spacing      float64     `json:"spacing"`
	LineWidth    float64     `json:"lineWidth"`
	Opacity      float64     `json:"opacity"`
}

// ApplyOverrides layers a document over a base table and returns the merged
// table. Records with an invalid id, color or pattern type are skipped with a
// warning; the rest of the document still applies. The merge is deterministic:
// records apply in document order, later records for the same id win.
func ApplyOverrides(base *Table, doc OverridesDoc) *Table {
	merged := make(map[int]Config, len(base.byID))
	for id, c := range base.byID {
		merged[id] = c
	}

	for _, rec := range doc.Biomes {
		if rec.ID < 0 || rec.ID > MaxID {
			log.Printf("WARNING: biome override with invalid id %d skipped", rec.ID)
			continue
		}
		c, ok := merged[rec.ID]
		if !ok {
			c = Config{ID: rec.ID, Name: "unnamed", Color: 0x808080, RenderRank: rec.ID, Enabled: true}
		}
		if rec.Enabled != nil {
			c.Enabled = *rec.Enabled
		}
		if rec.Name != nil {
			c.Name = *rec.Name
		}
		if rec.Color != nil {
			rgb, err := common.ParseHex(*rec.Color)
			if err != nil {
				log.Printf("WARNING: biome %d override skipped: %v", rec.ID, err)
				continue
			}
			c.Color = rgb
		}
		if rec.RenderRank != nil {
			c.RenderRank = *rec.RenderRank
		}
		if rec.Link != nil {
			c.Link = *rec.Link
		}
		if rec.PatternSet {
			if rec.Pattern == nil {
				c.Pattern = nil
			} else {
				p, err := rec.Pattern.toConfig()
				if err != nil {
					log.Printf("WARNING: biome %d pattern override skipped: %v", rec.ID, err)
					continue
				}
				c.Pattern = p
			}
		}
		merged[rec.ID] = c
	}

	out := make([]Config, 0, len(merged))
	for _, c := range merged {
		out = append(out, c)
	}
	return NewTable(out)
}

func (p PatternOverride) toConfig() (*PatternConfig, error) {
	if !ValidPatternType(p.Type) {
		return nil, &UnknownPatternError{Type: p.Type}
	}
	if p.Type == PatternNone {
		return nil, nil
	}
	cfg := PatternConfig{
		Type:         p.Type,
		DarkenFactor: p.DarkenFactor,
		Spacing:      p.Spacing,
		LineWidth:    p.LineWidth,
		Opacity:      p.Opacity,
	}
	if p.PatternColor != nil {
		rgb, err := common.ParseHex(*p.PatternColor)
		if err != nil {
			return nil, err
		}
		cfg.PatternColor = &rgb
	}
	norm := cfg.Normalized()
	return &norm, nil
}

// UnknownPatternError reports an unrecognized pattern type in an override.
type UnknownPatternError struct {
	Type PatternType
}

func (e *UnknownPatternError) Error() string {
	return "unknown pattern type " + string(e.Type)
}

// ToOverrides serializes a table into an override document relative to nothing
// (every field explicit). Used when saving the operator's full biome setup.
func ToOverrides(t *Table) OverridesDoc {
	doc := OverridesDoc{Version: 1}
	for _, c := range t.All() {
		c := c
		enabled := c.Enabled
		name := c.Name
		colorHex := c.Color.Hex()
		rank := c.RenderRank
		rec := OverrideRecord{
			ID:         c.ID,
			Enabled:    &enabled,
			Name:       &name,
			Color:      &colorHex,
			RenderRank: &rank,
			PatternSet: true,
		}
		if c.Link != "" {
			link := c.Link
			rec.Link = &link
		}
		if c.Pattern != nil {
			po := PatternOverride{
				Type:         c.Pattern.Type,
				DarkenFactor: c.Pattern.DarkenFactor,
				Spacing:      c.Pattern.Spacing,
				LineWidth:    c.Pattern.LineWidth,
				Opacity:      c.Pattern.Opacity,
			}
			if c.Pattern.PatternColor != nil {
				hex := c.Pattern.PatternColor.Hex()
				po.PatternColor = &hex
			}
			rec.Pattern = &po
		}
		doc.Biomes = append(doc.Biomes, rec)
	}
	return doc
}
