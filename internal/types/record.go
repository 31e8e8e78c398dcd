package types

// Record maps every persisted column of a Playdate to its value. Response
// bodies are built by picking tier-allowed keys out of this map, never by
// serializing the struct directly, so a column absent from the caller's tier
// is absent from the response rather than null-filled.
func (p *Playdate) Record() map[string]any {
	rec := map[string]any{
		"id":               p.ID,
		"slug":             p.Slug,
		"pack_id":          p.PackID,
		"title":            p.Title,
		"headline":         p.Headline,
		"primary_function": p.PrimaryFunction,
		"arc_emphasis":     []string(p.ArcEmphasis),
		"friction_dial":    p.FrictionDial,
		"ready_in_120s":    p.ReadyIn120s,
		"material_tags":    []string(p.MaterialTags),
		"form_tags":        []string(p.FormTags),
		"slot_tags":        []string(p.SlotTags),
		"context_tags":     []string(p.ContextTags),
		"energy_tags":      []string(p.EnergyTags),

		"find":                p.Find,
		"fold":                p.Fold,
		"unfold":              p.Unfold,
		"substitutions_notes": p.SubstitutionsNotes,
		"find_again_mode":     p.FindAgainMode,
		"find_again_prompt":   p.FindAgainPrompt,

		"facilitation_notes": p.FacilitationNotes,
		"remix_ideas":        p.RemixIdeas,

		"published":        p.Published,
		"sampler_eligible": p.SamplerEligible,
		"source_system_id": p.SourceSystemID,
		"synced_at":        p.SyncedAt,
		"ip_tier":          p.IPTier,
	}
	return rec
}

func (m *Material) Record() map[string]any {
	return map[string]any{
		"id":            m.ID,
		"slug":          m.Slug,
		"name":          m.Name,
		"primary_form":  m.PrimaryForm,
		"function_tags": []string(m.FunctionTags),
		"context_tags":  []string(m.ContextTags),

		"connector_modes": []string(m.ConnectorModes),
		"shareability":    m.Shareability,
		"sourcing_notes":  m.SourcingNotes,

		"care_notes": m.CareNotes,

		"published":        m.Published,
		"source_system_id": m.SourceSystemID,
		"synced_at":        m.SyncedAt,
	}
}

// PickColumns copies only the named keys from rec, skipping names rec does not
// carry. IDs stay uuid.UUID; gin's JSON encoder renders them as strings.
func PickColumns(rec map[string]any, columns []string) map[string]any {
	out := make(map[string]any, len(columns))
	for _, c := range columns {
		if v, ok := rec[c]; ok {
			out[c] = v
		}
	}
	return out
}
