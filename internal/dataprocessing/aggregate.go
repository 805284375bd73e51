package dataprocessing

import (
	"log/slog"

	"mdscli/pkg/contracts/domain"
)

// Aggregator synthesizes missing aggregate rows and merges partial row
// sets from layered sources.
type Aggregator struct {
	logger *slog.Logger
}

// NewAggregator creates an aggregator.
func NewAggregator(logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{logger: logger.With(slog.String("component", "aggregator"))}
}

// SynthesizeState ensures a fetch result carries a State row. When none is
// present, one is computed by summing every canonical count field across
// the District rows, or across School rows if no districts exist.
// Percentage-type fields never appear in the canonical count set, so plain
// summation is safe; ratios are recomputed downstream from summed counts.
func (a *Aggregator) SynthesizeState(rows []*domain.CanonicalRow, endYear int) []*domain.CanonicalRow {
	var districts, schools []*domain.CanonicalRow
	for _, row := range rows {
		switch row.Level {
		case domain.LevelState:
			return rows
		case domain.LevelDistrict:
			districts = append(districts, row)
		case domain.LevelSchool:
			schools = append(schools, row)
		}
	}

	source := districts
	if len(source) == 0 {
		source = schools
	}
	if len(source) == 0 {
		return rows
	}

	state := domain.NewCanonicalRow(endYear, domain.LevelState)
	for _, field := range domain.CanonicalCountFields {
		counts := make([]domain.Count, 0, len(source))
		for _, row := range source {
			counts = append(counts, row.Count(field))
		}
		state.SetCount(field, domain.SumCounts(counts))
	}

	a.logger.Info("synthesized state row",
		slog.Int("end_year", endYear),
		slog.Int("source_rows", len(source)))
	return append(rows, state)
}

// Merge combines two row sets describing the same entities with partial
// field coverage. Entities match on (aggregation_level, district_id); State
// rows match on level alone. Primary fields win on conflict; a secondary
// value is used only where the primary field is still unknown. Entities
// present only in the secondary set are carried through unchanged.
func (a *Aggregator) Merge(primary, secondary []*domain.CanonicalRow) []*domain.CanonicalRow {
	merged := make([]*domain.CanonicalRow, 0, len(primary))
	seen := make(map[string]*domain.CanonicalRow, len(primary))

	for _, row := range primary {
		clone := row.Clone()
		merged = append(merged, clone)
		seen[clone.EntityKey()] = clone
	}

	filled := 0
	for _, row := range secondary {
		target, ok := seen[row.EntityKey()]
		if !ok {
			merged = append(merged, row.Clone())
			continue
		}
		for _, field := range domain.CanonicalCountFields {
			if target.Count(field).Known {
				continue
			}
			if c := row.Count(field); c.Known {
				target.SetCount(field, c)
				filled++
			}
		}
		if target.DistrictName == "" {
			target.DistrictName = row.DistrictName
		}
		if target.SchoolName == "" {
			target.SchoolName = row.SchoolName
		}
	}

	if filled > 0 {
		a.logger.Debug("filled fields from secondary source",
			slog.Int("fields", filled))
	}
	return merged
}
