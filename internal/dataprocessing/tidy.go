package dataprocessing

import (
	"log/slog"

	"mdscli/internal/reference"
	"mdscli/pkg/contracts/domain"
)

// TidyTransform pivots canonical wide rows into atomic tidy facts and
// derives the grade-band aggregates.
type TidyTransform struct {
	logger *slog.Logger
}

// NewTidyTransform creates a tidy transform.
func NewTidyTransform(logger *slog.Logger) *TidyTransform {
	if logger == nil {
		logger = slog.Default()
	}
	return &TidyTransform{logger: logger.With(slog.String("component", "tidy"))}
}

// Transform pivots each wide row into one record per known (grade,
// subgroup) value, then appends the derived band records. Bands are summed
// from the per-grade records already emitted, never recomputed from the
// wide row, so they stay consistent with whatever suppression happened
// upstream.
func (t *TidyTransform) Transform(rows []*domain.CanonicalRow) []domain.TidyRecord {
	var records []domain.TidyRecord
	for _, row := range rows {
		base := t.pivotRow(row)
		records = append(records, base...)
		records = append(records, t.deriveBands(row, base)...)
	}

	t.logger.Debug("tidy transform complete",
		slog.Int("wide_rows", len(rows)),
		slog.Int("tidy_records", len(records)))
	return records
}

// pivotRow emits the TOTAL-grade record for every known subgroup field and
// one total_enrollment record per known per-grade field.
func (t *TidyTransform) pivotRow(row *domain.CanonicalRow) []domain.TidyRecord {
	var records []domain.TidyRecord
	total := row.Count(domain.FieldRowTotal)

	for _, subgroup := range domain.Subgroups {
		count := row.Count(domain.SubgroupField(subgroup))
		if !count.Known {
			continue
		}
		records = append(records, domain.TidyRecord{
			EndYear:    row.EndYear,
			Level:      row.Level,
			DistrictID: row.DistrictID,
			SchoolID:   row.SchoolID,
			Grade:      domain.GradeTotal,
			Subgroup:   subgroup,
			Count:      count,
			Pct:        ratio(count, total),
		})
	}

	for _, grade := range domain.PerGradeLevels {
		count := row.Count(domain.GradeField(grade))
		if !count.Known {
			continue
		}
		records = append(records, domain.TidyRecord{
			EndYear:    row.EndYear,
			Level:      row.Level,
			DistrictID: row.DistrictID,
			SchoolID:   row.SchoolID,
			Grade:      grade,
			Subgroup:   domain.SubgroupTotal,
			Count:      count,
			Pct:        domain.Unknown(),
		})
	}
	return records
}

// deriveBands sums already-produced per-grade records into the K8, HS and
// K12 bands for each subgroup present.
func (t *TidyTransform) deriveBands(row *domain.CanonicalRow, base []domain.TidyRecord) []domain.TidyRecord {
	byGrade := make(map[domain.GradeLevel]map[domain.Subgroup]domain.Count)
	for _, rec := range base {
		if rec.Grade == domain.GradeTotal {
			continue
		}
		if byGrade[rec.Grade] == nil {
			byGrade[rec.Grade] = make(map[domain.Subgroup]domain.Count)
		}
		byGrade[rec.Grade][rec.Subgroup] = rec.Count
	}

	var records []domain.TidyRecord
	for _, band := range []domain.GradeLevel{domain.BandK8, domain.BandHS, domain.BandK12} {
		for _, subgroup := range domain.Subgroups {
			var counts []domain.Count
			for _, member := range reference.BandMembers[band] {
				if c, ok := byGrade[member][subgroup]; ok {
					counts = append(counts, c)
				}
			}
			sum := domain.SumCounts(counts)
			if !sum.Known {
				continue
			}
			records = append(records, domain.TidyRecord{
				EndYear:    row.EndYear,
				Level:      row.Level,
				DistrictID: row.DistrictID,
				SchoolID:   row.SchoolID,
				Grade:      band,
				Subgroup:   subgroup,
				Count:      sum,
				Pct:        domain.Unknown(),
			})
		}
	}
	return records
}

// ratio computes count/total as a recomputed ratio-of-sums, unknown when
// the denominator is unknown or zero.
func ratio(count, total domain.Count) domain.Count {
	if !count.Known || !total.Known || total.Value == 0 {
		return domain.Unknown()
	}
	return domain.CountOf(count.Value / total.Value)
}
