package plan

import "sort"

// Normalize derives the canonical view of a stored document of unknown
// vintage. It is pure and total: any parseable document yields a canonical
// plan, and whatever cannot be derived is left empty. The returned bool
// reports whether persisted fields changed relative to the stored document,
// so the caller can decide to rewrite the row.
//
// Derivation order:
//  1. fill canonical scalars from their legacy mirrors
//  2. derive months from planStructure, else from the flat topics list
//  3. derive completedMonths from completed planStructure entries
//  4. sort and dedupe completedMonths
//  5. recompute progressPercent
func Normalize(doc StoredDocument) (Plan, bool) {
	mutated := false

	p := Plan{
		Skill:            doc.Skill,
		Duration:         doc.Duration,
		DailyTime:        doc.DailyTime,
		Months:           doc.Months,
		CompletedMonths:  doc.CompletedMonths,
		ProgressPercent:  doc.ProgressPercent,
		Notes:            doc.Notes,
		Resources:        doc.Resources,
		Schedule:         doc.Schedule,
		ResourceTypes:    doc.ResourceTypes,
		ResourcesByType:  doc.ResourcesByType,
		CodingDifficulty: doc.CodingDifficulty,
		PDFFiles:         doc.PDFFiles,
	}

	if p.Skill == "" && doc.Goal != "" {
		p.Skill = doc.Goal
		mutated = true
	}
	if p.Duration == "" && doc.TimeToComplete != "" {
		p.Duration = doc.TimeToComplete
		mutated = true
	}
	if p.DailyTime == "" && doc.DailyStudyTime != "" {
		p.DailyTime = doc.DailyStudyTime
		mutated = true
	}

	if len(p.Months) == 0 && len(doc.PlanStructure) > 0 {
		p.Months = make([]Month, len(doc.PlanStructure))
		for i, e := range doc.PlanStructure {
			num := e.Month
			if num <= 0 {
				num = i + 1
			}
			topics := e.Topics
			if topics == nil {
				topics = []string{}
			}
			p.Months[i] = Month{Month: num, Topics: topics}
		}
		mutated = true
	} else if len(p.Months) == 0 && len(doc.Topics) > 0 {
		p.Months = []Month{{Month: 1, Topics: doc.Topics}}
		mutated = true
	}

	if len(p.CompletedMonths) == 0 && len(doc.PlanStructure) > 0 {
		for i, e := range doc.PlanStructure {
			if !e.Completed {
				continue
			}
			num := e.Month
			if num <= 0 {
				num = i + 1
			}
			p.CompletedMonths = append(p.CompletedMonths, num)
		}
		if len(p.CompletedMonths) > 0 {
			mutated = true
		}
	}

	if cleaned, changed := sortedSet(p.CompletedMonths); changed {
		p.CompletedMonths = cleaned
		mutated = true
	}

	pct := progressPercent(len(p.Months), len(p.CompletedMonths))
	if pct != p.ProgressPercent {
		p.ProgressPercent = pct
		mutated = true
	}

	return p, mutated
}

// sortedSet returns vals sorted ascending with duplicates removed, and
// whether anything had to change. The input slice is not modified.
func sortedSet(vals []int) ([]int, bool) {
	sorted := true
	for i := 1; i < len(vals); i++ {
		if vals[i] <= vals[i-1] {
			sorted = false
			break
		}
	}
	if sorted {
		return vals, false
	}

	out := make([]int, len(vals))
	copy(out, vals)
	sort.Ints(out)
	dedup := out[:0]
	for i, v := range out {
		if i == 0 || v != dedup[len(dedup)-1] {
			dedup = append(dedup, v)
		}
	}
	return dedup, true
}
