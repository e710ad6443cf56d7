package project

import "projectview/internal/domain"

// Merge combines the latest projects and statistics snapshots into one page.
// It is pure: inputs are never modified and each call builds new records.
func Merge(basic, stats *Snapshot, mode SortMode) ResultPage {
	if basic == nil {
		return ResultPage{Content: []domain.Record{}}
	}

	projectsByID := index(basic, fieldID)

	if mode == SortModeMetrics && stats != nil {
		content := make([]domain.Record, 0, len(stats.Content))
		for _, st := range stats.Content {
			rec := st.Clone()
			pid := st.String(fieldProjectID)
			if p, ok := projectsByID[pid]; ok {
				overlay(rec, p)
			} else if rec.String(fieldName) == "" {
				rec[fieldName] = pid
			}
			content = append(content, rec)
		}
		return ResultPage{
			Content: content,
			Total:   stats.Total,
			Page:    stats.Page,
			Size:    stats.Size,
		}
	}

	statsByProject := index(stats, fieldProjectID)

	content := make([]domain.Record, 0, len(basic.Content))
	for _, p := range basic.Content {
		rec := p.Clone()
		if st, ok := statsByProject[p.String(fieldID)]; ok {
			overlay(rec, st)
		}
		content = append(content, rec)
	}

	return ResultPage{
		Content: content,
		Total:   basic.Total,
		Page:    basic.Page,
		Size:    basic.Size,
	}
}

// index maps key -> record; later records win on duplicate keys.
func index(s *Snapshot, key string) map[string]domain.Record {
	if s == nil {
		return nil
	}
	m := make(map[string]domain.Record, len(s.Content))
	for _, r := range s.Content {
		m[r.String(key)] = r
	}
	return m
}

func overlay(dst, src domain.Record) {
	for k, v := range src {
		dst[k] = v
	}
}
