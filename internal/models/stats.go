package models

import "sort"

// ModelStats aggregates timing over all current results of one model.
type ModelStats struct {
	Model       string
	Count       int
	TotalTime   float64
	AverageTime float64
	MinTime     float64
	MaxTime     float64
}

// ComputeModelStats aggregates current-result timings per model across all
// records. Results are sorted by model name for stable output.
func ComputeModelStats(records []*PostRecord) []ModelStats {
	byModel := make(map[string]*ModelStats)
	for _, rec := range records {
		for model, h := range rec.Results {
			if h.Current == nil || h.Current.Data == nil {
				continue
			}
			s, ok := byModel[model]
			if !ok {
				s = &ModelStats{Model: model, MinTime: h.Current.ProcessingTime, MaxTime: h.Current.ProcessingTime}
				byModel[model] = s
			}
			t := h.Current.ProcessingTime
			s.Count++
			s.TotalTime += t
			if t < s.MinTime {
				s.MinTime = t
			}
			if t > s.MaxTime {
				s.MaxTime = t
			}
		}
	}
	out := make([]ModelStats, 0, len(byModel))
	for _, s := range byModel {
		if s.Count > 0 {
			s.AverageTime = s.TotalTime / float64(s.Count)
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Model < out[j].Model })
	return out
}
