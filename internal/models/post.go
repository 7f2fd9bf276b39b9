package models

import (
	"sync/atomic"
	"time"

	json "github.com/goccy/go-json"
)

// TimestampLayout is the on-disk result timestamp format.
const TimestampLayout = "2006-01-02_15-04-05"

var snapshotSeq atomic.Int64

// ResultSnapshot is one versioned extraction result for a (post, model) pair.
// Seq breaks ties between snapshots stamped within the same second.
type ResultSnapshot struct {
	Data           *Recipe `json:"data"`
	ProcessingTime float64 `json:"processing_time"`
	Timestamp      string  `json:"timestamp,omitempty"`
	Seq            int64   `json:"seq,omitempty"`
}

func NewResultSnapshot(data *Recipe, processingTime float64, now time.Time) *ResultSnapshot {
	return &ResultSnapshot{
		Data:           data,
		ProcessingTime: processingTime,
		Timestamp:      now.Format(TimestampLayout),
		Seq:            snapshotSeq.Add(1),
	}
}

// ModelResultHistory holds the active result and the append-only history
// for one model on one post. History is ordered newest first.
type ModelResultHistory struct {
	Current *ResultSnapshot   `json:"current"`
	History []*ResultSnapshot `json:"history,omitempty"`
}

// UnmarshalJSON accepts both the versioned shape {current, history} and the
// legacy un-versioned shape {data, processing_time}. Legacy entries are
// upgraded in place with an empty history.
func (h *ModelResultHistory) UnmarshalJSON(b []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(b, &probe); err != nil {
		return err
	}
	if _, ok := probe["current"]; ok {
		type alias ModelResultHistory
		var a alias
		if err := json.Unmarshal(b, &a); err != nil {
			return err
		}
		*h = ModelResultHistory(a)
		return nil
	}
	var snap ResultSnapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return err
	}
	h.Current = &snap
	h.History = nil
	return nil
}

// Promote pushes the current snapshot to the front of the history and
// installs the replacement. A current snapshot without a timestamp gets one
// synthesized an hour before the replacement, so ordering stays sensible
// for records written before timestamps existed.
func (h *ModelResultHistory) Promote(next *ResultSnapshot, now time.Time) {
	if h.Current != nil {
		if h.Current.Timestamp == "" {
			h.Current.Timestamp = now.Add(-time.Hour).Format(TimestampLayout)
		}
		h.History = append([]*ResultSnapshot{h.Current}, h.History...)
	}
	h.Current = next
}

// PostRecord is the unit of progress for one saved post.
type PostRecord struct {
	URL            string                         `json:"url"`
	Username       string                         `json:"username,omitempty"`
	AddedTime      int64                          `json:"added_time,omitempty"`
	Caption        string                         `json:"caption,omitempty"`
	CleanedCaption string                         `json:"cleaned_caption,omitempty"`
	ThumbnailURL   string                         `json:"thumbnail_url,omitempty"`
	Results        map[string]*ModelResultHistory `json:"recipes,omitempty"`
}

// Result returns the history bucket for a model, creating it when absent.
func (p *PostRecord) Result(model string) *ModelResultHistory {
	if p.Results == nil {
		p.Results = make(map[string]*ModelResultHistory)
	}
	h, ok := p.Results[model]
	if !ok {
		h = &ModelResultHistory{}
		p.Results[model] = h
	}
	return h
}

// HasResult reports whether the model already produced an accepted result.
func (p *PostRecord) HasResult(model string) bool {
	h, ok := p.Results[model]
	return ok && h.Current != nil && h.Current.Data != nil
}

// Processed reports whether any model produced an accepted result.
func (p *PostRecord) Processed() bool {
	for _, h := range p.Results {
		if h.Current != nil && h.Current.Data != nil {
			return true
		}
	}
	return false
}
