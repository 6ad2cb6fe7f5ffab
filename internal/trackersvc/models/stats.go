package models

import "encoding/json"

// OverallStats is the per-tracker breakdown across all of a user's games.
type OverallStats struct {
	Trackers []TrackerBreakdown `json:"trackers"`
}

// TrackerBreakdown holds exactly one of PerPlayer, YesNo or Distribution
// depending on Kind.
type TrackerBreakdown struct {
	Tracker      string        `json:"tracker"`
	Kind         Kind          `json:"type"`
	PerPlayer    []PlayerTotal `json:"per_player,omitempty"`
	YesNo        *YesNoTotals  `json:"yesno,omitempty"`
	Distribution []ValueCount  `json:"distribution,omitempty"`
}

// MarshalJSON always emits the section that belongs to Kind, as an empty
// list when there is nothing in it.
func (b TrackerBreakdown) MarshalJSON() ([]byte, error) {
	out := map[string]any{
		"tracker": b.Tracker,
		"type":    b.Kind,
	}
	switch b.Kind {
	case KindPlayer:
		if b.PerPlayer == nil {
			out["per_player"] = []PlayerTotal{}
		} else {
			out["per_player"] = b.PerPlayer
		}
	case KindYesNo:
		if b.YesNo == nil {
			out["yesno"] = YesNoTotals{}
		} else {
			out["yesno"] = b.YesNo
		}
	case KindNumber:
		if b.Distribution == nil {
			out["distribution"] = []ValueCount{}
		} else {
			out["distribution"] = b.Distribution
		}
	}
	return json.Marshal(out)
}

type PlayerTotal struct {
	PlayerName string `json:"player_name"`
	TotalHits  int    `json:"total_hits"`
}

// YesNoTotals: No is Instances - Yes, which assumes one row per occurrence.
type YesNoTotals struct {
	Yes       int `json:"yes"`
	No        int `json:"no"`
	Instances int `json:"instances"`
}

type ValueCount struct {
	Value       int `json:"value"`
	Occurrences int `json:"occurrences"`
}

type GameStats struct {
	ByType      []KindTotal    `json:"by_type"`
	PerPlayer   []PlayerTotal  `json:"per_player"`
	TopTrackers []TrackerTotal `json:"top_trackers"`
}

type KindTotal struct {
	Kind      Kind `json:"type"`
	Trackers  int  `json:"trackers"`
	TotalHits int  `json:"total_hits"`
}

type TrackerTotal struct {
	Tracker   string `json:"tracker"`
	Kind      Kind   `json:"type"`
	TotalHits int    `json:"total_hits"`
}
