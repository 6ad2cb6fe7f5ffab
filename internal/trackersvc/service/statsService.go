package service

import (
	"context"
	"sort"

	"github.com/avvvet/tracker-services/internal/trackersvc/models"
	"github.com/avvvet/tracker-services/internal/trackersvc/store"
)

const topTrackersLimit = 10

type StatsService struct {
	access   *Access
	trackers store.TrackerStore
	games    store.GameStore
}

func NewStatsService(access *Access, trackers store.TrackerStore, games store.GameStore) *StatsService {
	return &StatsService{access: access, trackers: trackers, games: games}
}

// OverallStats breaks down every tracker across all games owned by userID.
func (s *StatsService) OverallStats(ctx context.Context, userID string) (*models.OverallStats, error) {
	facts, err := s.trackers.ListTrackerFacts(ctx, userID)
	if err != nil {
		return nil, err
	}
	stats := AggregateOverall(facts)
	return &stats, nil
}

func (s *StatsService) GameStats(ctx context.Context, gameID int64, userID string) (*models.GameStats, error) {
	if _, err := s.access.AuthorizeGame(ctx, gameID, userID); err != nil {
		return nil, err
	}
	trackers, err := s.trackers.ListTrackers(ctx, gameID)
	if err != nil {
		return nil, err
	}
	stats := AggregateGame(trackers)
	return &stats, nil
}

// GamePlayers lists the seats of a game in seat order.
func (s *StatsService) GamePlayers(ctx context.Context, gameID int64, userID string) ([]models.SeatView, error) {
	if _, err := s.access.AuthorizeGame(ctx, gameID, userID); err != nil {
		return nil, err
	}
	return s.games.ListSeats(ctx, gameID)
}

type trackerGroup struct {
	tracker string
	kind    models.Kind
}

// AggregateOverall groups facts by (tracker, kind), ordered by tracker name
// then kind. Player facts without a resolved seat name are left out of
// per_player. For yesno, No is Instances - Yes and can be negative when a
// row was recorded more than once.
func AggregateOverall(facts []models.TrackerFact) models.OverallStats {
	groups := map[trackerGroup][]models.TrackerFact{}
	var order []trackerGroup
	for _, f := range facts {
		id := trackerGroup{tracker: f.Tracker, kind: f.Kind}
		if _, ok := groups[id]; !ok {
			order = append(order, id)
		}
		groups[id] = append(groups[id], f)
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i].tracker != order[j].tracker {
			return order[i].tracker < order[j].tracker
		}
		return order[i].kind < order[j].kind
	})

	out := models.OverallStats{Trackers: make([]models.TrackerBreakdown, 0, len(order))}
	for _, id := range order {
		rows := groups[id]
		b := models.TrackerBreakdown{Tracker: id.tracker, Kind: id.kind}
		switch id.kind {
		case models.KindPlayer:
			sums := map[string]int{}
			for _, f := range rows {
				if f.PlayerName == nil {
					continue
				}
				sums[*f.PlayerName] += f.Count
			}
			b.PerPlayer = playerTotals(sums)
		case models.KindYesNo:
			yn := models.YesNoTotals{Instances: len(rows)}
			for _, f := range rows {
				yn.Yes += f.Count
			}
			yn.No = yn.Instances - yn.Yes
			b.YesNo = &yn
		case models.KindNumber:
			occurrences := map[int]int{}
			for _, f := range rows {
				occurrences[f.Count]++
			}
			dist := make([]models.ValueCount, 0, len(occurrences))
			for v, n := range occurrences {
				dist = append(dist, models.ValueCount{Value: v, Occurrences: n})
			}
			sort.Slice(dist, func(i, j int) bool { return dist[i].Value < dist[j].Value })
			b.Distribution = dist
		}
		out.Trackers = append(out.Trackers, b)
	}
	return out
}

// AggregateGame rolls up the trackers of one game.
func AggregateGame(trackers []models.Tracker) models.GameStats {
	byKind := map[models.Kind]*models.KindTotal{}
	sums := map[string]int{}
	totals := map[trackerGroup]int{}
	var order []trackerGroup

	for _, t := range trackers {
		kt, ok := byKind[t.Kind]
		if !ok {
			kt = &models.KindTotal{Kind: t.Kind}
			byKind[t.Kind] = kt
		}
		kt.Trackers++
		kt.TotalHits += t.Count

		if t.Kind == models.KindPlayer && t.PlayerName != nil {
			sums[*t.PlayerName] += t.Count
		}

		id := trackerGroup{tracker: t.Tracker, kind: t.Kind}
		if _, ok := totals[id]; !ok {
			order = append(order, id)
		}
		totals[id] += t.Count
	}

	stats := models.GameStats{
		ByType:      make([]models.KindTotal, 0, len(byKind)),
		PerPlayer:   playerTotals(sums),
		TopTrackers: make([]models.TrackerTotal, 0, len(order)),
	}
	for _, kt := range byKind {
		stats.ByType = append(stats.ByType, *kt)
	}
	sort.Slice(stats.ByType, func(i, j int) bool { return stats.ByType[i].Kind < stats.ByType[j].Kind })

	sort.Slice(order, func(i, j int) bool {
		if order[i].tracker != order[j].tracker {
			return order[i].tracker < order[j].tracker
		}
		return order[i].kind < order[j].kind
	})
	for _, id := range order {
		stats.TopTrackers = append(stats.TopTrackers, models.TrackerTotal{Tracker: id.tracker, Kind: id.kind, TotalHits: totals[id]})
	}
	sort.SliceStable(stats.TopTrackers, func(i, j int) bool {
		return stats.TopTrackers[i].TotalHits > stats.TopTrackers[j].TotalHits
	})
	if len(stats.TopTrackers) > topTrackersLimit {
		stats.TopTrackers = stats.TopTrackers[:topTrackersLimit]
	}
	return stats
}

// playerTotals orders by total descending, then by name.
func playerTotals(sums map[string]int) []models.PlayerTotal {
	out := make([]models.PlayerTotal, 0, len(sums))
	for name, total := range sums {
		out = append(out, models.PlayerTotal{PlayerName: name, TotalHits: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalHits != out[j].TotalHits {
			return out[i].TotalHits > out[j].TotalHits
		}
		return out[i].PlayerName < out[j].PlayerName
	})
	return out
}
