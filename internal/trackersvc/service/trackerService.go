package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/avvvet/tracker-services/internal/comm"
	"github.com/avvvet/tracker-services/internal/trackersvc/models"
	"github.com/avvvet/tracker-services/internal/trackersvc/store"
	log "github.com/sirupsen/logrus"
)

// EventPublisher receives an event after each committed tracker mutation.
type EventPublisher interface {
	PublishTrackerEvent(ctx context.Context, event comm.TrackerEvent) error
}

type TrackerService struct {
	access   *Access
	trackers store.TrackerStore
	events   EventPublisher
}

func NewTrackerService(access *Access, trackers store.TrackerStore, events EventPublisher) *TrackerService {
	return &TrackerService{access: access, trackers: trackers, events: events}
}

// Record creates the tracker identified by the request if needed and applies
// the request's value to it, then returns every tracker of the game.
func (s *TrackerService) Record(ctx context.Context, gameID int64, userID string, req models.RecordTrackerRequest) ([]models.Tracker, error) {
	if _, err := s.access.AuthorizeGame(ctx, gameID, userID); err != nil {
		return nil, err
	}

	key, value, err := recordKey(gameID, req)
	if err != nil {
		return nil, err
	}

	if err := s.trackers.UpsertAndApply(ctx, key, value); err != nil {
		return nil, fmt.Errorf("record tracker: %w", err)
	}

	log.WithFields(log.Fields{
		"game_id": gameID,
		"tracker": key.Tracker,
		"type":    key.Kind,
		"value":   value,
	}).Info("tracker recorded")

	trackers, err := s.trackers.ListTrackers(ctx, gameID)
	if err != nil {
		return nil, err
	}

	event := comm.NewTrackerEvent(comm.EventTrackerRecorded, userID, gameID)
	event.Tracker = key.Tracker
	event.Kind = string(key.Kind)
	event.PlayerSeat = key.PlayerSeat
	for _, t := range trackers {
		if t.Key().Matches(key) {
			event.TrackerID = t.ID
			count := t.Count
			event.Count = &count
			break
		}
	}
	s.publish(ctx, event)

	return trackers, nil
}

// recordKey normalizes a record request into the row identity and the value
// to apply.
func recordKey(gameID int64, req models.RecordTrackerRequest) (models.TrackerKey, int, error) {
	kind, _ := req.Type.(string)
	key := models.TrackerKey{
		GameID: gameID,
		Kind:   models.ParseKind(kind),
	}

	if key.Kind == models.KindPlayer {
		seat, err := models.ParseInt(req.PlayerSeat)
		if err != nil {
			return key, 0, invalid("player_seat required for player tracker")
		}
		key.PlayerSeat = &seat
	}

	key.Tracker = strings.TrimSpace(req.Tracker)
	if key.Tracker == "" {
		return key, 0, invalid("tracker required")
	}

	value := 1
	if key.Kind == models.KindNumber {
		v, err := models.ParseInt(req.Value)
		if err != nil {
			return key, 0, invalid("numeric value required for number tracker")
		}
		value = v
	}
	return key, value, nil
}

// Apply mutates an existing tracker by id. An id that matches no tracker of
// the game changes nothing.
func (s *TrackerService) Apply(ctx context.Context, gameID int64, userID string, req models.ApplyTrackerRequest) ([]models.Tracker, error) {
	if _, err := s.access.AuthorizeGame(ctx, gameID, userID); err != nil {
		return nil, err
	}

	trackerID, err := models.ParseID(req.ID)
	if err != nil {
		return nil, invalid("id required")
	}

	name, _ := req.Action.(string)
	action := models.ParseAction(name)
	value := 0
	if action == models.ActionSetValue {
		v, err := models.ParseInt(req.Value)
		if err != nil {
			return nil, invalid("numeric value required")
		}
		value = v
	}

	if err := s.trackers.ApplyByID(ctx, gameID, trackerID, action, value); err != nil {
		return nil, err
	}

	trackers, err := s.trackers.ListTrackers(ctx, gameID)
	if err != nil {
		return nil, err
	}

	event := comm.NewTrackerEvent(comm.EventTrackerApplied, userID, gameID)
	event.TrackerID = trackerID
	event.Action = string(action)
	for _, t := range trackers {
		if t.ID == trackerID {
			event.Tracker = t.Tracker
			event.Kind = string(t.Kind)
			event.PlayerSeat = t.PlayerSeat
			count := t.Count
			event.Count = &count
			break
		}
	}
	if event.Count == nil {
		log.WithFields(log.Fields{"game_id": gameID, "tracker_id": trackerID}).Debug("apply matched no tracker")
	} else {
		s.publish(ctx, event)
	}

	return trackers, nil
}

// Delete removes a tracker by id. Deleting a missing id is not an error.
func (s *TrackerService) Delete(ctx context.Context, gameID int64, userID string, req models.DeleteTrackerRequest) ([]models.Tracker, error) {
	if _, err := s.access.AuthorizeGame(ctx, gameID, userID); err != nil {
		return nil, err
	}

	trackerID, err := models.ParseID(req.ID)
	if err != nil {
		return nil, invalid("id required")
	}

	if err := s.trackers.DeleteTracker(ctx, gameID, trackerID); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"game_id": gameID, "tracker_id": trackerID}).Info("tracker deleted")

	event := comm.NewTrackerEvent(comm.EventTrackerDeleted, userID, gameID)
	event.TrackerID = trackerID
	s.publish(ctx, event)

	return s.trackers.ListTrackers(ctx, gameID)
}

func (s *TrackerService) List(ctx context.Context, gameID int64, userID string) ([]models.Tracker, error) {
	if _, err := s.access.AuthorizeGame(ctx, gameID, userID); err != nil {
		return nil, err
	}
	return s.trackers.ListTrackers(ctx, gameID)
}

// publish is best effort: the mutation is already committed.
func (s *TrackerService) publish(ctx context.Context, event comm.TrackerEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishTrackerEvent(ctx, event); err != nil {
		log.Warnf("publish %s for game %d: %s", event.Type, event.GameID, err)
	}
}
