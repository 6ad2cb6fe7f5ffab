package service

import (
	"context"
	"errors"
	"strings"

	"github.com/avvvet/tracker-services/internal/trackersvc/models"
	"github.com/avvvet/tracker-services/internal/trackersvc/store"
	log "github.com/sirupsen/logrus"
)

// ErrTrackerNameTaken is returned when a managed tracker is renamed onto a
// name the user already has.
var ErrTrackerNameTaken = errors.New("tracker name already exists")

type CatalogService struct {
	opponents store.OpponentStore
	decks     store.DeckStore
	managed   store.ManagedTrackerStore
}

func NewCatalogService(opponents store.OpponentStore, decks store.DeckStore, managed store.ManagedTrackerStore) *CatalogService {
	return &CatalogService{opponents: opponents, decks: decks, managed: managed}
}

func (s *CatalogService) ListOpponents(ctx context.Context, userID string) ([]models.Opponent, error) {
	return s.opponents.ListOpponents(ctx, userID)
}

// CreateOpponent adds an opponent and returns the user's opponents. A name
// the user already has is left as is.
func (s *CatalogService) CreateOpponent(ctx context.Context, userID string, req models.OpponentRequest) ([]models.Opponent, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("Name required")
	}
	if _, err := s.opponents.CreateOpponent(ctx, userID, name); err != nil {
		if !errors.Is(err, store.ErrConflict) {
			return nil, err
		}
		log.Debugf("opponent %q already exists", name)
	}
	return s.opponents.ListOpponents(ctx, userID)
}

// ownsOpponent reports whether userID owns opponentID. Unknown opponents are
// not owned.
func (s *CatalogService) ownsOpponent(ctx context.Context, userID string, opponentID int64) (bool, error) {
	owner, err := s.opponents.GetOpponentOwner(ctx, opponentID)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return owner == userID, nil
}

// ListDecks returns an empty list for opponents the user does not own.
func (s *CatalogService) ListDecks(ctx context.Context, userID string, opponentID int64) ([]models.Deck, error) {
	ok, err := s.ownsOpponent(ctx, userID, opponentID)
	if err != nil || !ok {
		return []models.Deck{}, err
	}
	return s.decks.ListDecks(ctx, userID, opponentID)
}

func (s *CatalogService) CreateDeck(ctx context.Context, userID string, opponentID int64, req models.DeckRequest) ([]models.Deck, error) {
	ok, err := s.ownsOpponent(ctx, userID, opponentID)
	if err != nil || !ok {
		return []models.Deck{}, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, invalid("Name required")
	}
	if _, err := s.decks.CreateDeck(ctx, userID, opponentID, name); err != nil {
		return nil, err
	}
	return s.decks.ListDecks(ctx, userID, opponentID)
}

func (s *CatalogService) ListManagedTrackers(ctx context.Context, userID string) ([]models.ManagedTracker, error) {
	return s.managed.ListManagedTrackers(ctx, userID)
}

// CreateManagedTracker adds a template; an existing name is left as is.
func (s *CatalogService) CreateManagedTracker(ctx context.Context, userID string, req models.ManagedTrackerRequest) ([]models.ManagedTracker, error) {
	var name string
	if req.Tracker != nil {
		name = strings.TrimSpace(*req.Tracker)
	}
	if name == "" {
		return nil, invalid("tracker required")
	}
	kind := models.KindPlayer
	if req.Type != nil {
		kind = models.ParseKind(*req.Type)
	}

	if _, err := s.managed.CreateManagedTracker(ctx, userID, name, kind); err != nil {
		if !errors.Is(err, store.ErrConflict) {
			return nil, err
		}
		log.Debugf("managed tracker %q already exists", name)
	}
	return s.managed.ListManagedTrackers(ctx, userID)
}

// UpdateManagedTracker renames and/or retypes a template. Blank names and
// unknown kinds are ignored.
func (s *CatalogService) UpdateManagedTracker(ctx context.Context, userID string, id int64, req models.ManagedTrackerRequest) error {
	if _, err := s.managed.GetManagedTracker(ctx, userID, id); err != nil {
		return err
	}

	var name *string
	if req.Tracker != nil {
		if n := strings.TrimSpace(*req.Tracker); n != "" {
			name = &n
		}
	}
	var kind *models.Kind
	if req.Type != nil && models.ValidKind(*req.Type) {
		k := models.Kind(*req.Type)
		kind = &k
	}
	if name == nil && kind == nil {
		return nil
	}

	err := s.managed.UpdateManagedTracker(ctx, userID, id, name, kind)
	if errors.Is(err, store.ErrConflict) {
		return ErrTrackerNameTaken
	}
	return err
}

// DeleteManagedTracker is a no-op when the template is absent or not owned.
func (s *CatalogService) DeleteManagedTracker(ctx context.Context, userID string, id int64) error {
	err := s.managed.DeleteManagedTracker(ctx, userID, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}
