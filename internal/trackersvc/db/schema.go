package db

// Tracker identity is (game_id, tracker, type, player_seat) where a NULL
// seat only collides with another NULL seat. Plain UNIQUE treats NULLs as
// distinct, so the key is split into two partial indexes.
//
// Counts and seats are 64-bit on both backends. The ALTERs widen tables
// created before that and are no-ops otherwise.

const postgresSchema = `
CREATE TABLE IF NOT EXISTS opponents (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    user_id TEXT NOT NULL,
    UNIQUE (name, user_id)
);

CREATE TABLE IF NOT EXISTS managed_trackers (
    id BIGSERIAL PRIMARY KEY,
    tracker TEXT NOT NULL,
    type TEXT NOT NULL DEFAULT 'player',
    user_id TEXT NOT NULL,
    UNIQUE (tracker, user_id)
);

CREATE TABLE IF NOT EXISTS decks (
    id BIGSERIAL PRIMARY KEY,
    opponent_id BIGINT NOT NULL REFERENCES opponents(id),
    name TEXT NOT NULL,
    user_id TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decks_opponent ON decks(opponent_id, user_id);

CREATE TABLE IF NOT EXISTS games (
    id BIGSERIAL PRIMARY KEY,
    opponent_id BIGINT NOT NULL REFERENCES opponents(id),
    deck_id BIGINT NOT NULL REFERENCES decks(id),
    user_id TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_games_user ON games(user_id);

CREATE TABLE IF NOT EXISTS players (
    id BIGSERIAL PRIMARY KEY,
    game_id BIGINT NOT NULL REFERENCES games(id),
    seat BIGINT NOT NULL,
    opponent_id BIGINT NOT NULL REFERENCES opponents(id),
    deck_id BIGINT NOT NULL REFERENCES decks(id),
    UNIQUE (game_id, seat)
);

CREATE TABLE IF NOT EXISTS trackers (
    id BIGSERIAL PRIMARY KEY,
    game_id BIGINT NOT NULL REFERENCES games(id),
    tracker TEXT NOT NULL,
    count BIGINT NOT NULL DEFAULT 0,
    type TEXT NOT NULL DEFAULT 'player',
    player_seat BIGINT
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_trackers_seat
    ON trackers(game_id, tracker, type, player_seat) WHERE player_seat IS NOT NULL;
CREATE UNIQUE INDEX IF NOT EXISTS uq_trackers_noseat
    ON trackers(game_id, tracker, type) WHERE player_seat IS NULL;

ALTER TABLE players ALTER COLUMN seat TYPE BIGINT;
ALTER TABLE trackers ALTER COLUMN count TYPE BIGINT;
ALTER TABLE trackers ALTER COLUMN player_seat TYPE BIGINT;
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS opponents (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    user_id TEXT NOT NULL,
    UNIQUE (name, user_id)
);

CREATE TABLE IF NOT EXISTS managed_trackers (
    id INTEGER PRIMARY KEY,
    tracker TEXT NOT NULL,
    type TEXT NOT NULL DEFAULT 'player',
    user_id TEXT NOT NULL,
    UNIQUE (tracker, user_id)
);

CREATE TABLE IF NOT EXISTS decks (
    id INTEGER PRIMARY KEY,
    opponent_id INTEGER NOT NULL REFERENCES opponents(id),
    name TEXT NOT NULL,
    user_id TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_decks_opponent ON decks(opponent_id, user_id);

CREATE TABLE IF NOT EXISTS games (
    id INTEGER PRIMARY KEY,
    opponent_id INTEGER NOT NULL REFERENCES opponents(id),
    deck_id INTEGER NOT NULL REFERENCES decks(id),
    user_id TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_games_user ON games(user_id);

CREATE TABLE IF NOT EXISTS players (
    id INTEGER PRIMARY KEY,
    game_id INTEGER NOT NULL REFERENCES games(id),
    seat INTEGER NOT NULL,
    opponent_id INTEGER NOT NULL REFERENCES opponents(id),
    deck_id INTEGER NOT NULL REFERENCES decks(id),
    UNIQUE (game_id, seat)
);

CREATE TABLE IF NOT EXISTS trackers (
    id INTEGER PRIMARY KEY,
    game_id INTEGER NOT NULL REFERENCES games(id),
    tracker TEXT NOT NULL,
    count INTEGER NOT NULL DEFAULT 0,
    type TEXT NOT NULL DEFAULT 'player',
    player_seat INTEGER
);

CREATE UNIQUE INDEX IF NOT EXISTS uq_trackers_seat
    ON trackers(game_id, tracker, type, player_seat) WHERE player_seat IS NOT NULL;
CREATE UNIQUE INDEX IF NOT EXISTS uq_trackers_noseat
    ON trackers(game_id, tracker, type) WHERE player_seat IS NULL;
`
