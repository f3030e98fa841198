package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"dropfour/internal/bootstrap"
	"dropfour/internal/domain/game"
	errs "dropfour/internal/errors"
)

const (
	sessionKeyPrefix    = "dropfour:session:"
	archiveCollection   = "games"
	defaultStoreTimeout = 5 * time.Second
)

// GameRepository keeps live sessions in redis (one JSON snapshot per game
// key, rewritten after every accepted mutation) and finished games in mongo.
type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

func (g *GameRepository) SaveSession(ctx context.Context, session *game.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session %s: %w", session.GameKey, err)
	}
	if err := g.redis.Set(ctx, sessionKeyPrefix+session.GameKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to save session %s: %w", session.GameKey, err)
	}
	return nil
}

func (g *GameRepository) LoadSession(ctx context.Context, gameKey string) (*game.Session, error) {
	raw, err := g.redis.Get(ctx, sessionKeyPrefix+gameKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, errs.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", gameKey, err)
	}

	var session game.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", gameKey, err)
	}
	return &session, nil
}

func (g *GameRepository) DeleteSession(ctx context.Context, gameKey string) error {
	return g.redis.Del(ctx, sessionKeyPrefix+gameKey).Err()
}

func (g *GameRepository) ArchiveGame(ctx context.Context, record game.ArchivedGame) error {
	ctx, cancel := context.WithTimeout(ctx, defaultStoreTimeout)
	defer cancel()

	collection := g.mongo.Collection(archiveCollection)

	if _, err := collection.InsertOne(ctx, record); err != nil {
		g.log.Errorf("failed to archive game %s: %v", record.GameKey, err)
		return fmt.Errorf("failed to archive game %s: %w", record.GameKey, err)
	}

	g.log.Infof("game %s archived, winner: %s", record.GameKey, record.Winner)
	return nil
}

func (g *GameRepository) GetArchivedGames(ctx context.Context, limit int64) ([]game.ArchivedGame, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultStoreTimeout)
	defer cancel()

	collection := g.mongo.Collection(archiveCollection)
	opts := options.Find().
		SetSort(bson.M{"finished_at": -1}).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		g.log.Error(err)
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []game.ArchivedGame
	for cursor.Next(ctx) {
		var record game.ArchivedGame
		if err := cursor.Decode(&record); err != nil {
			g.log.Error(err)
			return nil, err
		}
		result = append(result, record)
	}

	return result, cursor.Err()
}

func (g *GameRepository) GetArchivedGameByKey(ctx context.Context, gameKey string) (*game.ArchivedGame, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultStoreTimeout)
	defer cancel()

	collection := g.mongo.Collection(archiveCollection)
	filter := bson.M{"game_key": gameKey}

	var record game.ArchivedGame
	err := collection.FindOne(ctx, filter).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.ErrGameNotFound
	}
	if err != nil {
		g.log.Error(err)
		return nil, err
	}

	return &record, nil
}
