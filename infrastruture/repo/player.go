package repo

import (
	"context"
	"errors"
	"fmt"

	dmn "github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var _ i.PlayerRepo = &PlayerRepo{}

// PlayerRepo handles the persistence of players.
type PlayerRepo struct {
	collection *mongo.Collection
}

// NewPlayerRepo creates a PlayerRepo on the given database and collection.
func NewPlayerRepo(client *mongo.Client, dbName, collectionName string) *PlayerRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &PlayerRepo{
		collection: collection,
	}
}

// EnsureIndexes makes handles unique.
func (p *PlayerRepo) EnsureIndexes(ctx context.Context) error {
	_, err := p.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "handle", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Save inserts a new player.
func (p *PlayerRepo) Save(ctx context.Context, player *dmn.Player) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := p.collection.InsertOne(ctx, player); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dmn.ErrHandleConflict
		}
		return fmt.Errorf("saving player: %w", err)
	}
	return nil
}

// ByID retrieves a player by their ID.
func (p *PlayerRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.Player, error) {
	return p.findOne(ctx, bson.M{"_id": id})
}

// ByHandle retrieves a player by their handle.
func (p *PlayerRepo) ByHandle(ctx context.Context, handle string) (*dmn.Player, error) {
	return p.findOne(ctx, bson.M{"handle": handle})
}

func (p *PlayerRepo) findOne(ctx context.Context, filter bson.M) (*dmn.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var player dmn.Player
	if err := p.collection.FindOne(ctx, filter).Decode(&player); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("finding player: %w", err)
	}
	return &player, nil
}
