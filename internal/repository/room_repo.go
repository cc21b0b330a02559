package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"boardquest/internal/game"
	"boardquest/internal/model"
)

// RoomRepo persists room documents. Mutate is the serialization point for
// every rule mutation: it re-reads the document, applies the change and
// commits with a conditional replace, so two clients acting in the same
// instant can never lose an update.
type RoomRepo interface {
	Create(ctx context.Context, room *model.Room) error
	GetByCode(ctx context.Context, code string) (*model.Room, error)
	Mutate(ctx context.Context, code string, fn func(*model.Room) error) (*model.Room, error)
	Delete(ctx context.Context, code string) error
}

const mutateAttempts = 8

type roomRepo struct {
	collection *mongo.Collection
}

func NewRoomRepo(db *mongo.Database) RoomRepo {
	return &roomRepo{
		collection: db.Collection("rooms"),
	}
}

func (r *roomRepo) Create(ctx context.Context, room *model.Room) error {
	_, err := r.collection.InsertOne(ctx, room)
	return err
}

func (r *roomRepo) GetByCode(ctx context.Context, code string) (*model.Room, error) {
	var room model.Room
	err := r.collection.FindOne(ctx, bson.M{"code": code}).Decode(&room)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

// Mutate runs fn against the latest room state and commits it with a
// compare-and-swap on the version field, retrying on contention. Expected
// rule violations returned by fn abort without a write and pass through
// unwrapped so callers can match them.
func (r *roomRepo) Mutate(ctx context.Context, code string, fn func(*model.Room) error) (*model.Room, error) {
	for attempt := 0; attempt < mutateAttempts; attempt++ {
		room, err := r.GetByCode(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("read room %s: %w", code, err)
		}
		if room == nil {
			return nil, game.ErrRoomNotFound
		}

		prev := room.Version
		if err := fn(room); err != nil {
			return nil, err
		}
		room.Version = prev + 1

		res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": room.ID, "version": prev}, room)
		if err != nil {
			return nil, fmt.Errorf("commit room %s: %w", code, err)
		}
		if res.MatchedCount == 1 {
			return room, nil
		}
		// Lost the race; reload and retry.
	}
	return nil, fmt.Errorf("room %s: too much write contention", code)
}

func (r *roomRepo) Delete(ctx context.Context, code string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"code": code})
	return err
}
