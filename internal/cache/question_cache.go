package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"boardquest/internal/model"
)

// QuestionCache keeps each room's drawn question set in Redis so repeated
// reads during a game never go back to the primary store.
type QuestionCache interface {
	SetPool(ctx context.Context, roomCode string, questions []*model.QuizQuestion) error
	GetPool(ctx context.Context, roomCode string) ([]*model.QuizQuestion, error)
	DeletePool(ctx context.Context, roomCode string) error
}

type questionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQuestionCache creates a new question cache.
func NewQuestionCache(client *redis.Client) QuestionCache {
	return &questionCache{
		client: client,
		ttl:    6 * time.Hour,
	}
}

func (c *questionCache) key(roomCode string) string {
	return fmt.Sprintf("room:%s:questions", roomCode)
}

func (c *questionCache) SetPool(ctx context.Context, roomCode string, questions []*model.QuizQuestion) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(roomCode), data, c.ttl).Err()
}

func (c *questionCache) GetPool(ctx context.Context, roomCode string) ([]*model.QuizQuestion, error) {
	data, err := c.client.Get(ctx, c.key(roomCode)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var questions []*model.QuizQuestion
	if err := json.Unmarshal([]byte(data), &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (c *questionCache) DeletePool(ctx context.Context, roomCode string) error {
	return c.client.Del(ctx, c.key(roomCode)).Err()
}
