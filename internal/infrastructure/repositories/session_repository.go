package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/indraprashad/Adhikari-tech-solution/domain"
	"github.com/redis/go-redis/v9"
)

// SessionRepositoryImpl implements domain.SessionRepository using Redis.
// One key per client holds its session; a set per user indexes the clients.
type SessionRepositoryImpl struct {
	client     *redis.Client
	prefix     string
	userPrefix string
	ttl        time.Duration
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(client *redis.Client, ttl time.Duration) domain.SessionRepository {
	return &SessionRepositoryImpl{
		client:     client,
		prefix:     "session:",
		userPrefix: "user_clients:",
		ttl:        ttl,
	}
}

// Save implements domain.SessionRepository
func (r *SessionRepositoryImpl) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	userKey := r.userPrefix + session.UserID
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, r.prefix+session.ClientID, data, r.ttl)
		pipe.SAdd(ctx, userKey, session.ClientID)
		pipe.Expire(ctx, userKey, r.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// FindByClient implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindByClient(ctx context.Context, clientID string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, r.prefix+clientID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete implements domain.SessionRepository; deleting a missing session is not an error
func (r *SessionRepositoryImpl) Delete(ctx context.Context, clientID string) error {
	session, err := r.FindByClient(ctx, clientID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.prefix+clientID)
		pipe.SRem(ctx, r.userPrefix+session.UserID, clientID)
		return nil
	})
	return err
}

// ClientsOfUser implements domain.SessionRepository. Clients whose session has
// expired are pruned from the index on the way.
func (r *SessionRepositoryImpl) ClientsOfUser(ctx context.Context, userID string) ([]string, error) {
	userKey := r.userPrefix + userID
	members, err := r.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return nil, err
	}

	live := make([]string, 0, len(members))
	for _, clientID := range members {
		n, err := r.client.Exists(ctx, r.prefix+clientID).Result()
		if err != nil {
			return nil, err
		}
		if n == 0 {
			r.client.SRem(ctx, userKey, clientID)
			continue
		}
		live = append(live, clientID)
	}
	return live, nil
}
