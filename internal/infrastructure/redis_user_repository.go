package infrastructure

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-redis/redis/v8"

	"blueskyvhs/internal/domain/entities"
)

// Key layout in Redis. next_user_id is the sole source of new ids;
// users and auths are the email->id and token->id lookup hashes.
const (
	nextUserIDKey = "next_user_id"
	usersKey      = "users"
	authsKey      = "auths"
	userKeyPrefix = "user:"
)

type RedisUserRepository struct {
	client *redis.Client
}

func NewRedisUserRepository(client *redis.Client) *RedisUserRepository {
	return &RedisUserRepository{client: client}
}

func userKey(id int64) string {
	return userKeyPrefix + strconv.FormatInt(id, 10)
}

func (r *RedisUserRepository) FindIDByEmail(ctx context.Context, email string) (int64, bool, error) {
	val, err := r.client.HGet(ctx, usersKey, email).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("reading email index: %w", err)
	}

	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt email index entry %q: %w", val, err)
	}
	return id, true, nil
}

// Create allocates the id with INCR, then writes the user record and the
// email index entry inside one MULTI/EXEC so a crash cannot leave the
// index pointing at a missing record.
func (r *RedisUserRepository) Create(ctx context.Context, email, passwordHash string) (int64, error) {
	id, err := r.client.Incr(ctx, nextUserIDKey).Result()
	if err != nil {
		return 0, fmt.Errorf("allocating user id: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, userKey(id), "email", email, "password", passwordHash)
		pipe.HSet(ctx, usersKey, email, id)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("writing user %d: %w", id, err)
	}

	return id, nil
}

// BindToken writes the bound-token field and the auths index entry in
// one MULTI/EXEC.
func (r *RedisUserRepository) BindToken(ctx context.Context, id int64, token string) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, userKey(id), "auth", token)
		pipe.HSet(ctx, authsKey, token, id)
		return nil
	})
	if err != nil {
		return fmt.Errorf("binding token for user %d: %w", id, err)
	}
	return nil
}

func (r *RedisUserRepository) FindByID(ctx context.Context, id int64) (*entities.User, bool, error) {
	fields, err := r.client.HGetAll(ctx, userKey(id)).Result()
	if err != nil {
		return nil, false, fmt.Errorf("reading user %d: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, false, nil
	}

	return &entities.User{
		ID:       id,
		Email:    fields["email"],
		Password: fields["password"],
		Token:    fields["auth"],
	}, true, nil
}

func (r *RedisUserRepository) FindByToken(ctx context.Context, token string) (*entities.User, bool, error) {
	val, err := r.client.HGet(ctx, authsKey, token).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading token index: %w", err)
	}

	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return nil, false, fmt.Errorf("corrupt token index entry %q: %w", val, err)
	}

	return r.FindByID(ctx, id)
}
