package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"veriloan/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by typed getters when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Ping checks Redis connectivity for health reporting.
func (s *CacheService) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// User caching
func (s *CacheService) CacheUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("cannot cache nil user")
	}

	keys := []string{
		s.GenerateKey("user", "id", user.ID),
		s.GenerateKey("user", "email", user.Email),
	}

	for _, key := range keys {
		if err := s.Set(ctx, key, user); err != nil {
			return err
		}
	}
	return nil
}

func (s *CacheService) GetUser(ctx context.Context, key string) (*models.User, error) {
	var user models.User
	found, err := s.Get(ctx, key, &user)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCacheMiss
	}
	return &user, nil
}

func (s *CacheService) InvalidateUser(ctx context.Context, id uint, email string) error {
	keys := []string{s.GenerateKey("user", "id", id)}
	if email != "" {
		keys = append(keys, s.GenerateKey("user", "email", email))
	}
	return s.Delete(ctx, keys...)
}

// Verified-applicant caching. Registry reads sit on the hot path of every loan
// submission, so lookups go through here; every registry mutation invalidates.
// Document blobs are excluded from the cached copy to keep entries small.
func (s *CacheService) CacheVerifiedApplicant(ctx context.Context, va *models.VerifiedApplicant) error {
	if va == nil {
		return errors.New("cannot cache nil verified applicant")
	}
	copy := *va
	copy.IdentityDoc = nil
	copy.TaxDoc = nil
	copy.IncomeDoc = nil
	key := s.GenerateKey("verified", "email", va.Email)
	return s.Set(ctx, key, &copy)
}

func (s *CacheService) GetVerifiedApplicant(ctx context.Context, email string) (*models.VerifiedApplicant, error) {
	key := s.GenerateKey("verified", "email", email)
	var va models.VerifiedApplicant
	found, err := s.Get(ctx, key, &va)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrCacheMiss
	}
	return &va, nil
}

func (s *CacheService) InvalidateVerifiedApplicant(ctx context.Context, email string) error {
	return s.Delete(ctx, s.GenerateKey("verified", "email", email))
}

func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}
