package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/ryuga001/MiniOrangeAssessment1/logger"
	"github.com/ryuga001/MiniOrangeAssessment1/model"
	"github.com/ryuga001/MiniOrangeAssessment1/repository"
)

const profileCacheTTL = 10 * time.Minute

// UserService serves the profile resource with a cache-aside strategy.
// Cache failures fall back to the database; a dead cache never fails a
// request.
type UserService struct {
	userRepo    repository.IUserRepository
	redisClient *redis.Client
}

func NewUserService(userRepo repository.IUserRepository, redisClient *redis.Client) *UserService {
	return &UserService{
		userRepo:    userRepo,
		redisClient: redisClient,
	}
}

func profileCacheKey(userID int) string {
	return fmt.Sprintf("profile:%d", userID)
}

// GetProfile returns the outward profile for the identity.
func (s *UserService) GetProfile(userID int) (*model.Profile, error) {
	cacheKey := profileCacheKey(userID)
	ctx := context.Background()

	if s.redisClient != nil {
		cached, err := s.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			profile := &model.Profile{}
			if err := json.Unmarshal([]byte(cached), profile); err == nil {
				return profile, nil
			}
		}
	}

	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	profile := user.Profile()

	if s.redisClient != nil {
		if data, err := json.Marshal(profile); err == nil {
			if err := s.redisClient.Set(ctx, cacheKey, data, profileCacheTTL).Err(); err != nil {
				logger.Log.WithError(err).Warn("Failed to cache profile")
			}
		}
	}

	return profile, nil
}

// UpdateProfile patches the mutable fields and invalidates the cached
// profile.
func (s *UserService) UpdateProfile(userID int, username, phone *string) (*model.Profile, error) {
	user, err := s.userRepo.UpdateProfile(userID, username, phone)
	if err != nil {
		return nil, err
	}

	if s.redisClient != nil {
		if err := s.redisClient.Del(context.Background(), profileCacheKey(userID)).Err(); err != nil {
			logger.Log.WithError(err).Warn("Failed to invalidate profile cache")
		}
	}

	return user.Profile(), nil
}
