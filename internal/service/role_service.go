package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/repository"
)

const (
	roleCachePrefix = "roles:"
	roleCacheTTL    = 10 * time.Minute
)

// RoleService serves the user_types reference data through a Redis
// read-through cache. Roles are immutable, so a short TTL is plenty; any
// Redis failure falls through to Postgres silently.
type RoleService struct {
	roles  repository.RoleRepository
	client *redis.Client
	logger *zap.Logger
}

// NewRoleService builds the service. A nil client disables caching.
func NewRoleService(roles repository.RoleRepository, client *redis.Client, logger *zap.Logger) *RoleService {
	return &RoleService{roles: roles, client: client, logger: logger}
}

// GetByID resolves a role by id.
func (s *RoleService) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	return s.cached(ctx, roleCachePrefix+"id:"+id, func() (*domain.Role, error) {
		return s.roles.GetByID(ctx, id)
	})
}

// GetByName resolves a role by name.
func (s *RoleService) GetByName(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	return s.cached(ctx, roleCachePrefix+"name:"+string(name), func() (*domain.Role, error) {
		return s.roles.GetByName(ctx, name)
	})
}

// List returns all roles, uncached.
func (s *RoleService) List(ctx context.Context) ([]domain.Role, error) {
	return s.roles.List(ctx)
}

func (s *RoleService) cached(ctx context.Context, key string, load func() (*domain.Role, error)) (*domain.Role, error) {
	if s.client != nil {
		if val, err := s.client.Get(ctx, key).Result(); err == nil {
			var role domain.Role
			if err := json.Unmarshal([]byte(val), &role); err == nil {
				return &role, nil
			}
		}
	}

	role, err := load()
	if err != nil {
		return nil, err
	}

	if s.client != nil {
		if data, err := json.Marshal(role); err == nil {
			if err := s.client.Set(ctx, key, data, roleCacheTTL).Err(); err != nil {
				s.logger.Debug("role cache write failed", zap.Error(err))
			}
		}
	}
	return role, nil
}
