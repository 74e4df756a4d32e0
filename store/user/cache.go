package user

import (
	"context"
	"fmt"

	"lending/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache read-through cache over a user store; users are immutable after
// onboarding so entries never need invalidation
func Cache(store core.IUserStore) core.IUserStore {
	return &cacheUserStore{
		IUserStore: store,
		cache:      gcache.New(2048).LRU().Build(),
		sf:         &singleflight.Group{},
	}
}

type cacheUserStore struct {
	core.IUserStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheUserStore) Create(ctx context.Context, user *core.User) error {
	if err := s.IUserStore.Create(ctx, user); err != nil {
		return err
	}
	s.cacheUser(user)
	return nil
}

func (s *cacheUserStore) Find(ctx context.Context, userID string) (*core.User, error) {
	if v, err := s.cache.Get(s.userKey(userID)); err == nil {
		if user, ok := v.(*core.User); ok {
			return user, nil
		}
	}

	v, err, _ := s.sf.Do(s.userKey(userID), func() (interface{}, error) {
		user, err := s.IUserStore.Find(ctx, userID)
		if err != nil {
			return nil, err
		}
		s.cacheUser(user)
		return user, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.User), nil
}

func (s *cacheUserStore) FindByAddress(ctx context.Context, address string) (*core.User, error) {
	if v, err := s.cache.Get(s.addressKey(address)); err == nil {
		if user, ok := v.(*core.User); ok {
			return user, nil
		}
	}

	user, err := s.IUserStore.FindByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	s.cacheUser(user)
	return user, nil
}

func (s *cacheUserStore) cacheUser(user *core.User) {
	_ = s.cache.Set(s.userKey(user.UserID), user)
	_ = s.cache.Set(s.addressKey(user.Address), user)
}

func (s *cacheUserStore) userKey(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}

func (s *cacheUserStore) addressKey(address string) string {
	return fmt.Sprintf("address:%s", address)
}
