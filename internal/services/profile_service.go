package services

import (
	"context"
	"sync"

	"github.com/alimgiray/gitmentor/internal/models"
	"github.com/alimgiray/gitmentor/pkg/logger"
	"github.com/sirupsen/logrus"
)

// ProfileStore keeps the last synced profile of every user
type ProfileStore interface {
	Save(username string, profile *models.Profile)
	Get(username string) (*models.Profile, bool)
}

// MemoryProfileStore is a process-local ProfileStore
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*models.Profile
}

func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{profiles: make(map[string]*models.Profile)}
}

func (s *MemoryProfileStore) Save(username string, profile *models.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[username] = profile
}

func (s *MemoryProfileStore) Get(username string) (*models.Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[username]
	return profile, ok
}

// ProfileService syncs normalized GitHub profiles without calling the language model
type ProfileService struct {
	collector *ProfileCollector
	store     ProfileStore
}

func NewProfileService(collector *ProfileCollector, store ProfileStore) *ProfileService {
	return &ProfileService{collector: collector, store: store}
}

// Sync fetches and normalizes the profile of identity and stores it.
// Commits are always included so the stored profile is the richest one available.
func (s *ProfileService) Sync(ctx context.Context, identity *models.Identity) (*models.Profile, error) {
	if identity == nil || identity.AccessToken == "" || identity.Username == "" {
		return nil, models.ErrGitHubContextMissing
	}

	profile, err := s.collector.Collect(ctx, identity, true)
	if err != nil {
		logger.WithField("username", identity.Username).WithError(err).Warn("profile sync failed")
		return nil, err
	}

	s.store.Save(identity.Username, profile)
	logger.WithFields(logrus.Fields{
		"username": identity.Username,
		"repos":    profile.Repos.Total,
		"commits":  len(profile.RecentCommits),
	}).Info("profile synced")
	return profile, nil
}

// Get returns the stored profile of username, if one was synced
func (s *ProfileService) Get(username string) (*models.Profile, bool) {
	return s.store.Get(username)
}
