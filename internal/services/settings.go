package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"inviteapi/internal/domain"
)

type settingsService struct {
	repo           domain.SettingsRepository
	files          domain.FileStore
	contextTimeout time.Duration
}

// NewSettingsService creates a SettingsService backed by the given repository
// and file store.
func NewSettingsService(repo domain.SettingsRepository, files domain.FileStore, timeout time.Duration) domain.SettingsService {
	return &settingsService{
		repo:           repo,
		files:          files,
		contextTimeout: timeout,
	}
}

func (s *settingsService) GetEvent(ctx context.Context) (*domain.EventSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.repo.GetEvent(ctx)
}

// UpdateEvent overwrites the text fields. A blank imageUrl keeps the stored
// image so text-only edits don't wipe an uploaded picture.
func (s *settingsService) UpdateEvent(ctx context.Context, settings *domain.EventSettings) (*domain.EventSettings, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	current, err := s.repo.GetEvent(ctx)
	if err != nil {
		return nil, err
	}
	current.Title = settings.Title
	current.Subtitle = settings.Subtitle
	current.Description = settings.Description
	current.Location = settings.Location
	current.DateText = settings.DateText
	if strings.TrimSpace(settings.ImageURL) != "" {
		current.ImageURL = settings.ImageURL
	}
	if err := s.repo.SaveEvent(ctx, current); err != nil {
		return nil, err
	}
	return current, nil
}

func (s *settingsService) SetEventImage(ctx context.Context, fileName string, content []byte, baseURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if len(content) == 0 {
		return "", domain.ErrEmptyUpload
	}

	stored := strings.ReplaceAll(uuid.NewString(), "-", "") + safeExt(fileName)
	if err := s.files.Save(stored, content); err != nil {
		return "", fmt.Errorf("store event image: %w", err)
	}
	publicURL := strings.TrimSuffix(baseURL, "/") + "/uploads/" + stored

	current, err := s.repo.GetEvent(ctx)
	if err != nil {
		return "", err
	}
	current.ImageURL = publicURL
	if err := s.repo.SaveEvent(ctx, current); err != nil {
		return "", err
	}
	return publicURL, nil
}
