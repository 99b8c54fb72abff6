package service

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"ecodonate-backend/internal/domain"
	"ecodonate-backend/internal/repository"
	"ecodonate-backend/internal/storage"
)

// ImageUploadConfig bounds story image uploads
type ImageUploadConfig struct {
	AllowedTypes []string
	URLExpiry    time.Duration
}

type storyService struct {
	storyRepo repository.StoryRepository
	orgRepo   repository.OrganizationRepository
	images    storage.Storage
	uploadCfg ImageUploadConfig
}

func NewStoryService(storyRepo repository.StoryRepository, orgRepo repository.OrganizationRepository, images storage.Storage, uploadCfg ImageUploadConfig) StoryService {
	if uploadCfg.URLExpiry <= 0 {
		uploadCfg.URLExpiry = 15 * time.Minute
	}
	return &storyService{
		storyRepo: storyRepo,
		orgRepo:   orgRepo,
		images:    images,
		uploadCfg: uploadCfg,
	}
}

func (s *storyService) CreateStory(ctx context.Context, callerID int64, title, content string, imageURL *string) (*domain.Story, error) {
	org, err := ownedOrganization(ctx, s.orgRepo, callerID)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, ErrValidation("title and content are required")
	}
	if imageURL != nil {
		trimmed := strings.TrimSpace(*imageURL)
		if trimmed == "" {
			imageURL = nil
		} else {
			if err := s.checkUploadedImage(ctx, org.ID, trimmed); err != nil {
				return nil, err
			}
			imageURL = &trimmed
		}
	}

	story := &domain.Story{
		OrganizationID: org.ID,
		Title:          title,
		Content:        content,
		ImageURL:       imageURL,
	}
	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, ErrInternal(err)
	}
	return story, nil
}

// checkUploadedImage requires an image hosted by our storage to be one of the
// organization's own uploads. External URLs are accepted as they are.
func (s *storyService) checkUploadedImage(ctx context.Context, orgID int64, imageURL string) error {
	key, ok := s.images.KeyFromURL(imageURL)
	if !ok {
		return nil
	}
	key = path.Clean(key)
	if !strings.HasPrefix(key, storage.StoryImagePrefix(orgID)) {
		return ErrValidation("image_url does not belong to this organization")
	}
	exists, _, err := s.images.Exists(ctx, key)
	if err != nil {
		return ErrInternal(err)
	}
	if !exists {
		return ErrValidation("image has not been uploaded")
	}
	return nil
}

func (s *storyService) ListStories(ctx context.Context, orgID int64) ([]domain.Story, error) {
	org, err := s.orgRepo.GetByID(ctx, orgID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound("organization not found")
		}
		return nil, ErrInternal(err)
	}
	// Stories of unlisted organizations are not public
	if org.Status != domain.OrganizationStatusApproved {
		return nil, ErrNotFound("organization not found")
	}

	stories, err := s.storyRepo.ListByOrganization(ctx, org.ID)
	if err != nil {
		return nil, ErrInternal(err)
	}
	if stories == nil {
		stories = []domain.Story{}
	}
	return stories, nil
}

func (s *storyService) ImageUploadURL(ctx context.Context, callerID int64, filename, contentType string) (*domain.ImageUpload, error) {
	org, err := ownedOrganization(ctx, s.orgRepo, callerID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(filename) == "" {
		return nil, ErrValidation("filename is required")
	}
	if !s.allowedType(contentType) {
		return nil, ErrValidation("content type is not allowed")
	}

	key := storage.StoryImageKey(org.ID, filename)
	uploadURL, err := s.images.PresignUpload(ctx, key, contentType, s.uploadCfg.URLExpiry)
	if err != nil {
		return nil, ErrInternal(err)
	}

	return &domain.ImageUpload{
		UploadURL: uploadURL,
		ImageURL:  s.images.PublicURL(key),
		ExpiresAt: time.Now().Add(s.uploadCfg.URLExpiry).UTC(),
	}, nil
}

func (s *storyService) allowedType(contentType string) bool {
	for _, t := range s.uploadCfg.AllowedTypes {
		if strings.EqualFold(t, contentType) {
			return true
		}
	}
	return false
}
