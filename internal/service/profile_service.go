package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wellnest/tracker-api/internal/bodymetrics"
	"wellnest/tracker-api/internal/domain"
	"wellnest/tracker-api/internal/repository"
	"wellnest/tracker-api/internal/storage"
)

var (
	ErrInvalidProfile  = errors.New("invalid profile")
	ErrInvalidAvatar   = errors.New("invalid avatar upload")
	ErrAvatarUploadURL = errors.New("failed to generate avatar upload URL")
	ErrAvatarsDisabled = errors.New("avatar uploads are not available")
)

// ProfileView is a profile together with everything derived from it.
type ProfileView struct {
	FullName    string              `json:"fullName"`
	Email       string              `json:"email"`
	PhoneNumber string              `json:"phoneNumber,omitempty"`
	Profile     domain.Profile      `json:"profile"`
	Metrics     bodymetrics.Metrics `json:"metrics"`
	AvatarURL   string              `json:"avatarUrl,omitempty"`
}

// UploadURLResponse carries a presigned PUT URL and the key to confirm.
type UploadURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type ProfileService interface {
	GetProfile(ctx context.Context, email string) (*ProfileView, error)
	// UpdateProfile replaces the whole profile.
	UpdateProfile(ctx context.Context, email string, profile domain.Profile) (*ProfileView, error)
	Metrics(ctx context.Context, email string) (bodymetrics.Metrics, error)
	RequestAvatarUpload(ctx context.Context, email, contentType string) (*UploadURLResponse, error)
	ConfirmAvatar(ctx context.Context, email, objectKey string) (*ProfileView, error)
}

type profileService struct {
	userRepo    repository.UserRepository
	fileStorage storage.FileStorage
	calculator  bodymetrics.Calculator
	logger      *zap.Logger
}

func NewProfileService(userRepo repository.UserRepository, fileStorage storage.FileStorage, calculator bodymetrics.Calculator, logger *zap.Logger) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		fileStorage: fileStorage,
		calculator:  calculator,
		logger:      logger,
	}
}

func (s *profileService) GetProfile(ctx context.Context, email string) (*ProfileView, error) {
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, user), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, email string, profile domain.Profile) (*ProfileView, error) {
	if err := validateProfile(profile); err != nil {
		return nil, err
	}
	user, err := s.userRepo.UpdateProfile(ctx, email, profile)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.view(ctx, user), nil
}

func (s *profileService) Metrics(ctx context.Context, email string) (bodymetrics.Metrics, error) {
	user, err := s.getUser(ctx, email)
	if err != nil {
		return bodymetrics.Metrics{}, err
	}
	return s.calculator.ForProfile(user.Profile), nil
}

// RequestAvatarUpload presigns a PUT for a fresh object key under the
// user's avatar prefix. The key must be confirmed once the upload is done.
func (s *profileService) RequestAvatarUpload(ctx context.Context, email, contentType string) (*UploadURLResponse, error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: content type must be an image", ErrInvalidAvatar)
	}
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}

	ext := strings.TrimPrefix(contentType, "image/")
	objectKey := path.Join(avatarPrefix(user), fmt.Sprintf("%s.%s", uuid.NewString(), ext))

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		if errors.Is(err, storage.ErrStorageDisabled) {
			return nil, ErrAvatarsDisabled
		}
		return nil, ErrAvatarUploadURL
	}
	return &UploadURLResponse{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmAvatar records objectKey as the user's avatar. The previous
// object is removed on a best-effort basis.
func (s *profileService) ConfirmAvatar(ctx context.Context, email, objectKey string) (*ProfileView, error) {
	user, err := s.getUser(ctx, email)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(objectKey, avatarPrefix(user)+"/") || strings.Contains(objectKey, "..") {
		return nil, fmt.Errorf("%w: object key does not belong to user", ErrInvalidAvatar)
	}
	if err := s.userRepo.SetAvatarKey(ctx, user.Email, objectKey); err != nil {
		return nil, err
	}

	if old := user.AvatarKey; old != "" && old != objectKey {
		if err := s.fileStorage.DeleteObject(ctx, old); err != nil {
			s.logger.Warn("failed to delete previous avatar", zap.String("key", old), zap.Error(err))
		}
	}
	user.AvatarKey = objectKey
	return s.view(ctx, user), nil
}

func (s *profileService) getUser(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *profileService) view(ctx context.Context, user *domain.User) *ProfileView {
	v := &ProfileView{
		FullName:    user.FullName,
		Email:       user.Email,
		PhoneNumber: user.PhoneNumber,
		Profile:     user.Profile,
		Metrics:     s.calculator.ForProfile(user.Profile),
	}
	if user.AvatarKey != "" {
		url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, user.AvatarKey, storage.DefaultPresignedURLExpiry)
		if err == nil {
			v.AvatarURL = url
		} else if !errors.Is(err, storage.ErrStorageDisabled) {
			s.logger.Warn("failed to presign avatar", zap.String("key", user.AvatarKey), zap.Error(err))
		}
	}
	return v
}

func avatarPrefix(user *domain.User) string {
	return path.Join("avatars", user.ID.Hex())
}

func validateProfile(p domain.Profile) error {
	if p.Age != nil && (*p.Age < 10 || *p.Age > 120) {
		return fmt.Errorf("%w: age must be between 10 and 120", ErrInvalidProfile)
	}
	if p.Height != nil && *p.Height <= 0 {
		return fmt.Errorf("%w: height must be positive", ErrInvalidProfile)
	}
	if p.Weight != nil && *p.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", ErrInvalidProfile)
	}
	switch p.Gender {
	case "", domain.GenderMale, domain.GenderFemale, domain.GenderOther, domain.GenderPreferNotToSay:
	default:
		return fmt.Errorf("%w: unknown gender %q", ErrInvalidProfile, p.Gender)
	}
	switch p.ActivityLevel {
	case "", domain.ActivitySedentary, domain.ActivityLight, domain.ActivityModerate, domain.ActivityVeryActive:
	default:
		return fmt.Errorf("%w: unknown activity level %q", ErrInvalidProfile, p.ActivityLevel)
	}
	for _, issue := range slices.Concat(p.RecentHealthIssues, p.PastHealthIssues) {
		if !slices.Contains(domain.HealthIssues, issue) {
			return fmt.Errorf("%w: unknown health issue %q", ErrInvalidProfile, issue)
		}
	}
	return nil
}
