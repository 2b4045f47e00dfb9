package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"wellnest/tracker-api/internal/bodymetrics"
	"wellnest/tracker-api/internal/domain"
	"wellnest/tracker-api/internal/storage"
)

type fakeStorage struct {
	deleted   []string
	deleteErr error
}

func (f *fakeStorage) GeneratePresignedUploadURL(_ context.Context, key, contentType string, _ time.Duration) (string, error) {
	return "https://upload.test/" + key + "?type=" + contentType, nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://download.test/" + key, nil
}

func (f *fakeStorage) DeleteObject(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.deleteErr
}

func ptrTo[T any](v T) *T { return &v }

func newProfileFixture(t *testing.T, fs storage.FileStorage) (ProfileService, *domain.User) {
	t.Helper()
	users := newMemUsers()
	id, err := users.Create(context.Background(), &domain.User{FullName: "Sam", Email: owner})
	require.NoError(t, err)
	svc := NewProfileService(users, fs, bodymetrics.Calculator{Policy: bodymetrics.PolicyFemale}, zap.NewNop())
	user, err := users.GetByEmail(context.Background(), owner)
	require.NoError(t, err)
	require.Equal(t, id, user.ID)
	return svc, user
}

func TestProfile_UpdateComputesMetrics(t *testing.T) {
	svc, _ := newProfileFixture(t, &fakeStorage{})
	ctx := context.Background()

	view, err := svc.GetProfile(ctx, owner)
	require.NoError(t, err)
	assert.False(t, view.Metrics.ProfileCompleted)
	assert.Equal(t, bodymetrics.CategoryNotAvailable, view.Metrics.BMICategory)

	view, err = svc.UpdateProfile(ctx, owner, domain.Profile{
		Age:    ptrTo(30),
		Height: ptrTo(175.0),
		Weight: ptrTo(70.0),
		Gender: domain.GenderMale,
	})
	require.NoError(t, err)
	assert.True(t, view.Metrics.ProfileCompleted)
	require.NotNil(t, view.Metrics.BMR)
	assert.Equal(t, 1696, *view.Metrics.BMR)
	assert.Equal(t, bodymetrics.CategoryNormal, view.Metrics.BMICategory)

	m, err := svc.Metrics(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, view.Metrics, m)
}

func TestProfile_UpdateValidation(t *testing.T) {
	svc, _ := newProfileFixture(t, &fakeStorage{})
	ctx := context.Background()

	cases := map[string]domain.Profile{
		"age too low":     {Age: ptrTo(5)},
		"zero height":     {Height: ptrTo(0.0)},
		"negative weight": {Weight: ptrTo(-1.0)},
		"unknown gender":  {Gender: "robot"},
		"unknown issue":   {RecentHealthIssues: []string{"Scurvy"}},
		"unknown level":   {ActivityLevel: "Couch"},
	}
	for name, p := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.UpdateProfile(ctx, owner, p)
			assert.ErrorIs(t, err, ErrInvalidProfile)
		})
	}

	_, err := svc.UpdateProfile(ctx, "ghost@example.com", domain.Profile{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestProfile_AvatarFlow(t *testing.T) {
	fs := &fakeStorage{}
	svc, user := newProfileFixture(t, fs)
	ctx := context.Background()

	_, err := svc.RequestAvatarUpload(ctx, owner, "video/mp4")
	assert.ErrorIs(t, err, ErrInvalidAvatar)

	first, err := svc.RequestAvatarUpload(ctx, owner, "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.ObjectKey, "avatars/"+user.ID.Hex()+"/"))
	assert.True(t, strings.HasSuffix(first.ObjectKey, ".png"))

	view, err := svc.ConfirmAvatar(ctx, owner, first.ObjectKey)
	require.NoError(t, err)
	assert.Equal(t, "https://download.test/"+first.ObjectKey, view.AvatarURL)
	assert.Empty(t, fs.deleted)

	second, err := svc.RequestAvatarUpload(ctx, owner, "image/jpeg")
	require.NoError(t, err)
	fs.deleteErr = errors.New("bucket unavailable")
	_, err = svc.ConfirmAvatar(ctx, owner, second.ObjectKey)
	require.NoError(t, err)
	assert.Equal(t, []string{first.ObjectKey}, fs.deleted)

	_, err = svc.ConfirmAvatar(ctx, owner, "avatars/someone-else/x.png")
	assert.ErrorIs(t, err, ErrInvalidAvatar)
}

func TestProfile_AvatarsDisabled(t *testing.T) {
	svc, _ := newProfileFixture(t, storage.Disabled{})
	_, err := svc.RequestAvatarUpload(context.Background(), owner, "image/png")
	assert.ErrorIs(t, err, ErrAvatarsDisabled)
}
