package mongo

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	admindomain "github.com/alcymedia/casting-caly/api/internal/admin/domain"
	"github.com/alcymedia/casting-caly/api/internal/apperr"
	"github.com/alcymedia/casting-caly/api/internal/public/domain"
)

var testCollections = Collections{
	Submissions:         "casting_submissions",
	AdminProfiles:       "admin_profiles",
	Users:               "users",
	RevokedSessions:     "revoked_sessions",
	FailedNotifications: "failed_notifications",
}

func initMongoContainer(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping mongo integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor:   wait.ForListeningPort("27017/tcp").WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "27017")
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(fmt.Sprintf("mongodb://%s:%s", host, port.Port())))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	db := client.Database("casting_test")
	require.NoError(t, EnsureIndexes(ctx, db, testCollections))
	return db
}

func anaSilva(phone string) *domain.Submission {
	return &domain.Submission{
		FullName:    "Ana Silva",
		Age:         25,
		Gender:      "Feminino",
		Phone:       phone,
		Province:    "Maputo Cidade",
		ProfileType: "Atores",
		Motivation:  strings.Repeat("m", 160),
		Photos:      []string{"photos/1-a.jpg", "photos/1-b.jpg", "photos/1-c.jpg"},
	}
}

func TestSubmissionRepositoriesAgainstMongo(t *testing.T) {
	db := initMongoContainer(t)
	ctx := context.Background()
	public := NewSubmissionRepository(db, testCollections.Submissions)
	admin := NewAdminSubmissionRepository(db, testCollections.Submissions)

	first := anaSilva("+258840000000")
	require.NoError(t, public.Insert(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	exists, err := public.ExistsByPhone(ctx, "+258840000000")
	require.NoError(t, err)
	assert.True(t, exists)

	// the unique index catches a duplicate that slipped past the pre-check
	err = public.Insert(ctx, anaSilva("+258840000000"))
	require.ErrorIs(t, err, apperr.ErrDuplicatePhone)

	time.Sleep(5 * time.Millisecond)
	second := anaSilva("+258840000001")
	require.NoError(t, public.Insert(ctx, second))

	list, err := admin.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Len(t, list[1].Photos, 3)
	assert.Nil(t, list[1].CVPortfolio)

	found, err := admin.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Silva", found.FullName)

	require.NoError(t, admin.Delete(ctx, first.ID))
	require.ErrorIs(t, admin.Delete(ctx, first.ID), apperr.ErrNotFound)
	_, err = admin.FindByID(ctx, "not-an-id")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestIdentityRepositoriesAgainstMongo(t *testing.T) {
	db := initMongoContainer(t)
	ctx := context.Background()
	users := NewUserRepository(db, testCollections.Users)
	profiles := NewAdminProfileRepository(db, testCollections.AdminProfiles)
	sessions := NewSessionRepository(db, testCollections.RevokedSessions)

	user := &admindomain.User{Email: "Alcymedia.App@gmail.com", PasswordHash: []byte("hash")}
	require.NoError(t, users.Create(ctx, user))
	require.ErrorIs(t, users.Create(ctx, &admindomain.User{Email: "alcymedia.app@gmail.com"}), apperr.ErrAlreadyRegistered)

	found, err := users.FindByEmail(ctx, "alcymedia.app@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	_, err = profiles.FindByUserID(ctx, user.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
	created, err := profiles.Upsert(ctx, admindomain.AdminProfile{UserID: user.ID, Name: "Alcy", Role: "admin"})
	require.NoError(t, err)
	assert.True(t, created)
	profile, err := profiles.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alcy", profile.Name)

	session := admindomain.Session{TokenID: "jti-1", UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	revoked, err := sessions.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
	require.NoError(t, sessions.Revoke(ctx, session))
	require.NoError(t, sessions.Revoke(ctx, session))
	revoked, err = sessions.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestBlobStoreAgainstMongo(t *testing.T) {
	db := initMongoContainer(t)
	ctx := context.Background()
	store := NewBlobStore(db, "casting-files", "http://localhost:8080/")

	stored, err := store.Upload(ctx, "photos/1-a.jpg", "image/jpeg", bytes.NewReader([]byte("jpeg-bytes")))
	require.NoError(t, err)
	assert.Equal(t, "photos/1-a.jpg", stored)

	_, err = store.Upload(ctx, "photos/1-a.jpg", "image/jpeg", bytes.NewReader([]byte("other")))
	require.ErrorIs(t, err, ErrObjectExists)

	object, err := store.OpenObject(ctx, "photos/1-a.jpg")
	require.NoError(t, err)
	defer object.Close()
	data, err := io.ReadAll(object)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))
	assert.Equal(t, "image/jpeg", object.ContentType)

	_, err = store.Open(ctx, "photos/missing.jpg")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestPublicURL(t *testing.T) {
	store := NewBlobStore(nil, "casting-files", "https://casting.example/")
	assert.Equal(t, "https://casting.example/files/casting-files/photos/1-foto%20nova.jpg", store.PublicURL("photos/1-foto nova.jpg"))
}
