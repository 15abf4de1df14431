package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/drsgate/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFileToRegister() *models.FileToRegister {
	return &models.FileToRegister{
		FileID:             "file-1",
		DecryptedSHA256:    "h1",
		DecryptedSize:      100,
		DecryptionSecretID: "sec-1",
		CreationDate:       time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRegisterNewFile_CreatesObjectAndEmitsEvent(t *testing.T) {
	repo := newFakeObjectsRepo()
	pub := &fakePublisher{}
	reg := NewRegistrar(repo, pub, testConfig(), testLogger())

	obj, err := reg.RegisterNewFile(context.Background(), testFileToRegister())
	require.NoError(t, err)

	require.NotEmpty(t, obj.ID)
	assert.Equal(t, "file-1", obj.FileID)
	assert.Equal(t, "h1", obj.DecryptedSHA256)
	assert.Equal(t, int64(100), obj.DecryptedSize)
	assert.Equal(t, "sec-1", obj.DecryptionSecretID)

	stored, err := repo.GetByID(context.Background(), obj.ID)
	require.NoError(t, err)
	assert.Equal(t, obj, stored)

	require.Len(t, pub.registered, 1)
	assert.Equal(t, "drs://localhost:8080/"+obj.ID, pub.registered[0])
}

func TestRegisterNewFile_InsertErrorPropagates(t *testing.T) {
	repo := newFakeObjectsRepo()
	repo.err = errors.New("db down")
	pub := &fakePublisher{}
	reg := NewRegistrar(repo, pub, testConfig(), testLogger())

	_, err := reg.RegisterNewFile(context.Background(), testFileToRegister())
	require.Error(t, err)
	assert.Empty(t, pub.registered)
}

func TestRegisterNewFile_PublishFailureDoesNotFailCall(t *testing.T) {
	repo := newFakeObjectsRepo()
	pub := &fakePublisher{err: errors.New("broker down")}
	reg := NewRegistrar(repo, pub, testConfig(), testLogger())

	obj, err := reg.RegisterNewFile(context.Background(), testFileToRegister())
	require.NoError(t, err)

	_, err = repo.GetByID(context.Background(), obj.ID)
	assert.NoError(t, err)
}

func TestRegisterNewFile_GeneratesUniqueIDs(t *testing.T) {
	repo := newFakeObjectsRepo()
	reg := NewRegistrar(repo, &fakePublisher{}, testConfig(), testLogger())

	a, err := reg.RegisterNewFile(context.Background(), testFileToRegister())
	require.NoError(t, err)
	b, err := reg.RegisterNewFile(context.Background(), testFileToRegister())
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}
