package services

import (
	"context"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/drsgate/internal/common"
	"github.com/dmitrijs2005/drsgate/internal/logging"
	sc "github.com/dmitrijs2005/drsgate/internal/server/config"
	"github.com/dmitrijs2005/drsgate/internal/server/models"
)

// -------- test fakes --------

type fakeObjectsRepo struct {
	objs map[string]*models.DrsObject
	err  error
}

func newFakeObjectsRepo() *fakeObjectsRepo {
	return &fakeObjectsRepo{objs: make(map[string]*models.DrsObject)}
}

func (f *fakeObjectsRepo) Insert(ctx context.Context, obj *models.DrsObject) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.objs[obj.ID]; ok {
		return common.ErrorAlreadyExists
	}
	f.objs[obj.ID] = obj
	return nil
}

func (f *fakeObjectsRepo) GetByID(ctx context.Context, id string) (*models.DrsObject, error) {
	if f.err != nil {
		return nil, f.err
	}
	obj, ok := f.objs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return obj, nil
}

type fakeEnvelopesRepo struct {
	envs      map[string]*models.Envelope
	insertErr error
}

func newFakeEnvelopesRepo() *fakeEnvelopesRepo {
	return &fakeEnvelopesRepo{envs: make(map[string]*models.Envelope)}
}

func (f *fakeEnvelopesRepo) Insert(ctx context.Context, env *models.Envelope) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if _, ok := f.envs[env.ID]; ok {
		return common.ErrorAlreadyExists
	}
	f.envs[env.ID] = env
	return nil
}

func (f *fakeEnvelopesRepo) GetByID(ctx context.Context, id string) (*models.Envelope, error) {
	env, ok := f.envs[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return env, nil
}

type fakeDownloadsRepo struct {
	dls       map[string]*models.Download
	insertErr error
}

func newFakeDownloadsRepo() *fakeDownloadsRepo {
	return &fakeDownloadsRepo{dls: make(map[string]*models.Download)}
}

func (f *fakeDownloadsRepo) Insert(ctx context.Context, dl *models.Download) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if _, ok := f.dls[dl.ID]; ok {
		return common.ErrorAlreadyExists
	}
	f.dls[dl.ID] = dl
	return nil
}

func (f *fakeDownloadsRepo) GetByID(ctx context.Context, id string) (*models.Download, error) {
	dl, ok := f.dls[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return dl, nil
}

type fakePublisher struct {
	served     []string
	unstaged   []string
	registered []string
	err        error
}

func (f *fakePublisher) DownloadServed(ctx context.Context, obj *models.DrsObject, selfURI string) error {
	if f.err != nil {
		return f.err
	}
	f.served = append(f.served, selfURI)
	return nil
}

func (f *fakePublisher) UnstagedDownloadRequested(ctx context.Context, obj *models.DrsObject, selfURI string) error {
	if f.err != nil {
		return f.err
	}
	f.unstaged = append(f.unstaged, selfURI)
	return nil
}

func (f *fakePublisher) FileRegistered(ctx context.Context, obj *models.DrsObject, selfURI string) error {
	if f.err != nil {
		return f.err
	}
	f.registered = append(f.registered, selfURI)
	return nil
}

type fakeStorage struct {
	staged    bool
	url       string
	existsErr error
	urlErr    error
}

func (f *fakeStorage) Exists(ctx context.Context, bucket, objectID string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.staged, nil
}

func (f *fakeStorage) DownloadURL(ctx context.Context, bucket, objectID string) (string, error) {
	if f.urlErr != nil {
		return "", f.urlErr
	}
	return f.url, nil
}

type fakeKeyService struct {
	header []byte
	err    error
	calls  int
}

func (f *fakeKeyService) GetEnvelope(ctx context.Context, secretID, publicKey string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.header, nil
}

// -------- helpers --------

func testConfig() *sc.Config {
	cfg := &sc.Config{}
	cfg.LoadDefaults()
	return cfg
}

func testLogger() logging.Logger {
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1})
	return logging.NewSlogLogger(slog.New(h))
}
