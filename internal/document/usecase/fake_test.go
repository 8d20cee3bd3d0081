package usecase

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/esign/internal/document/entity"
	"github.com/shandysiswandi/esign/internal/pkg/clock"
	"github.com/shandysiswandi/esign/internal/pkg/config"
	"github.com/shandysiswandi/esign/internal/pkg/facematch"
	"github.com/shandysiswandi/esign/internal/pkg/goerror"
	"github.com/shandysiswandi/esign/internal/pkg/idempotency"
	"github.com/shandysiswandi/esign/internal/pkg/instrument"
	"github.com/shandysiswandi/esign/internal/pkg/jwt"
	"github.com/shandysiswandi/esign/internal/pkg/uid"
	"github.com/shandysiswandi/esign/internal/pkg/validator"
	"github.com/shandysiswandi/esign/internal/shared/authz"
	"github.com/shandysiswandi/esign/internal/shared/constant"
	"github.com/stretchr/testify/require"
)

type fakeDB struct {
	mu        sync.Mutex
	documents map[int64]entity.Document
	deleted   map[int64]bool
	signers   map[string]entity.Signer
	links     map[int64]int64

	registerCalls int
	registerErr   error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		documents: map[int64]entity.Document{},
		deleted:   map[int64]bool{},
		signers:   map[string]entity.Signer{},
		links:     map[int64]int64{},
	}
}

func (f *fakeDB) RegisterDocument(_ context.Context, in entity.Registration) (*entity.RegistrationResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerCalls++
	if f.registerErr != nil {
		return nil, f.registerErr
	}

	signer, found := f.signers[in.Signer.NationalID]
	if !found {
		if missing := in.Signer.MissingFields(); len(missing) > 0 {
			return nil, &entity.SignerFieldsError{Fields: missing}
		}
		signer = entity.Signer{
			ID:           in.SignerID,
			FullName:     in.Signer.FullName,
			NationalID:   in.Signer.NationalID,
			PhoneNumber:  in.Signer.PhoneNumber,
			ContactEmail: in.Signer.ContactEmail,
			PhotoIDKey:   in.Signer.PhotoIDKey,
		}
		f.signers[signer.NationalID] = signer
	}

	doc := in.Document
	doc.CreatedAt = in.At
	doc.UpdatedAt = in.At
	f.documents[doc.ID] = doc
	f.links[doc.ID] = signer.ID

	return &entity.RegistrationResult{Document: doc, SignerID: signer.ID, SignerCreated: !found}, nil
}

func (f *fakeDB) GetDocument(_ context.Context, id int64) (*entity.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.documents[id]
	if !ok || f.deleted[id] {
		return nil, goerror.ErrNotFound
	}
	return &d, nil
}

func (f *fakeDB) ListDocuments(_ context.Context, filter entity.DocumentFilter) ([]entity.Document, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []entity.Document
	for id, d := range f.documents {
		if f.deleted[id] || (filter.CompanyID > 0 && d.CompanyID != filter.CompanyID) {
			continue
		}
		all = append(all, d)
	}
	slices.SortFunc(all, func(a, b entity.Document) int { return cmp.Compare(a.ID, b.ID) })

	total := int64(len(all))
	start := min(int(filter.Offset), len(all))
	end := min(start+int(filter.Limit), len(all))
	return all[start:end], total, nil
}

func (f *fakeDB) UpdateDocument(_ context.Context, p entity.DocumentPatch) (*entity.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.documents[p.ID]
	if !ok || f.deleted[p.ID] {
		return nil, goerror.ErrNotFound
	}
	if p.FileName != nil {
		d.FileName = *p.FileName
	}
	if p.StatusID != nil {
		d.StatusID = *p.StatusID
	}
	d.UpdatedAt = p.UpdatedAt
	f.documents[p.ID] = d
	return &d, nil
}

func (f *fakeDB) DeleteDocument(_ context.Context, id int64, _ time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.documents[id]; !ok || f.deleted[id] {
		return goerror.ErrNotFound
	}
	f.deleted[id] = true
	return nil
}

func (f *fakeDB) GetSignerByNationalID(_ context.Context, nationalID string) (*entity.Signer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.signers[nationalID]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &s, nil
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func (f *fakeStorage) Put(_ context.Context, key string, data []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.objects[key] = slices.Clone(data)
	return nil
}

func (f *fakeStorage) Get(_ context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objects[key]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return b, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) keys(prefix string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for k := range f.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, k)
		}
	}
	return out
}

type fakeMessaging struct {
	mu     sync.Mutex
	events []DocumentRegisteredEvent
}

func (f *fakeMessaging) PublishDocumentRegistered(_ context.Context, msg DocumentRegisteredEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, msg)
	return nil
}

func (f *fakeMessaging) published() []DocumentRegisteredEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]DocumentRegisteredEvent(nil), f.events...)
}

type fixture struct {
	uc      *Usecase
	db      *fakeDB
	storage *fakeStorage
	mq      *fakeMessaging
	redis   *miniredis.Miniredis
}

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(strings.Join([]string{
		"idempotency:",
		"  lock_seconds: 30",
		"  ttl_seconds: 3600",
	}, "\n")))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	node, err := uid.NewSnowflakeNode(2)
	require.NoError(t, err)

	enforcer, err := authz.NewEnforcer()
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	db := newFakeDB()
	st := &fakeStorage{objects: map[string][]byte{}}
	mq := &fakeMessaging{}

	uc := New(Dependency{
		RepoDB:        db,
		RepoStorage:   st,
		RepoMessaging: mq,
		Idempotency:   idempotency.New(rdb),
		Validator:     v,
		Config:        cfg,
		UID:           node,
		UUID:          uid.NewUUID(),
		Clock:         clock.NewManual(testNow),
		Instrument:    instrument.NewNoop(),
		Enforcer:      enforcer,
		Comparator:    facematch.NewPresence(),
	})

	return &fixture{uc: uc, db: db, storage: st, mq: mq, redis: mr}
}

func asRole(ctx context.Context, userID int64, role string) context.Context {
	return jwt.SetAuth(ctx, jwt.Claims{UserID: userID, Role: role})
}

func asCompany(ctx context.Context) context.Context {
	return asRole(ctx, 900, constant.RoleCompany)
}

func requireCode(t *testing.T, err error, code goerror.Code) *goerror.Error {
	t.Helper()
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, code, gerr.Code(), gerr.String())
	return gerr
}
