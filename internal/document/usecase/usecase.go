package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/casbin/casbin/v3"
	"github.com/shandysiswandi/esign/internal/document/entity"
	"github.com/shandysiswandi/esign/internal/pkg/clock"
	"github.com/shandysiswandi/esign/internal/pkg/config"
	"github.com/shandysiswandi/esign/internal/pkg/facematch"
	"github.com/shandysiswandi/esign/internal/pkg/goerror"
	"github.com/shandysiswandi/esign/internal/pkg/goroutine"
	"github.com/shandysiswandi/esign/internal/pkg/idempotency"
	"github.com/shandysiswandi/esign/internal/pkg/instrument"
	"github.com/shandysiswandi/esign/internal/pkg/jwt"
	"github.com/shandysiswandi/esign/internal/pkg/uid"
	"github.com/shandysiswandi/esign/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type DocumentRegisteredEvent struct {
	DocumentID    int64
	CompanyID     int64
	SignerID      int64
	SignerCreated bool
	HashSHA256    string
	RegisteredBy  int64
}

type repoMessaging interface {
	PublishDocumentRegistered(ctx context.Context, msg DocumentRegisteredEvent) error
}

type repoStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

type repoDB interface {
	RegisterDocument(ctx context.Context, in entity.Registration) (*entity.RegistrationResult, error)
	GetDocument(ctx context.Context, id int64) (*entity.Document, error)
	ListDocuments(ctx context.Context, filter entity.DocumentFilter) ([]entity.Document, int64, error)
	UpdateDocument(ctx context.Context, patch entity.DocumentPatch) (*entity.Document, error)
	DeleteDocument(ctx context.Context, id int64, at time.Time) error

	GetSignerByNationalID(ctx context.Context, nationalID string) (*entity.Signer, error)
}

type Usecase struct {
	repoDB        repoDB
	repoStorage   repoStorage
	repoMessaging repoMessaging
	idemp         idempotency.Idempotency
	validator     validator.Validator
	uid           uid.NumberID
	uuid          uid.StringID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	enforcer      *casbin.Enforcer
	goroutine     *goroutine.Manager
	comparator    facematch.Comparator

	idempLock time.Duration
	idempTTL  time.Duration
}

type Dependency struct {
	RepoDB        repoDB
	RepoStorage   repoStorage
	RepoMessaging repoMessaging
	// Idempotency is optional; without it every upload is processed.
	Idempotency idempotency.Idempotency
	Validator   validator.Validator
	Config      config.Config
	UID         uid.NumberID
	UUID        uid.StringID
	Clock       clock.Clocker
	Instrument  instrument.Instrumentation
	Enforcer    *casbin.Enforcer
	Goroutine   *goroutine.Manager
	Comparator  facematch.Comparator
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoStorage:   dep.RepoStorage,
		repoMessaging: dep.RepoMessaging,
		idemp:         dep.Idempotency,
		validator:     dep.Validator,
		uid:           dep.UID,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		enforcer:      dep.Enforcer,
		goroutine:     dep.Goroutine,
		comparator:    dep.Comparator,
		idempLock:     dep.Config.GetSecond("idempotency.lock_seconds"),
		idempTTL:      dep.Config.GetSecond("idempotency.ttl_seconds"),
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("document.usecase").Start(ctx, name)
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	ok, err := s.enforcer.Enforce(clm.Role, obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		slog.WarnContext(ctx, "account not allowed", "user_id", clm.UserID, "role", clm.Role, "object", obj, "action", act)
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, nil
}

// runAsync hands f to the goroutine manager, or runs it inline when the
// manager is missing or refuses the task.
func (s *Usecase) runAsync(ctx context.Context, f func(ctx context.Context) error) {
	ctx = context.WithoutCancel(ctx)
	if s.goroutine == nil {
		_ = f(ctx)
		return
	}
	if err := s.goroutine.Go(ctx, f); err != nil {
		_ = f(ctx)
	}
}
