package document

import (
	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shandysiswandi/esign/internal/document/inbound"
	"github.com/shandysiswandi/esign/internal/document/outbound/db"
	"github.com/shandysiswandi/esign/internal/document/outbound/mq"
	"github.com/shandysiswandi/esign/internal/document/outbound/storage"
	"github.com/shandysiswandi/esign/internal/document/usecase"
	"github.com/shandysiswandi/esign/internal/pkg/clock"
	"github.com/shandysiswandi/esign/internal/pkg/config"
	"github.com/shandysiswandi/esign/internal/pkg/facematch"
	"github.com/shandysiswandi/esign/internal/pkg/goroutine"
	"github.com/shandysiswandi/esign/internal/pkg/idempotency"
	"github.com/shandysiswandi/esign/internal/pkg/instrument"
	"github.com/shandysiswandi/esign/internal/pkg/messaging"
	"github.com/shandysiswandi/esign/internal/pkg/router"
	pkgstorage "github.com/shandysiswandi/esign/internal/pkg/storage"
	"github.com/shandysiswandi/esign/internal/pkg/uid"
	"github.com/shandysiswandi/esign/internal/pkg/validator"
)

type Dependency struct {
	DBConn      *pgxpool.Pool              `validate:"required"`
	Goroutine   *goroutine.Manager         `validate:"required"`
	Router      *router.Router             `validate:"required"`
	Messaging   messaging.Messaging        `validate:"required"`
	Storage     pkgstorage.Storage         `validate:"required"`
	Idempotency idempotency.Idempotency    `validate:"required"`
	Config      config.Config              `validate:"required"`
	Instrument  instrument.Instrumentation `validate:"required"`
	UID         uid.NumberID               `validate:"required"`
	UUID        uid.StringID               `validate:"required"`
	Clock       clock.Clocker              `validate:"required"`
	Validator   validator.Validator        `validate:"required"`
	Enforcer    *casbin.Enforcer           `validate:"required"`
	// Comparator defaults to the presence check.
	Comparator facematch.Comparator
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	comparator := dep.Comparator
	if comparator == nil {
		comparator = facematch.NewPresence()
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		RepoStorage:   storage.NewStorage(dep.Storage, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		Idempotency:   dep.Idempotency,
		Validator:     dep.Validator,
		Config:        dep.Config,
		UID:           dep.UID,
		UUID:          dep.UUID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Enforcer:      dep.Enforcer,
		Goroutine:     dep.Goroutine,
		Comparator:    comparator,
	})

	maxMemory := int64(dep.Config.GetInt("modules.document.multipart_memory_mb")) << 20
	inbound.RegisterHTTPEndpoint(dep.Router, uc, maxMemory)

	return nil
}
