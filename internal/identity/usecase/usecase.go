package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/esign/internal/identity/entity"
	"github.com/shandysiswandi/esign/internal/pkg/clock"
	"github.com/shandysiswandi/esign/internal/pkg/config"
	"github.com/shandysiswandi/esign/internal/pkg/goroutine"
	"github.com/shandysiswandi/esign/internal/pkg/hash"
	"github.com/shandysiswandi/esign/internal/pkg/instrument"
	"github.com/shandysiswandi/esign/internal/pkg/jwt"
	"github.com/shandysiswandi/esign/internal/pkg/uid"
	"github.com/shandysiswandi/esign/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultOTPTTL   = 5 * time.Minute
	defaultLinkBase = "https://web.telegram.org/k/#@e_signature_bot"
)

type LinkConfirmedEvent struct {
	LinkID      int64
	UserID      int64
	Email       string
	ChatID      int64
	ConfirmedAt time.Time
}

type repoMessaging interface {
	PublishLinkConfirmed(ctx context.Context, msg LinkConfirmedEvent) error
}

type repoDB interface {
	GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*entity.Account, error)
	CreateAccount(ctx context.Context, in entity.NewAccount) error

	UpsertOTP(ctx context.Context, otp entity.OTP) error
	GetOTP(ctx context.Context, email string) (*entity.OTP, error)
	ConsumeOTP(ctx context.Context, email, codeDigest string, now time.Time) error

	CreateLink(ctx context.Context, link entity.Link) error
	GetPendingLink(ctx context.Context, tokenDigest string) (*entity.Link, error)
	ConfirmLink(ctx context.Context, id, chatID int64, at time.Time) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	hmac          hash.Hash
	bcrypt        hash.Hash
	uid           uid.NumberID
	token         uid.StringID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager

	otpTTL     time.Duration
	linkBase   string
	randomCode func() (string, error)
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	HMAC          hash.Hash
	Bcrypt        hash.Hash
	UID           uid.NumberID
	// Token generates link tokens; it must be unguessable.
	Token      uid.StringID
	Clock      clock.Clocker
	JWT        jwt.JWT
	Instrument instrument.Instrumentation
	Goroutine  *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	otpTTL := dep.Config.GetMinute("otp.ttl_minutes")
	if otpTTL <= 0 {
		otpTTL = defaultOTPTTL
	}

	linkBase := dep.Config.GetString("telegram.link_base")
	if linkBase == "" {
		linkBase = defaultLinkBase
	}

	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		hmac:          dep.HMAC,
		bcrypt:        dep.Bcrypt,
		uid:           dep.UID,
		token:         dep.Token,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
		otpTTL:        otpTTL,
		linkBase:      linkBase,
		randomCode:    randomOTPCode,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func (s *Usecase) digest(plain string) (string, error) {
	d, err := s.hmac.Hash(plain)
	if err != nil {
		return "", err
	}
	return string(d), nil
}
