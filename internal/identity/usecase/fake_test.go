package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/esign/internal/identity/entity"
	"github.com/shandysiswandi/esign/internal/pkg/clock"
	"github.com/shandysiswandi/esign/internal/pkg/config"
	"github.com/shandysiswandi/esign/internal/pkg/goerror"
	"github.com/shandysiswandi/esign/internal/pkg/hash"
	"github.com/shandysiswandi/esign/internal/pkg/instrument"
	"github.com/shandysiswandi/esign/internal/pkg/jwt"
	"github.com/shandysiswandi/esign/internal/pkg/uid"
	"github.com/shandysiswandi/esign/internal/pkg/validator"
	"github.com/stretchr/testify/require"
)

// fakeDB keeps rows in maps and mirrors the conditional updates of the
// postgres store under one mutex.
type fakeDB struct {
	mu       sync.Mutex
	accounts map[string]entity.Account
	otps     map[string]entity.OTP
	links    map[int64]entity.Link

	upsertOTPErr   error
	confirmLinkErr error
	getAccountErr  error
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		accounts: map[string]entity.Account{},
		otps:     map[string]entity.OTP{},
		links:    map[int64]entity.Link{},
	}
}

func (f *fakeDB) GetAccountByEmail(_ context.Context, email string) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getAccountErr != nil {
		return nil, f.getAccountErr
	}
	a, ok := f.accounts[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &a, nil
}

func (f *fakeDB) GetAccountByID(_ context.Context, id int64) (*entity.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) CreateAccount(_ context.Context, in entity.NewAccount) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[in.Account.Email]; ok {
		return goerror.ErrConflict
	}
	f.accounts[in.Account.Email] = in.Account
	return nil
}

func (f *fakeDB) UpsertOTP(_ context.Context, otp entity.OTP) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertOTPErr != nil {
		return f.upsertOTPErr
	}
	f.otps[otp.Email] = otp
	return nil
}

func (f *fakeDB) GetOTP(_ context.Context, email string) (*entity.OTP, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.otps[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &o, nil
}

func (f *fakeDB) ConsumeOTP(_ context.Context, email, codeDigest string, now time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.otps[email]
	switch {
	case !ok:
		return goerror.ErrNotFound
	case o.CodeDigest != codeDigest:
		return entity.ErrOTPMismatch
	case o.Used:
		return entity.ErrOTPAlreadyUsed
	case now.After(o.ExpiresAt):
		return entity.ErrOTPExpired
	}
	o.Used = true
	f.otps[email] = o
	return nil
}

func (f *fakeDB) CreateLink(_ context.Context, link entity.Link) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.links[link.ID] = link
	return nil
}

func (f *fakeDB) GetPendingLink(_ context.Context, tokenDigest string) (*entity.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.links {
		if l.TokenDigest == tokenDigest && !l.Confirmed {
			return &l, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) ConfirmLink(_ context.Context, id, chatID int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.confirmLinkErr != nil {
		return f.confirmLinkErr
	}
	l, ok := f.links[id]
	if !ok || l.Confirmed {
		return goerror.ErrNotFound
	}
	l.Confirmed = true
	l.ChatID = &chatID
	l.ConfirmedAt = &at
	f.links[id] = l
	return nil
}

type fakeMessaging struct {
	mu     sync.Mutex
	events []LinkConfirmedEvent
	err    error
}

func (f *fakeMessaging) PublishLinkConfirmed(_ context.Context, msg LinkConfirmedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, msg)
	return nil
}

func (f *fakeMessaging) published() []LinkConfirmedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]LinkConfirmedEvent(nil), f.events...)
}

type fixture struct {
	uc    *Usecase
	db    *fakeDB
	mq    *fakeMessaging
	clock *clock.Manual
	jwt   *jwt.Symmetric
	hmac  *hash.HMACSHA256
}

var testNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(strings.Join([]string{
		"otp:",
		"  ttl_minutes: 5",
		"telegram:",
		"  link_base: https://t.me/esign_test_bot",
	}, "\n")))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	node, err := uid.NewSnowflakeNode(1)
	require.NoError(t, err)

	clk := clock.NewManual(testNow)
	issuer, err := jwt.NewHS512(jwt.Config{
		Secret: []byte(strings.Repeat("k", jwt.MinSecretLength)),
		Issuer: "esign-test",
		TTL:    time.Hour,
		Clock:  clk,
		UUID:   uid.NewUUID(),
	})
	require.NoError(t, err)

	db := newFakeDB()
	mq := &fakeMessaging{}
	hm := hash.NewHMACSHA256("otp-secret")

	uc := New(Dependency{
		RepoDB:        db,
		RepoMessaging: mq,
		Validator:     v,
		Config:        cfg,
		HMAC:          hm,
		Bcrypt:        hash.NewBcrypt(4, "pepper"),
		UID:           node,
		Token:         uid.NewRandomUUID(),
		Clock:         clk,
		JWT:           issuer,
		Instrument:    instrument.NewNoop(),
	})

	return &fixture{uc: uc, db: db, mq: mq, clock: clk, jwt: issuer, hmac: hm}
}

// codes returns randomCode replacements that hand out values in order.
func codes(values ...string) func() (string, error) {
	var mu sync.Mutex
	i := 0
	return func() (string, error) {
		mu.Lock()
		defer mu.Unlock()
		v := values[i%len(values)]
		i++
		return v, nil
	}
}

func requireCode(t *testing.T, err error, code goerror.Code) *goerror.Error {
	t.Helper()
	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)
	require.Equal(t, code, gerr.Code(), gerr.String())
	return gerr
}
