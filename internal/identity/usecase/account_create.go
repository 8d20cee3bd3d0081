package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/esign/internal/identity/entity"
	"github.com/shandysiswandi/esign/internal/pkg/goerror"
)

type CreateAccountInput struct {
	Email    string      `validate:"required,email"`
	Password string      `validate:"required,password"`
	Role     entity.Role `validate:"gte=0,lte=2"`

	LegalName   string `validate:"omitempty,max=200"`
	TaxID       string `validate:"omitempty,max=50"`
	FullName    string `validate:"omitempty,min=3,max=100,alphaspace"`
	PhoneNumber string `validate:"omitempty,min=8,max=20"`
	NationalID  string `validate:"omitempty,max=50"`
}

type CreateAccountOutput struct {
	ID    int64
	Email string
	Role  entity.Role
}

func (in CreateAccountInput) fieldValues() map[string]string {
	return map[string]string{
		"legal_name":   in.LegalName,
		"tax_id":       in.TaxID,
		"full_name":    in.FullName,
		"phone_number": in.PhoneNumber,
		"national_id":  in.NationalID,
	}
}

// CreateAccount registers a company or signer account together with its
// role row in one transaction.
func (s *Usecase) CreateAccount(ctx context.Context, in CreateAccountInput) (*CreateAccountOutput, error) {
	ctx, span := s.startSpan(ctx, "CreateAccount")
	defer span.End()

	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	in.LegalName = strings.TrimSpace(in.LegalName)
	in.TaxID = strings.TrimSpace(in.TaxID)
	in.FullName = strings.TrimSpace(in.FullName)
	in.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	in.NationalID = strings.TrimSpace(in.NationalID)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}
	if !in.Role.SelfRegistrable() {
		slog.WarnContext(ctx, "role cannot self register", "role", in.Role.String())
		return nil, goerror.NewBusiness("role cannot be self registered", goerror.CodeForbidden)
	}

	values := in.fieldValues()
	var missing []string
	for _, f := range in.Role.RequiredFields() {
		if values[f] == "" {
			missing = append(missing, f, f+" is a required field")
		}
	}
	if len(missing) > 0 {
		return nil, goerror.NewInvalidInput(nil, missing...)
	}

	_, err := s.repoDB.GetAccountByEmail(ctx, in.Email)
	if err == nil {
		slog.WarnContext(ctx, "account already exists", "email", in.Email)
		return nil, goerror.NewBusiness("account with that email already exists", goerror.CodeConflict)
	}
	if !errors.Is(err, goerror.ErrNotFound) {
		slog.ErrorContext(ctx, "failed to repo get account by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	passwordHash, err := s.bcrypt.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	na := entity.NewAccount{
		Account: entity.Account{
			ID:           s.uid.Generate(),
			Email:        in.Email,
			PasswordHash: string(passwordHash),
			Role:         in.Role,
			CreatedAt:    s.clock.Now(),
		},
	}
	switch in.Role {
	case entity.RoleCompany:
		na.Company = &entity.CompanyProfile{
			ID:           s.uid.Generate(),
			LegalName:    in.LegalName,
			TaxID:        in.TaxID,
			ContactEmail: in.Email,
		}
	case entity.RoleSigner:
		na.Signer = &entity.SignerProfile{
			ID:           s.uid.Generate(),
			FullName:     in.FullName,
			PhoneNumber:  in.PhoneNumber,
			NationalID:   in.NationalID,
			ContactEmail: in.Email,
		}
	}

	err = s.repoDB.CreateAccount(ctx, na)
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "account or signer already exists", "email", in.Email)
		return nil, goerror.NewBusiness("account with that email or national id already exists", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create account", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	return &CreateAccountOutput{ID: na.Account.ID, Email: na.Account.Email, Role: na.Account.Role}, nil
}
