package inbound

import (
	"context"

	"github.com/shandysiswandi/esign/internal/identity/usecase"
	"github.com/shandysiswandi/esign/internal/pkg/router"
)

type uc interface {
	GenerateOTP(ctx context.Context, in usecase.GenerateOTPInput) (*usecase.GenerateOTPOutput, error)
	VerifyOTP(ctx context.Context, in usecase.VerifyOTPInput) error

	CreateLink(ctx context.Context, in usecase.CreateLinkInput) (*usecase.CreateLinkOutput, error)
	ConfirmLink(ctx context.Context, in usecase.ConfirmLinkInput) (*usecase.ConfirmLinkOutput, error)

	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)
	Me(ctx context.Context) (*usecase.MeOutput, error)
	CreateAccount(ctx context.Context, in usecase.CreateAccountInput) (*usecase.CreateAccountOutput, error)
}

// PublicEndpoints are served without a bearer token.
var PublicEndpoints = []string{
	"/api/v1/identity/otp/generate",
	"/api/v1/identity/otp/verify",
	"/api/v1/identity/links",
	"/api/v1/identity/links/confirm",
	"/api/v1/identity/login",
	"/api/v1/identity/accounts",
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// OTP
	r.POST("/api/v1/identity/otp/generate", end.GenerateOTP)
	r.POST("/api/v1/identity/otp/verify", end.VerifyOTP)

	// Chat links
	r.POST("/api/v1/identity/links", end.CreateLink)
	r.POST("/api/v1/identity/links/confirm", end.ConfirmLink)

	// Accounts
	r.POST("/api/v1/identity/login", end.Login)
	r.POST("/api/v1/identity/accounts", end.CreateAccount)
	r.GET("/api/v1/identity/me", end.Me) // need authenticated
}
