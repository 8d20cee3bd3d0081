package inbound

import (
	"github.com/shandysiswandi/esign/internal/identity/entity"
	"github.com/shandysiswandi/esign/internal/identity/usecase"
	"github.com/shandysiswandi/esign/internal/pkg/router"
)

// HTTPEndpoint exposes the identity workflows over HTTP.
type HTTPEndpoint struct {
	uc uc
}

// GenerateOTP issues a one-time passcode for an email.
// @Summary Generate OTP
// @Description Replaces the live passcode of the email with a new 6 digit code valid for 5 minutes.
// @Tags Identity, OTP
// @Accept json
// @Produce json
// @Param request body GenerateOTPRequest true "OTP payload"
// @Success 200 {object} router.successResponse{data=GenerateOTPResponse}
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/identity/otp/generate [post]
func (h *HTTPEndpoint) GenerateOTP(r *router.Request) (any, error) {
	var req GenerateOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.GenerateOTP(r.Context(), usecase.GenerateOTPInput{Email: req.Email})
	if err != nil {
		return nil, err
	}

	return GenerateOTPResponse{Code: resp.Code, ExpiresAt: resp.ExpiresAt}, nil
}

// VerifyOTP consumes a passcode.
// @Summary Verify OTP
// @Tags Identity, OTP
// @Accept json
// @Produce json
// @Param request body VerifyOTPRequest true "Verify payload"
// @Success 200 {object} router.successResponse
// @Failure 401 {object} router.errorResponse "Invalid code"
// @Failure 409 {object} router.errorResponse "Code already used"
// @Failure 410 {object} router.errorResponse "Code expired"
// @Router /api/v1/identity/otp/verify [post]
func (h *HTTPEndpoint) VerifyOTP(r *router.Request) (any, error) {
	var req VerifyOTPRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.VerifyOTP(r.Context(), usecase.VerifyOTPInput{Email: req.Email, Code: req.Code}); err != nil {
		return nil, err
	}

	return VerifyOTPResponse{}, nil
}

// CreateLink starts a chat link for an email.
// @Summary Create chat link
// @Tags Identity, Link
// @Accept json
// @Produce json
// @Param request body CreateLinkRequest true "Link payload"
// @Success 200 {object} router.successResponse{data=CreateLinkResponse}
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/identity/links [post]
func (h *HTTPEndpoint) CreateLink(r *router.Request) (any, error) {
	var req CreateLinkRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CreateLink(r.Context(), usecase.CreateLinkInput{Email: req.Email})
	if err != nil {
		return nil, err
	}

	return CreateLinkResponse{Token: resp.Token, Link: resp.Link}, nil
}

// ConfirmLink binds a chat to a pending link.
// @Summary Confirm chat link
// @Description Confirms the link once and returns a session token with a fresh OTP.
// @Tags Identity, Link
// @Accept json
// @Produce json
// @Param request body ConfirmLinkRequest true "Confirm payload"
// @Success 200 {object} router.successResponse{data=ConfirmLinkResponse}
// @Failure 401 {object} router.errorResponse "Invalid or already confirmed link"
// @Failure 404 {object} router.errorResponse "Account not found"
// @Router /api/v1/identity/links/confirm [post]
func (h *HTTPEndpoint) ConfirmLink(r *router.Request) (any, error) {
	var req ConfirmLinkRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.ConfirmLink(r.Context(), usecase.ConfirmLinkInput{Token: req.Token, ChatID: req.ChatID})
	if err != nil {
		return nil, err
	}

	return ConfirmLinkResponse{
		SessionToken: resp.SessionToken,
		OTPCode:      resp.OTPCode,
		OTPExpiresAt: resp.OTPExpiresAt,
	}, nil
}

// Login authenticates with email and password.
// @Summary Login
// @Tags Identity, Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse}
// @Failure 401 {object} router.errorResponse "Invalid email or password"
// @Router /api/v1/identity/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, err
	}

	return LoginResponse{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
		ExpiresIn:   resp.ExpiresIn,
	}, nil
}

// Me returns the authenticated account.
// @Summary Current account
// @Tags Identity
// @Produce json
// @Security BearerAuth
// @Success 200 {object} router.successResponse{data=MeResponse}
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Router /api/v1/identity/me [get]
func (h *HTTPEndpoint) Me(r *router.Request) (any, error) {
	resp, err := h.uc.Me(r.Context())
	if err != nil {
		return nil, err
	}

	return MeResponse{
		ID:        resp.ID,
		Email:     resp.Email,
		Role:      resp.Role.String(),
		CreatedAt: resp.CreatedAt,
	}, nil
}

// CreateAccount registers a company or signer account.
// @Summary Create account
// @Description Role 0 (company) needs legal_name and tax_id; role 2 (signer) needs full_name, phone_number and national_id.
// @Tags Identity, Account
// @Accept json
// @Produce json
// @Param request body CreateAccountRequest true "Account payload"
// @Success 201 {object} router.successResponse{data=CreateAccountResponse}
// @Failure 403 {object} router.errorResponse "Role cannot self register"
// @Failure 409 {object} router.errorResponse "Account already exists"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Router /api/v1/identity/accounts [post]
func (h *HTTPEndpoint) CreateAccount(r *router.Request) (any, error) {
	var req CreateAccountRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.CreateAccount(r.Context(), usecase.CreateAccountInput{
		Email:       req.Email,
		Password:    req.Password,
		Role:        entity.Role(req.Role),
		LegalName:   req.LegalName,
		TaxID:       req.TaxID,
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		NationalID:  req.NationalID,
	})
	if err != nil {
		return nil, err
	}

	return CreateAccountResponse{ID: resp.ID, Email: resp.Email, Role: resp.Role.String()}, nil
}
