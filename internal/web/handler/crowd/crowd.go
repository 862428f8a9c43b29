// Package crowd provides the JSON endpoints for Crowd authentication events.
package crowd

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/crowdlink/crowdlink/internal/accounts"
	"github.com/crowdlink/crowdlink/internal/crowd"
	"github.com/crowdlink/crowdlink/internal/db/models"
	"github.com/crowdlink/crowdlink/internal/web/handler"
)

const (
	// Path is the base path of the crowd api.
	Path = "/api/crowd"

	// AuthenticatePath resolves an identity event.
	AuthenticatePath = "/authenticate"

	// AccountsPath creates the account for a pending resolution.
	AccountsPath = "/accounts"

	// ExternalErrorMessage is the only detail users get when a store fails.
	ExternalErrorMessage = "external authentication failed"
)

// Authenticator is the part of crowd.Authenticator the handler needs.
type Authenticator interface {
	ResolveAccount(ctx context.Context, id crowd.Identity) (crowd.Result, error)
	Authenticate(ctx context.Context, id crowd.Identity) (crowd.Result, crowd.Report, error)
	AfterCreateAccount(ctx context.Context, userID uint64, id crowd.Identity, pendingUID string) (crowd.Report, error)
}

// AccountCreator creates local accounts.
type AccountCreator interface {
	Create(ctx context.Context, attrs accounts.Attrs) (*models.User, error)
}

// Service is the crowd api handler service.
type Service struct {
	auth     Authenticator
	accounts AccountCreator
}

var (
	// Handler is the crowd api handler.
	Handler = Service{}
)

// IdentityRequest is the identity event as posted by the handshake layer.
type IdentityRequest struct {
	UID    string   `json:"uid" validate:"required,max=100"`
	Name   string   `json:"name" validate:"max=255"`
	Email  string   `json:"email" validate:"omitempty,email,max=255"`
	Groups []string `json:"groups" validate:"dive,required"`
}

// CreateAccountRequest is an identity event plus an optional username override.
type CreateAccountRequest struct {
	IdentityRequest
	Username string `json:"username" validate:"omitempty,max=100"`
}

// AuthenticateResponse is returned by the authenticate endpoint.
type AuthenticateResponse struct {
	Result crowd.Result `json:"result"`
	Groups crowd.Report `json:"groups"`
}

// CreateAccountResponse is returned by the accounts endpoint.
type CreateAccountResponse struct {
	Account *models.User `json:"account"`
	Groups  crowd.Report `json:"groups"`
}

// Init registers the routes on router.
func (s *Service) Init(router fiber.Router, auth Authenticator, accts AccountCreator) {
	if router == nil || auth == nil || accts == nil {
		log.Fatal().Msg(handler.ErrNilDepsFatalLogMsg)
		return
	}

	s.auth = auth
	s.accounts = accts

	router.Post(AuthenticatePath, s.authenticate)
	router.Post(AccountsPath, s.createAccount)
}

func (r IdentityRequest) identity() crowd.Identity {
	return crowd.NewIdentity(r.UID, r.Name, r.Email, r.Groups)
}

func (s *Service) authenticate(c fiber.Ctx) error {
	var req IdentityRequest
	if err := c.Bind().JSON(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request: "+err.Error())
	}

	res, report, err := s.auth.Authenticate(c.Context(), req.identity())
	if err != nil {
		return mapError(err)
	}

	return c.JSON(AuthenticateResponse{Result: res, Groups: report})
}

func (s *Service) createAccount(c fiber.Ctx) error {
	var req CreateAccountRequest
	if err := c.Bind().JSON(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request: "+err.Error())
	}

	ctx := c.Context()
	id := req.identity()

	res, err := s.auth.ResolveAccount(ctx, id)
	if err != nil {
		return mapError(err)
	}

	if res.Account != nil {
		return fiber.NewError(fiber.StatusConflict, "account already exists")
	}

	username := req.Username
	if username == "" {
		username = res.Username
	}

	user, err := s.accounts.Create(ctx, accounts.Attrs{
		Username:   username,
		Name:       res.Name,
		Email:      res.Email,
		AuthSource: models.AuthSourceCrowd,
	})
	if err != nil {
		return mapError(err)
	}

	report, err := s.auth.AfterCreateAccount(ctx, user.ID, id, res.PendingUID)
	if err != nil {
		return mapError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(CreateAccountResponse{Account: user, Groups: report})
}

func mapError(err error) error {
	switch {
	case errors.Is(err, crowd.ErrUIDEmpty), errors.Is(err, accounts.ErrUsernameEmpty):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, crowd.ErrLinkConflict):
		return fiber.NewError(fiber.StatusConflict, "crowd uid already linked to another account")
	case errors.Is(err, accounts.ErrAccountExists):
		return fiber.NewError(fiber.StatusConflict, "account already exists")
	default:
		log.Error().Err(err).Msg("crowd request failed")
		return fiber.NewError(fiber.StatusBadGateway, ExternalErrorMessage)
	}
}
