package echoapi

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bookiown/backend/core"
	"github.com/bookiown/backend/core/account"
)

type accountApi struct {
	deps ServerDeps
}

func registerAccountAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := accountApi{deps: deps}

	ag := g.Group("/accounts")

	// un-authed: invitees complete their signup here
	ag.POST("", api.create)

	// authed: any role fetches its own record
	ag.GET("", api.retrieve, jwt, requireRoles(account.AllRoles...))
}

type signupRequest struct {
	Account  json.RawMessage `json:"account"`
	Role     string          `json:"role"`
	InviteID string          `json:"inviteId"`
}

func (api *accountApi) create(ctx echo.Context) error {
	var data signupRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to signupRequest")
	}
	if len(data.Account) == 0 {
		return core.NewValidationError(errors.New("account is required"))
	}

	rec, err := core.DecodeRecord(bytes.NewReader(data.Account))
	if err != nil {
		return core.NewValidationError(errInvalidJSONBody)
	}
	if msg := core.VerifyKeys(rec, core.Schemas[core.KindAccount]); msg != "" {
		return core.NewValidationError(errors.New(msg))
	}

	cs := account.CompleteSignup{Role: data.Role, InviteID: data.InviteID}
	if err := json.Unmarshal(data.Account, &cs); err != nil {
		return core.NewValidationError(errInvalidJSONBody)
	}
	if err := cs.Validate(api.deps.Validate); err != nil {
		return err
	}

	created, err := api.deps.AccountSvc.CreateFromInvite(ctx.Request().Context(), cs)
	if err != nil {
		return errors.Wrap(err, "completing signup")
	}
	return ctx.JSON(http.StatusCreated, created)
}

// retrieve returns the authed account's own record; the role in the token
// decides which collection is consulted.
func (api *accountApi) retrieve(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	email := ctx.QueryParam("email")
	if email == "" {
		email = claims.Email
	}
	role := ctx.QueryParam("role")
	if role == "" {
		role = claims.Role
	}

	reqCtx := ctx.Request().Context()
	switch role {
	case account.RoleAdmin:
		adm, err := api.deps.AccountSvc.GetAdminByEmail(reqCtx, email)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, adm)
	case account.RoleTeacher:
		tch, err := api.deps.AccountSvc.GetTeacherByEmail(reqCtx, email)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, tch)
	case account.RoleVolunteer:
		vol, err := api.deps.AccountSvc.GetVolunteerByEmail(reqCtx, email)
		if err != nil {
			return err
		}
		return ctx.JSON(http.StatusOK, vol)
	}
	return core.NewValidationError(errors.New("invalid account role"))
}
