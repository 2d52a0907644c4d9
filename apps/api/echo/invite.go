package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bookiown/backend/core"
	"github.com/bookiown/backend/core/account"
	"github.com/bookiown/backend/core/invite"
)

type inviteApi struct {
	deps ServerDeps
}

func registerInviteAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := inviteApi{deps: deps}

	ig := g.Group("/invites")

	// un-authed: invitees look up and open their invite from the signup link
	ig.GET("/:id", api.retrieve)
	ig.PATCH("/:id/opened", api.open)

	// admin-only management
	ag := ig.Group("", jwt, requireRoles(account.RoleAdmin))
	ag.POST("", api.create)
	ag.GET("", api.query)
	ag.DELETE("/:id", api.destroy)
}

// inviteDetail is an Invite with its sender populated.
type inviteDetail struct {
	invite.Invite
	Sender *account.Admin `json:"sender"`
}

func (api *inviteApi) populate(ctx echo.Context, inv invite.Invite) inviteDetail {
	detail := inviteDetail{Invite: inv}
	if !inv.Sender.IsZero() {
		if adm, err := api.deps.AccountSvc.GetAdmin(ctx.Request().Context(), inv.Sender.Hex()); err == nil {
			detail.Sender = &adm
		}
	}
	return detail
}

func (api *inviteApi) create(ctx echo.Context) error {
	var data invite.NewInvite
	if err := bindChecked(ctx, core.KindInvite, &data); err != nil {
		return err
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	sender, err := api.deps.AccountSvc.GetAdminByEmail(ctx.Request().Context(), claims.Email)
	if err != nil {
		return errors.Wrap(err, "finding sending admin")
	}

	inv, err := api.deps.InviteSvc.Send(ctx.Request().Context(), data, sender.ID, sender.FirstName+" "+sender.LastName)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, inv)
}

func (api *inviteApi) query(ctx echo.Context) error {
	invites, err := api.deps.InviteSvc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying invites")
	}
	return ctx.JSON(http.StatusOK, invites)
}

func (api *inviteApi) retrieve(ctx echo.Context) error {
	inv, err := api.deps.InviteSvc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, api.populate(ctx, inv))
}

func (api *inviteApi) open(ctx echo.Context) error {
	inv, err := api.deps.InviteSvc.Open(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, inv)
}

func (api *inviteApi) destroy(ctx echo.Context) error {
	inv, err := api.deps.InviteSvc.Remove(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, inv)
}
