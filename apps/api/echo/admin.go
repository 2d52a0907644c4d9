package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bookiown/backend/core"
	"github.com/bookiown/backend/core/account"
)

type adminApi struct {
	deps ServerDeps
}

func registerAdminAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := adminApi{deps: deps}

	ag := g.Group("/admins", jwt, requireRoles(account.RoleAdmin))
	ag.POST("", api.create)
	ag.GET("", api.query)
	ag.GET("/:id", api.retrieve)
	ag.PATCH("/:id/approval", api.changeApproval)
}

// approvalRequest is shared by the admin, teacher and volunteer approval
// endpoints.
type approvalRequest struct {
	NewApprovalStatus account.ApprovalStatus `json:"newApprovalStatus"`
}

func (api *adminApi) create(ctx echo.Context) error {
	var data account.NewAccount
	if err := bindChecked(ctx, core.KindAdmin, &data); err != nil {
		return err
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	adm, err := api.deps.AccountSvc.CreateAdmin(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating admin")
	}
	return ctx.JSON(http.StatusCreated, adm)
}

func (api *adminApi) query(ctx echo.Context) error {
	admins, err := api.deps.AccountSvc.QueryAdmins(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying admins")
	}
	return ctx.JSON(http.StatusOK, admins)
}

func (api *adminApi) retrieve(ctx echo.Context) error {
	adm, err := api.deps.AccountSvc.GetAdmin(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, adm)
}

func (api *adminApi) changeApproval(ctx echo.Context) error {
	var data approvalRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to approvalRequest")
	}

	adm, err := api.deps.AccountSvc.ChangeAdminApproval(ctx.Request().Context(), ctx.Param("id"), data.NewApprovalStatus)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, adm)
}
