package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bookiown/backend/core"
	"github.com/bookiown/backend/core/account"
	"github.com/bookiown/backend/core/school"
)

type teacherApi struct {
	deps ServerDeps
}

func registerTeacherAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := teacherApi{deps: deps}

	tg := g.Group("/teachers", jwt, requireRoles(account.RoleAdmin))
	tg.POST("", api.create)
	tg.GET("", api.query)
	tg.GET("/:id", api.retrieve)
	tg.PATCH("/:id/approval", api.changeApproval)
}

// teacherDetail is a Teacher with its class references populated.
type teacherDetail struct {
	account.Teacher
	Classes []school.Class `json:"classes"`
}

func (api *teacherApi) populate(ctx echo.Context, tch account.Teacher) (teacherDetail, error) {
	detail := teacherDetail{Teacher: tch, Classes: make([]school.Class, 0, len(tch.Classes))}
	for _, classID := range tch.Classes {
		cls, err := api.deps.SchoolSvc.GetClass(ctx.Request().Context(), classID.Hex())
		if err != nil {
			if err == school.ErrClassNotFound { // dangling reference
				continue
			}
			return teacherDetail{}, err
		}
		detail.Classes = append(detail.Classes, cls)
	}
	return detail, nil
}

func (api *teacherApi) create(ctx echo.Context) error {
	var data account.NewAccount
	if err := bindChecked(ctx, core.KindTeacher, &data); err != nil {
		return err
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	tch, err := api.deps.AccountSvc.CreateTeacher(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return ctx.JSON(http.StatusCreated, tch)
}

func (api *teacherApi) query(ctx echo.Context) error {
	teachers, err := api.deps.AccountSvc.QueryTeachers(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}

	details := make([]teacherDetail, 0, len(teachers))
	for _, tch := range teachers {
		detail, err := api.populate(ctx, tch)
		if err != nil {
			return err
		}
		details = append(details, detail)
	}
	return ctx.JSON(http.StatusOK, details)
}

func (api *teacherApi) retrieve(ctx echo.Context) error {
	tch, err := api.deps.AccountSvc.GetTeacher(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	detail, err := api.populate(ctx, tch)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, detail)
}

func (api *teacherApi) changeApproval(ctx echo.Context) error {
	var data approvalRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to approvalRequest")
	}

	tch, err := api.deps.AccountSvc.ChangeTeacherApproval(ctx.Request().Context(), ctx.Param("id"), data.NewApprovalStatus)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tch)
}
