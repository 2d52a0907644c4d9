package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bookiown/backend/core"
	"github.com/bookiown/backend/core/account"
	"github.com/bookiown/backend/core/school"
)

type classApi struct {
	deps ServerDeps
}

func registerClassAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := classApi{deps: deps}

	cg := g.Group("/classes", jwt, requireRoles(account.RoleAdmin, account.RoleTeacher))
	cg.POST("", api.create)
	cg.GET("", api.query)
	cg.GET("/:id", api.retrieve)
	cg.DELETE("/:id", api.destroy)
	cg.POST("/:id/students", api.addStudent)
	cg.DELETE("/:id/students", api.removeStudent)
	cg.PATCH("/:id/delivery", api.updateDelivery)
}

type (
	removeStudentRequest struct {
		StudentID string `json:"studentId"`
	}

	deliveryRequest struct {
		EstimatedDelivery string `json:"estimatedDelivery"`
	}

	// classDetail is a Class with its student roster populated.
	classDetail struct {
		school.Class
		Students []school.Student `json:"students"`
	}
)

func (api *classApi) populate(ctx echo.Context, cls school.Class) (classDetail, error) {
	detail := classDetail{Class: cls, Students: make([]school.Student, 0, len(cls.Students))}
	for _, studentID := range cls.Students {
		st, err := api.deps.SchoolSvc.GetStudent(ctx.Request().Context(), studentID.Hex())
		if err != nil {
			if err == school.ErrStudentNotFound { // dangling reference
				continue
			}
			return classDetail{}, err
		}
		detail.Students = append(detail.Students, st)
	}
	return detail, nil
}

func (api *classApi) create(ctx echo.Context) error {
	var data school.NewClass
	if err := bindChecked(ctx, core.KindClass, &data); err != nil {
		return err
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	cls, err := api.deps.SchoolSvc.CreateClass(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating class")
	}
	return ctx.JSON(http.StatusCreated, cls)
}

func (api *classApi) query(ctx echo.Context) error {
	classes, err := api.deps.SchoolSvc.QueryClasses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying classes")
	}

	details := make([]classDetail, 0, len(classes))
	for _, cls := range classes {
		detail, err := api.populate(ctx, cls)
		if err != nil {
			return err
		}
		details = append(details, detail)
	}
	return ctx.JSON(http.StatusOK, details)
}

func (api *classApi) retrieve(ctx echo.Context) error {
	cls, err := api.deps.SchoolSvc.GetClass(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	detail, err := api.populate(ctx, cls)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, detail)
}

// destroy removes the class and everything hanging off it.
func (api *classApi) destroy(ctx echo.Context) error {
	cls, err := api.deps.SchoolSvc.RemoveClass(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cls)
}

func (api *classApi) addStudent(ctx echo.Context) error {
	var data school.NewStudent
	if err := bindChecked(ctx, core.KindStudent, &data); err != nil {
		return err
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	st, err := api.deps.SchoolSvc.AddStudentToClass(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, st)
}

func (api *classApi) removeStudent(ctx echo.Context) error {
	var data removeStudentRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to removeStudentRequest")
	}

	st, err := api.deps.SchoolSvc.RemoveStudentFromClass(ctx.Request().Context(), ctx.Param("id"), data.StudentID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *classApi) updateDelivery(ctx echo.Context) error {
	var data deliveryRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to deliveryRequest")
	}

	cls, err := api.deps.SchoolSvc.UpdateEstimatedDelivery(ctx.Request().Context(), ctx.Param("id"), data.EstimatedDelivery)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, cls)
}
