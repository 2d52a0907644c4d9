package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bookiown/backend/core"
	"github.com/bookiown/backend/core/account"
	"github.com/bookiown/backend/core/school"
)

type volunteerApi struct {
	deps ServerDeps
}

func registerVolunteerAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := volunteerApi{deps: deps}

	vg := g.Group("/volunteers", jwt, requireRoles(account.RoleAdmin))
	vg.POST("", api.create)
	vg.GET("", api.query)
	// static routes before "/:id"
	vg.PATCH("/match", api.match)
	vg.PATCH("/unmatch", api.unmatch)
	vg.GET("/:id", api.retrieve)
	vg.PATCH("/:id/approval", api.changeApproval)
}

type (
	matchRequest struct {
		VolunteerID    string   `json:"volunteerId"`
		StudentIDArray []string `json:"studentIdArray"`
	}

	unmatchRequest struct {
		VolunteerID string `json:"volunteerId"`
		StudentID   string `json:"studentId"`
	}

	// volunteerDetail is a Volunteer with its student references populated.
	volunteerDetail struct {
		account.Volunteer
		MatchedStudents []school.Student `json:"matchedStudents"`
	}
)

func (api *volunteerApi) populate(ctx echo.Context, vol account.Volunteer) (volunteerDetail, error) {
	detail := volunteerDetail{Volunteer: vol, MatchedStudents: make([]school.Student, 0, len(vol.MatchedStudents))}
	for _, studentID := range vol.MatchedStudents {
		st, err := api.deps.SchoolSvc.GetStudent(ctx.Request().Context(), studentID.Hex())
		if err != nil {
			if err == school.ErrStudentNotFound { // dangling reference
				continue
			}
			return volunteerDetail{}, err
		}
		detail.MatchedStudents = append(detail.MatchedStudents, st)
	}
	return detail, nil
}

func (api *volunteerApi) create(ctx echo.Context) error {
	var data account.NewAccount
	if err := bindChecked(ctx, core.KindVolunteer, &data); err != nil {
		return err
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	vol, err := api.deps.AccountSvc.CreateVolunteer(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating volunteer")
	}
	return ctx.JSON(http.StatusCreated, vol)
}

func (api *volunteerApi) query(ctx echo.Context) error {
	volunteers, err := api.deps.AccountSvc.QueryVolunteers(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying volunteers")
	}

	details := make([]volunteerDetail, 0, len(volunteers))
	for _, vol := range volunteers {
		detail, err := api.populate(ctx, vol)
		if err != nil {
			return err
		}
		details = append(details, detail)
	}
	return ctx.JSON(http.StatusOK, details)
}

func (api *volunteerApi) retrieve(ctx echo.Context) error {
	vol, err := api.deps.AccountSvc.GetVolunteer(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	detail, err := api.populate(ctx, vol)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, detail)
}

func (api *volunteerApi) changeApproval(ctx echo.Context) error {
	var data approvalRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to approvalRequest")
	}

	vol, err := api.deps.AccountSvc.ChangeVolunteerApproval(ctx.Request().Context(), ctx.Param("id"), data.NewApprovalStatus)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, vol)
}

func (api *volunteerApi) match(ctx echo.Context) error {
	var data matchRequest
	if err := bindChecked(ctx, core.KindMatch, &data); err != nil {
		return err
	}

	res, err := api.deps.MatchSvc.Match(ctx.Request().Context(), data.VolunteerID, data.StudentIDArray)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *volunteerApi) unmatch(ctx echo.Context) error {
	var data unmatchRequest
	if err := bindChecked(ctx, core.KindUnmatch, &data); err != nil {
		return err
	}

	res, err := api.deps.MatchSvc.Unmatch(ctx.Request().Context(), data.VolunteerID, data.StudentID)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, res)
}
