package echoapi

import (
	"context"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bookiown/backend/core"
	"github.com/bookiown/backend/core/account"
	"github.com/bookiown/backend/core/school"
	filesvc "github.com/bookiown/backend/services/files"
)

type studentApi struct {
	deps ServerDeps
}

func registerStudentAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := studentApi{deps: deps}

	sg := g.Group("/students", jwt, requireRoles(account.RoleAdmin, account.RoleTeacher))
	sg.POST("", api.create)
	sg.GET("", api.query)
	sg.GET("/:id", api.retrieve)
	sg.PATCH("/:id", api.update)
	sg.PATCH("/:id/book-link", api.setBookLink)
	sg.POST("/:id/letters/student", api.uploadStudentLetter)
	sg.POST("/:id/letters/volunteer", api.uploadVolunteerLetter)
}

type bookLinkRequest struct {
	AssignedBookLink string `json:"assignedBookLink"`
}

func (api *studentApi) create(ctx echo.Context) error {
	var data school.NewStudent
	if err := bindChecked(ctx, core.KindStudent, &data); err != nil {
		return err
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	st, err := api.deps.SchoolSvc.CreateStudent(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, st)
}

func (api *studentApi) query(ctx echo.Context) error {
	students, err := api.deps.SchoolSvc.QueryStudents(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	st, err := api.deps.SchoolSvc.GetStudent(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, st)
}

// update replaces the student document; omitted optional fields are cleared.
func (api *studentApi) update(ctx echo.Context) error {
	var data school.NewStudent
	if err := bindChecked(ctx, core.KindStudent, &data); err != nil {
		return err
	}
	if err := data.Validate(api.deps.Validate); err != nil {
		return err
	}

	st, err := api.deps.SchoolSvc.UpdateStudent(ctx.Request().Context(), ctx.Param("id"), data)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *studentApi) setBookLink(ctx echo.Context) error {
	var data bookLinkRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to bookLinkRequest")
	}

	st, err := api.deps.SchoolSvc.SetBookLink(ctx.Request().Context(), ctx.Param("id"), data.AssignedBookLink)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, st)
}

func (api *studentApi) uploadStudentLetter(ctx echo.Context) error {
	return api.uploadLetter(ctx, "student", api.deps.SchoolSvc.SetStudentLetterLink)
}

func (api *studentApi) uploadVolunteerLetter(ctx echo.Context) error {
	return api.uploadLetter(ctx, "volunteer", api.deps.SchoolSvc.SetVolunteerLetterLink)
}

// uploadLetter stores a PDF in object storage and saves the resulting URL on
// the student. Only PDFs are accepted.
func (api *studentApi) uploadLetter(ctx echo.Context, side string, setLink func(c context.Context, id, link string) (school.Student, error)) error {
	reqCtx := ctx.Request().Context()
	st, err := api.deps.SchoolSvc.GetStudent(reqCtx, ctx.Param("id"))
	if err != nil {
		return err
	}

	fh, err := ctx.FormFile("letter")
	if err != nil {
		return core.NewValidationError(errors.New("letter file is required"))
	}
	if !isPDF(fh.Filename, fh.Header.Get(echo.HeaderContentType)) {
		return core.NewValidationError(errors.New("only PDF files are accepted"))
	}

	f, err := fh.Open()
	if err != nil {
		return errors.Wrap(err, "opening uploaded letter")
	}
	defer f.Close()

	key := filesvc.LetterKey(st.FirstName, st.LastInitial, side, st.ID.Hex(), fh.Filename)
	url, err := api.deps.Storage.Upload(reqCtx, key, "application/pdf", f)
	if err != nil {
		return errors.Wrap(err, "uploading letter")
	}

	st, err = setLink(reqCtx, st.ID.Hex(), url)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, st)
}

func isPDF(filename, contentType string) bool {
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return true
	}
	return contentType == "application/pdf"
}
