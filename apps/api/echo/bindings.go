package echoapi

import (
	"bytes"
	"encoding/json"
	"io/ioutil"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/bookiown/backend/core"
)

var errInvalidJSONBody = errors.New("invalid JSON body")

// bindChecked verifies the request body's key set against the schema for the
// given entity kind before unmarshalling it into dst. The key-set failure
// message goes back to the client verbatim.
func bindChecked(ctx echo.Context, kind core.Kind, dst interface{}) error {
	body, err := ioutil.ReadAll(ctx.Request().Body)
	if err != nil {
		return errors.Wrap(err, "reading request body")
	}

	rec, err := core.DecodeRecord(bytes.NewReader(body))
	if err != nil {
		return core.NewValidationError(errInvalidJSONBody)
	}
	if msg := core.VerifyKeys(rec, core.Schemas[kind]); msg != "" {
		return core.NewValidationError(errors.New(msg))
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return core.NewValidationError(errInvalidJSONBody)
	}
	return nil
}
