package backend

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/lib/pq"

	appErrors "github.com/noah-isme/trainer-console/pkg/errors"
)

const (
	sqlstateInsufficientPrivilege = "42501"
	sqlstateIntegrityClass        = "23"
)

// ClassifySecondary turns a secondary store failure into a typed error using the
// driver's SQLSTATE code. Errors that are already typed pass through.
func ClassifySecondary(err error) *appErrors.Error {
	if err == nil {
		return nil
	}
	var typed *appErrors.Error
	if errors.As(err, &typed) {
		return typed
	}
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Wrap(err, appErrors.ErrNotFound.Code, http.StatusNotFound, "record not found in secondary store")
	}
	if errors.Is(err, driver.ErrBadConn) {
		return appErrors.Network(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return appErrors.Network(err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		switch {
		case code == sqlstateInsufficientPrivilege:
			return appErrors.Wrap(err, appErrors.ErrForbidden.Code, http.StatusForbidden, "secondary store denied permission")
		case strings.HasPrefix(code, sqlstateIntegrityClass):
			return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "secondary store rejected the data: "+pqErr.Message)
		}
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "secondary store request failed")
}
