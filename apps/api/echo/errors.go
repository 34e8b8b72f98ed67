package echoapi

import (
	"net/http"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/classquest/classquest/core"
	"github.com/classquest/classquest/core/assessment"
	"github.com/classquest/classquest/core/quest"
	"github.com/classquest/classquest/core/user"
)

// error kinds
const (
	kindNoQuestionsAvailable = "no_questions_available"
	kindNoValidAnswers       = "no_valid_answers"
	kindDataIntegrity        = "data_integrity"
	kindStoreUnavailable     = "store_unavailable"
	kindNotFound             = "not_found"
	kindInvalid              = "invalid"
)

var (
	errUnauthorized  = echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	errHttpForbidden = echo.NewHTTPError(http.StatusForbidden, "permission denied")
)

// ErrorResponse is the body of a non validation error.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}
		exposeErr := true

		logServerError := func(msg string) {
			var usr user.User
			if claims, cErr := getContextClaims(ctx); cErr == nil {
				usr.ID = claims.Subject
				usr.Email = claims.Email
			}
			logger.Error(msg, errors.Wrap(err, msg), usr)
		}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr == middleware.ErrJWTMissing {
				code = http.StatusUnauthorized
				message = origErr.Message
				break
			}
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[fieldKey(vErr)] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		case *core.IntegrityError:
			code = http.StatusInternalServerError
			message = ErrorResponse{Error: origErr.Error(), Kind: kindDataIntegrity}
			logServerError("data integrity error")
		case *core.StoreError:
			code = http.StatusServiceUnavailable
			message = ErrorResponse{Error: "storage is temporarily unavailable", Kind: kindStoreUnavailable}
			exposeErr = false
			logServerError("store unavailable")
		default:
			switch origErr {
			case assessment.ErrNoQuestionsAvailable:
				code = http.StatusNotFound
				message = ErrorResponse{Error: origErr.Error(), Kind: kindNoQuestionsAvailable}
			case assessment.ErrNoValidAnswers:
				code = http.StatusBadRequest
				message = ErrorResponse{Error: origErr.Error(), Kind: kindNoValidAnswers}
			case user.ErrClassroomNotFound, quest.ErrNotFound:
				code = http.StatusNotFound
				message = ErrorResponse{Error: origErr.Error(), Kind: kindNotFound}
			case quest.ErrAlreadyCompleted, quest.ErrExpired:
				code = http.StatusBadRequest
				message = ErrorResponse{Error: origErr.Error(), Kind: kindInvalid}
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg
				logServerError(msg)

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug && exposeErr {
			message = err.Error()
		}
		if m, ok := message.(string); ok {
			message = ErrorResponse{Error: m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

// fieldKey names a failed field by its path below the validated struct, eg. "answers[1].selected_option".
func fieldKey(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	if ns == "" {
		return fe.Field()
	}
	return ns
}
