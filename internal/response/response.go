package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/pkg/utils"
)

const (
	StatusSuccess = "SUCCESS"
	StatusFail    = "FAIL"
)

type ErrorBody struct {
	Code string `json:"code"`
	Path string `json:"path"`
}

type Envelope struct {
	StatusCode int        `json:"status_code"`
	Status     string     `json:"status"`
	Message    string     `json:"message"`
	Data       any        `json:"data,omitempty"`
	Error      *ErrorBody `json:"error,omitempty"`
}

// Success writes data wrapped in a SUCCESS envelope.
func Success(c *gin.Context, status int, message string, data any) {
	if data == nil {
		data = gin.H{}
	}
	c.JSON(status, Envelope{
		StatusCode: status,
		Status:     StatusSuccess,
		Message:    message,
		Data:       data,
	})
}

// Fail writes a FAIL envelope and aborts the chain.
func Fail(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		StatusCode: status,
		Status:     StatusFail,
		Message:    message,
		Error:      &ErrorBody{Code: code, Path: c.Request.URL.Path},
	})
}

// BadRequest reports a malformed request body or query.
func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, CodeValidation, message)
}

const (
	CodeValidation = "validation_error"
	CodeServer     = "server_error"
	CodeNotFound   = "not_found"
	CodeAuth       = "not_authenticated"
)

type errorKind struct {
	err    error
	status int
	code   string
}

var errorKinds = []errorKind{
	{models.ErrPastStartTime, http.StatusBadRequest, "past_start_time"},
	{models.ErrDurationExceeded, http.StatusBadRequest, "duration_exceeded"},
	{models.ErrInvalidTimeOrder, http.StatusBadRequest, "invalid_time_order"},
	{models.ErrQuotaExceeded, http.StatusBadRequest, "quota_exceeded"},
	{models.ErrOverlapConflict, http.StatusConflict, "overlap_conflict"},
	{models.ErrInvalidTransition, http.StatusConflict, "invalid_transition"},

	{models.ErrOwnerRequired, http.StatusBadRequest, "owner_required"},
	{models.ErrOwnerChange, http.StatusBadRequest, "owner_change"},
	{models.ErrDimensionOutOfRange, http.StatusBadRequest, "dimension_out_of_range"},
	{models.ErrNonPositivePrice, http.StatusBadRequest, "non_positive_price"},
	{models.ErrInvalidPhoneNumber, http.StatusBadRequest, "invalid_phone_number"},

	{models.ErrFieldNotFound, http.StatusNotFound, "field_not_found"},
	{models.ErrBookingNotFound, http.StatusNotFound, "booking_not_found"},
	{models.ErrUserNotFound, http.StatusNotFound, "user_not_found"},
	{models.ErrFileNotFound, http.StatusNotFound, "file_not_found"},
	{models.ErrForbidden, http.StatusForbidden, "forbidden"},

	{models.ErrInvalidCode, http.StatusBadRequest, "invalid_code"},
	{models.ErrCodeExpired, http.StatusBadRequest, "code_expired"},
	{models.ErrCodeAlreadySent, http.StatusBadRequest, "code_already_sent"},
	{models.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials"},
	{models.ErrUserNotVerified, http.StatusUnauthorized, "user_not_verified"},
	{models.ErrUserInactive, http.StatusUnauthorized, "user_inactive"},
	{utils.ErrInvalidToken, http.StatusUnauthorized, "invalid_token"},

	{models.ErrUnsupportedFileType, http.StatusBadRequest, "unsupported_file_type"},
	{models.ErrValidation, http.StatusBadRequest, CodeValidation},
}

// Classify maps err to its HTTP status and error code. Unknown errors are
// server errors.
func Classify(err error) (int, string) {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.status, k.code
		}
	}
	return http.StatusInternalServerError, CodeServer
}

// Error writes err as a FAIL envelope. Server errors carry a generic message;
// the cause is attached to the gin context for the request logger.
func Error(c *gin.Context, err error) {
	_ = c.Error(err)

	status, code := Classify(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	Fail(c, status, code, message)
}
