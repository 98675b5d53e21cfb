package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rewardof/FieldBookingApp/internal/middleware"
	"github.com/rewardof/FieldBookingApp/internal/response"
)

// UploadFile stores the multipart "file" part and returns its File record.
func UploadFile(files FileSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		header, err := c.FormFile("file")
		if err != nil {
			response.BadRequest(c, "file is required")
			return
		}

		f, err := files.UploadImage(c.Request.Context(), middleware.CurrentUser(c), header)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusCreated, "File uploaded", f)
	}
}
