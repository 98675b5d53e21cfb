package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rewardof/FieldBookingApp/internal/response"
)

func GetProfile(auth AuthSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := auth.Me(c.Request.Context(), c.GetUint("userId"))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "", user)
	}
}

func UpdateProfile(auth AuthSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateProfileRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		user, err := auth.UpdateProfile(c.Request.Context(), c.GetUint("userId"), input.FullName)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "Profile updated", user)
	}
}
