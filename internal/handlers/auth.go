package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rewardof/FieldBookingApp/internal/response"
	"github.com/rewardof/FieldBookingApp/internal/services"
)

func SendOTP(auth AuthSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SendOTPRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		user, codeType, err := auth.SendOTP(c.Request.Context(), services.Contact{
			Email:       input.Email,
			PhoneNumber: input.PhoneNumber,
		})
		if err != nil {
			response.Error(c, err)
			return
		}

		response.Success(c, http.StatusOK, "Verification code sent", gin.H{
			"username":  user.Username,
			"code_type": codeType,
		})
	}
}

func VerifyOTP(auth AuthSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input VerifyOTPRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		res, err := auth.VerifyOTP(c.Request.Context(), services.Contact{
			Email:       input.Email,
			PhoneNumber: input.PhoneNumber,
		}, input.Code)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.Success(c, http.StatusOK, "Successfully verified", res)
	}
}

// Login is the password login used by field owners and admins.
func Login(auth AuthSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		res, err := auth.Login(c.Request.Context(), input.Username, input.Password)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.Success(c, http.StatusOK, "Login successful", res)
	}
}
