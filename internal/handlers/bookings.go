package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rewardof/FieldBookingApp/internal/middleware"
	"github.com/rewardof/FieldBookingApp/internal/models"
	"github.com/rewardof/FieldBookingApp/internal/response"
	"github.com/rewardof/FieldBookingApp/internal/services/ports"
)

func CreateBooking(bookings BookingSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		fieldID, err := pathID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var input CreateBookingRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		b, err := bookings.CreateBooking(c.Request.Context(), fieldID, middleware.CurrentUser(c), input.StartTime, input.Hours)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusCreated, "Booking created", b)
	}
}

// ListFieldBookings returns a field's bookings, optionally filtered by
// user and status.
func ListFieldBookings(bookings BookingSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		fieldID, err := pathID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		userID, err := queryUint(c, "user")
		if err != nil {
			response.Error(c, err)
			return
		}
		filter := ports.BookingFilter{UserID: userID, Status: models.BookingStatus(c.Query("status"))}

		result, err := bookings.ListFieldBookings(c.Request.Context(), fieldID, middleware.CurrentUser(c), filter)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.RespondPage(c, result)
	}
}

func GetBooking(bookings BookingSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		fieldID, err := pathID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		bookingID, err := pathID(c, "bookingId")
		if err != nil {
			response.Error(c, err)
			return
		}

		b, err := bookings.GetBooking(c.Request.Context(), fieldID, bookingID, middleware.CurrentUser(c))
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "", b)
	}
}

func ChangeBookingStatus(bookings BookingSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		fieldID, err := pathID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		bookingID, err := pathID(c, "bookingId")
		if err != nil {
			response.Error(c, err)
			return
		}
		var input ChangeStatusRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		b, err := bookings.ChangeStatus(c.Request.Context(), fieldID, bookingID, middleware.CurrentUser(c), input.Status)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "Booking status changed", b)
	}
}
