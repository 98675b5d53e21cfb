package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rewardof/FieldBookingApp/internal/middleware"
	"github.com/rewardof/FieldBookingApp/internal/response"
)

// SearchFields lists active fields filtered by the query string and ordered
// by distance from latitude/longitude unless ordering says otherwise.
func SearchFields(fields FieldSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, err := searchParams(c)
		if err != nil {
			response.Error(c, err)
			return
		}

		result, err := fields.Search(c.Request.Context(), params)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.RespondPage(c, toFieldResponses(result))
	}
}

func MyFields(fields FieldSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, err := searchParams(c)
		if err != nil {
			response.Error(c, err)
			return
		}

		result, err := fields.MyFields(c.Request.Context(), middleware.CurrentUser(c), params)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.RespondPage(c, toFieldResponses(result))
	}
}

func GetField(fields FieldSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		ref, err := referencePoint(c)
		if err != nil {
			response.Error(c, err)
			return
		}

		f, err := fields.GetField(c.Request.Context(), id, ref)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "", ToFieldResponse(f))
	}
}

func CreateField(fields FieldSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input FieldRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		f, err := fields.CreateField(c.Request.Context(), middleware.CurrentUser(c), input.toInput())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusCreated, "Field created", ToFieldResponse(f))
	}
}

func UpdateField(fields FieldSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}
		var input FieldRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			response.BadRequest(c, err.Error())
			return
		}

		f, err := fields.UpdateField(c.Request.Context(), middleware.CurrentUser(c), id, input.toInput())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "Field updated", ToFieldResponse(f))
	}
}

func DeleteField(fields FieldSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "id")
		if err != nil {
			response.Error(c, err)
			return
		}

		if err := fields.DeactivateField(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "Field deactivated", nil)
	}
}
