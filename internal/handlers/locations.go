package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rewardof/FieldBookingApp/internal/response"
)

func ListCountries(locations LocationSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		countries, err := locations.ListCountries(c.Request.Context())
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "", countries)
	}
}

func ListRegions(locations LocationSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		countryID, err := queryUint(c, "country")
		if err != nil {
			response.Error(c, err)
			return
		}
		regions, err := locations.ListRegions(c.Request.Context(), countryID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "", regions)
	}
}

func ListDistricts(locations LocationSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		regionID, err := queryUint(c, "region")
		if err != nil {
			response.Error(c, err)
			return
		}
		districts, err := locations.ListDistricts(c.Request.Context(), regionID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, "", districts)
	}
}
