package api

import (
	"fmt"
	"net/http"
	"strconv"

	apperrors "papas_go_backend/internal/errors"
	"papas_go_backend/internal/services"

	"github.com/gin-gonic/gin"
)

func listSchoolsHandler(schools *services.SchoolService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

		result, err := schools.ListSchools(page, limit)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respondOK(c, result)
	}
}

func getSchoolHandler(schools *services.SchoolService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Invalid school ID"))
			return
		}

		school, err := schools.GetSchoolByID(uint(id))
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		if school == nil {
			apperrors.HandleError(c, apperrors.New404Error("School not found"))
			return
		}
		respondOK(c, school)
	}
}

func searchSchoolsHandler(schools *services.SchoolService) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			apperrors.HandleError(c, apperrors.New400Error("Search query is required"))
			return
		}

		result, err := schools.SearchSchools(query)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		respondOK(c, result)
	}
}

func feeSchedulePDFHandler(schools *services.SchoolService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			apperrors.HandleError(c, apperrors.New400Error("Invalid school ID"))
			return
		}

		school, err := schools.GetSchoolByID(uint(id))
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}
		if school == nil {
			apperrors.HandleError(c, apperrors.New404Error("School not found"))
			return
		}

		pdfBytes, err := schools.FeeSchedulePDF(school)
		if err != nil {
			apperrors.HandleError(c, err)
			return
		}

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=fee-schedule-%d.pdf", school.ID))
		c.Data(http.StatusOK, "application/pdf", pdfBytes)
	}
}
