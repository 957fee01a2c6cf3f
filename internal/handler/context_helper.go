package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/reflective-room/pkg/errors"
)

// rowParam reads the 1-based submission row from the path.
func rowParam(c *gin.Context) (int, error) {
	row, err := strconv.Atoi(c.Param("row"))
	if err != nil || row < 1 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "row must be a positive integer")
	}
	return row, nil
}

func wantsPDF(c *gin.Context) bool {
	return c.Query("format") == "pdf"
}
