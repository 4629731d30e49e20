package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/resto_api/internal/utils"
)

// bindStrict decodes the JSON body into obj, rejecting unknown fields and
// trailing data.
func bindStrict(c *gin.Context, obj interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", utils.ErrInvalidRequest)
		}
		return fmt.Errorf("%w: %v", utils.ErrInvalidRequest, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: unexpected data after JSON body", utils.ErrInvalidRequest)
	}
	return nil
}

// pathID parses the :id route parameter. Anything but a positive integer is MISSING_ID.
func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, utils.ErrMissingID
	}
	return id, nil
}

// respondError maps a service error onto the response envelope.
func respondError(c *gin.Context, err error, action string) {
	if appErr, ok := utils.AsAppError(err); ok {
		utils.Error(c, http.StatusBadRequest, appErr.Code, err.Error())
		return
	}
	if errors.Is(err, utils.ErrNotFound) {
		utils.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
		return
	}

	log.Error().Err(err).Str("path", c.FullPath()).Msg(action + " failed")
	utils.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to "+action)
}
