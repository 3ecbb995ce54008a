package controllers

import (
	"io"
	"strconv"

	"roomkeeper/errors"
	"roomkeeper/validator"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/goccy/go-json"
)

// parseID reads the :id path segment. Anything that is not a positive integer
// cannot name a record, so it answers 404 like an unknown id.
func parseID(c *gin.Context, entity string) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.NewAppError(errors.ErrCodeNotFound, entity+" with id "+strconv.Quote(raw)+" not found", err)
	}
	return uint(id), nil
}

// bindJSON decodes the body strictly: unknown fields and trailing data are a field error.
func bindJSON(c *gin.Context, dst interface{}) error {
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return errors.FieldError("request body is required", err)
		}
		return errors.FieldError(err.Error(), err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.FieldError("request body must contain a single JSON object", err)
	}
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return errors.NewAppError(errors.ErrCodeValidation, validator.Message(err), err)
	}
	return nil
}
