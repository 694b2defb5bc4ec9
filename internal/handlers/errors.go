package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/peopledesk/peopledesk/internal/services"
	"github.com/peopledesk/peopledesk/pkg/response"
)

// writeServiceError maps domain errors from the services layer to HTTP
// responses. Anything unrecognized is a 500.
func writeServiceError(c *gin.Context, err error) {
	var (
		invalidTransition *services.InvalidTransitionError
		missingField      *services.MissingFieldError
		forbidden         *services.ForbiddenError
		notFound          *services.NotFoundError
		invalidReference  *services.InvalidReferenceError
		concurrent        *services.ConcurrentModificationError
	)

	switch {
	case errors.As(err, &invalidTransition), errors.As(err, &missingField), errors.As(err, &invalidReference):
		response.BadRequest(c, err.Error())
	case errors.As(err, &forbidden):
		response.Forbidden(c, err.Error())
	case errors.As(err, &notFound):
		response.NotFound(c, err.Error())
	case errors.As(err, &concurrent):
		response.Conflict(c, err.Error())
	default:
		response.ServerError(c, err.Error())
	}
}
