package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/peopledesk/peopledesk/internal/models"
	"github.com/peopledesk/peopledesk/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestWriteServiceError_StatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			"invalid transition",
			&services.InvalidTransitionError{From: models.StagePending, To: models.StageApproved},
			http.StatusBadRequest,
		},
		{
			"missing field",
			&services.MissingFieldError{Field: "scheduled_date"},
			http.StatusBadRequest,
		},
		{
			"invalid reference",
			&services.InvalidReferenceError{Entity: "employee", Ref: "ghost"},
			http.StatusBadRequest,
		},
		{
			"forbidden",
			&services.ForbiddenError{Reason: "only managers can schedule reviews"},
			http.StatusForbidden,
		},
		{
			"not found",
			&services.NotFoundError{Entity: "review", Ref: "42"},
			http.StatusNotFound,
		},
		{
			"concurrent modification",
			&services.ConcurrentModificationError{ReviewID: 42, Expected: models.StagePending},
			http.StatusConflict,
		},
		{
			"unrecognized error",
			errors.New("boom"),
			http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest("GET", "/test", nil)

			writeServiceError(c, tt.err)

			if w.Code != tt.want {
				t.Errorf("status = %d, expected %d", w.Code, tt.want)
			}
		})
	}
}
