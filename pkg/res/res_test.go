package res

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{domain.NewValidationError("email", "required"), http.StatusUnprocessableEntity},
		{fmt.Errorf("extend: %w", domain.ErrNoSubscription), http.StatusUnprocessableEntity},
		{domain.NewNotFoundError("user", "u1"), http.StatusNotFound},
		{domain.ErrEmptyReport, http.StatusNotFound},
		{fmt.Errorf("%w: %q", domain.ErrUnknownPage, "x"), http.StatusNotFound},
		{fmt.Errorf("insert admins: %w", domain.ErrDuplicate), http.StatusConflict},
		{domain.NewGatewayError("select", "users", errors.New("timeout")), http.StatusBadGateway},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func TestJsonErrorResponseCarriesValidationDetails(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/admins", nil)

	JsonErrorResponse(c, domain.NewValidationError("email", "must be a valid email"), logger.NewNop(), false)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Error   string                   `json:"error"`
		Details []domain.ValidationError `json:"details"`
		Debug   string                   `json:"debug_info"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "validation failed", body.Error)
	assert.Equal(t, []domain.ValidationError{{Field: "email", Message: "must be a valid email"}}, body.Details)
	assert.Empty(t, body.Debug)
}

func TestJsonErrorResponseHidesServerErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil)

	JsonErrorResponse(c, domain.NewGatewayError("count", "users", errors.New("dial tcp: refused")), logger.NewNop(), false)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.NotContains(t, w.Body.String(), "refused")
	assert.Contains(t, w.Body.String(), "data store unavailable")
}
