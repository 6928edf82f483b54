package util_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/dev-mohitbeniwal/ems/api/model"
	"github.com/dev-mohitbeniwal/ems/api/util"
)

func TestPrincipalRoundTrip(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, ok := util.GetPrincipal(c)
	assert.False(t, ok)
	_, ok = util.GetUserIDFromContext(c)
	assert.False(t, ok)

	p := model.Principal{ID: "u1", Role: model.RoleHR}
	util.SetPrincipal(c, p)

	got, ok := util.GetPrincipal(c)
	assert.True(t, ok)
	assert.Equal(t, p, got)
	id, ok := util.GetUserIDFromContext(c)
	assert.True(t, ok)
	assert.Equal(t, "u1", id)
}

func TestRespondWithError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/policies/x", nil)

	util.RespondWithError(c, http.StatusNotFound, "Policy not found", errors.New("missing"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Policy not found"}`, w.Body.String())
	assert.True(t, c.IsAborted())
}
