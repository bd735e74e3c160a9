package validate

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"modelhub/internal/core"
	"modelhub/internal/dto"
	cErr "modelhub/internal/pkg/error"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProviders(t *testing.T) {
	got, err := ParseProviders([]string{"openai, Groq", "openai", ""})
	require.NoError(t, err)
	assert.Equal(t, []core.ProviderName{core.ProviderOpenAI, core.ProviderGroq}, got)

	_, err = ParseProviders([]string{"openai,acme"})
	assert.ErrorContains(t, err, "acme")

	got, err = ParseProviders(nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBindURI_UsesCustomMessages(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "model", Value: ""}}

	var req dto.ModelURIDto
	cause, respErr := BindURI(c, &req)
	require.Error(t, cause)
	appErr, ok := respErr.(*cErr.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.HttpCode())
	assert.Equal(t, "model id is required", appErr.ErrorDesc())
}

func TestBindQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?refresh=true", nil)

	var q dto.ListModelsQueryDto
	cause, _ := BindQuery(c, &q)
	require.NoError(t, cause)
	assert.True(t, q.Refresh)

	c.Request = httptest.NewRequest(http.MethodGet, "/?refresh=maybe", nil)
	cause, respErr := BindQuery(c, &dto.ListModelsQueryDto{})
	require.Error(t, cause)
	assert.Equal(t, http.StatusBadRequest, respErr.(*cErr.Error).HttpCode())
}
