package controllers_test

import (
	"net/http"
	"testing"

	"github.com/UmaKase/umakase-backend/config"
	"github.com/UmaKase/umakase-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagEndpoints(t *testing.T) {
	r := newTestServer(t)

	var spicy models.Tag
	for _, name := range []string{"spicy", "sweet", "sour"} {
		tag := models.Tag{Name: name}
		require.NoError(t, config.DB.Create(&tag).Error)
		if name == "spicy" {
			spicy = tag
		}
	}

	w := postJSON(r, "/api/v1/tag/", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tags, _ := decodeData(t, w)["tags"].([]any)
	assert.Len(t, tags, 3)

	w = postJSON(r, "/api/v1/tag/", gin.H{"excludes": []string{spicy.ID}}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tags, _ = decodeData(t, w)["tags"].([]any)
	assert.Len(t, tags, 2)

	w = postJSON(r, "/api/v1/tag/search?name=sw", nil, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tags, _ = decodeData(t, w)["tags"].([]any)
	require.Len(t, tags, 1)
	first, _ := tags[0].(map[string]any)
	assert.Equal(t, "sweet", first["name"])
}
