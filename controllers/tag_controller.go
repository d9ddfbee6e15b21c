package controllers

import (
	"net/http"
	"strconv"

	"github.com/UmaKase/umakase-backend/services"
	"github.com/UmaKase/umakase-backend/utils"

	"github.com/gin-gonic/gin"
)

// Clients page through tags with take/page in the query string and put
// already-picked tag ids in the body to keep them out of the results.
type TagListInput struct {
	Excludes []string `json:"excludes"`
}

func ListTags(c *gin.Context) {
	take, _ := strconv.Atoi(c.DefaultQuery("take", "10"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	var input TagListInput
	_ = c.ShouldBindJSON(&input)

	tags, err := services.SearchTags(services.TagSearchOptions{
		ExcludeIDs: input.Excludes,
		Take:       take,
		Page:       page,
	})
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Tag listing failed")
		return
	}

	utils.RespondOK(c, "success", gin.H{"tags": tags})
}

func SearchTags(c *gin.Context) {
	take, _ := strconv.Atoi(c.DefaultQuery("take", "10"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	var input TagListInput
	_ = c.ShouldBindJSON(&input)

	tags, err := services.SearchTags(services.TagSearchOptions{
		Name:       c.Query("name"),
		ExcludeIDs: input.Excludes,
		Take:       take,
		Page:       page,
	})
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Tag search failed")
		return
	}

	utils.RespondOK(c, "success", gin.H{"tags": tags})
}
