package controllers

import (
	"net/http"
	"strconv"

	"github.com/UmaKase/umakase-backend/services"
	"github.com/UmaKase/umakase-backend/utils"

	"github.com/gin-gonic/gin"
)

// SearchFoods queries the global catalog. No token required.
func SearchFoods(c *gin.Context) {
	take, _ := strconv.Atoi(c.DefaultQuery("take", "10"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	foods, err := services.SearchFoods(services.FoodSearchOptions{
		Name:           c.Query("name"),
		TagName:        c.Query("tagName"),
		TagIDs:         c.QueryArray("tagIds"),
		ExcludeTagIDs:  c.QueryArray("excludeTagIds"),
		ExcludeFoodIDs: c.QueryArray("excludeFoodIds"),
		Take:           take,
		Page:           page,
	})
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Search failed")
		return
	}

	utils.RespondOK(c, "success", gin.H{"foods": foods})
}

// AddFood creates a catalog entry from a multipart form with an image.
func AddFood(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		utils.RespondError(c, http.StatusBadRequest, "Food name is required")
		return
	}
	altName := c.PostForm("altName")
	country := c.PostForm("country")
	tagIDs := c.PostFormArray("tagIds")

	file, err := c.FormFile("image")
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Please upload a file")
		return
	}

	img, err := utils.UploadFoodImage(file)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Image upload failed")
		return
	}

	food, err := services.CreateFood(name, altName, country, img, tagIDs)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Food creation failed")
		return
	}

	utils.RespondOK(c, "Created", gin.H{"newFood": food})
}
