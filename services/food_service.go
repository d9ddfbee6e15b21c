package services

import (
	"github.com/UmaKase/umakase-backend/config"
	"github.com/UmaKase/umakase-backend/models"
)

const defaultSearchTake = 10

// FoodSearchOptions filters the global catalog. Name search wins over
// tag search when both are present; pages are 1-based.
type FoodSearchOptions struct {
	Name           string
	TagIDs         []string
	TagName        string
	ExcludeTagIDs  []string
	ExcludeFoodIDs []string
	Take           int
	Page           int
}

func SearchFoods(opts FoodSearchOptions) ([]models.Food, error) {
	take := opts.Take
	if take <= 0 {
		take = defaultSearchTake
	}
	offset := 0
	if opts.Page > 1 {
		offset = take * (opts.Page - 1)
	}

	q := config.DB.Model(&models.Food{}).Preload("Tags.Tag")

	if opts.Name != "" {
		q = q.Where("name LIKE ?", "%"+opts.Name+"%")
	} else if opts.TagName != "" || len(opts.TagIDs) > 0 {
		sub := config.DB.Model(&models.TagOnFood{}).Select("food_id").
			Joins("JOIN tags ON tags.id = tag_on_foods.tag_id")
		if opts.TagName != "" && len(opts.TagIDs) > 0 {
			sub = sub.Where("tags.name LIKE ? OR tags.id IN ?", "%"+opts.TagName+"%", opts.TagIDs)
		} else if opts.TagName != "" {
			sub = sub.Where("tags.name LIKE ?", "%"+opts.TagName+"%")
		} else {
			sub = sub.Where("tags.id IN ?", opts.TagIDs)
		}
		q = q.Where("id IN (?)", sub)
	}

	if len(opts.ExcludeTagIDs) > 0 {
		excluded := config.DB.Model(&models.TagOnFood{}).Select("food_id").
			Where("tag_id IN ?", opts.ExcludeTagIDs)
		q = q.Where("id NOT IN (?)", excluded)
	}
	if len(opts.ExcludeFoodIDs) > 0 {
		q = q.Where("id NOT IN ?", opts.ExcludeFoodIDs)
	}

	var foods []models.Food
	err := q.Limit(take).Offset(offset).Find(&foods).Error
	if err != nil {
		return nil, err
	}
	return foods, nil
}

// CreateFood adds a catalog entry. Only tags that already exist are
// attached; unknown tag ids are skipped.
func CreateFood(name, altName, country, img string, tagIDs []string) (*models.Food, error) {
	if country == "" {
		country = "jp"
	}

	var tags []models.Tag
	if len(tagIDs) > 0 {
		if err := config.DB.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
			return nil, err
		}
	}

	food := models.Food{
		Name:    name,
		AltName: altName,
		Country: country,
		Img:     img,
	}
	for _, tag := range tags {
		food.Tags = append(food.Tags, models.TagOnFood{TagID: tag.ID})
	}

	if err := config.DB.Create(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}
