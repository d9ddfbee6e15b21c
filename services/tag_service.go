package services

import (
	"github.com/UmaKase/umakase-backend/config"
	"github.com/UmaKase/umakase-backend/models"
)

// TagSearchOptions filters the tag catalog. Pages are 1-based, same as
// the food search.
type TagSearchOptions struct {
	Name       string
	ExcludeIDs []string
	Take       int
	Page       int
}

// SearchTags lists catalog tags, optionally narrowed by a name
// fragment and an exclusion list.
func SearchTags(opts TagSearchOptions) ([]models.Tag, error) {
	take := opts.Take
	if take <= 0 {
		take = defaultSearchTake
	}
	offset := 0
	if opts.Page > 1 {
		offset = take * (opts.Page - 1)
	}

	q := config.DB.Model(&models.Tag{})
	if opts.Name != "" {
		q = q.Where("name LIKE ?", "%"+opts.Name+"%")
	}
	if len(opts.ExcludeIDs) > 0 {
		q = q.Where("id NOT IN ?", opts.ExcludeIDs)
	}

	var tags []models.Tag
	err := q.Order("name").Limit(take).Offset(offset).Find(&tags).Error
	if err != nil {
		return nil, err
	}
	return tags, nil
}
