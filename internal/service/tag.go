package service

import (
	"github.com/campusCompass/backend/internal/model"
	"gorm.io/gorm"
)

// DefaultVocabulary is the starter tag set offered by the filter bar.
var DefaultVocabulary = []string{
	"Assignment Help",
	"Study Group",
	"Topic Explanation",
	"Career Advice",
	"Resume Review",
	"Labs",
	"Exam Prep",
	"General",
}

type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

func (s *TagService) List() ([]model.Tag, error) {
	var tags []model.Tag
	if err := s.db.Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// Seed upserts the given names into the tag vocabulary. Safe to run
// repeatedly; existing rows are reused.
func (s *TagService) Seed(names []string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, name := range names {
			if _, err := upsertTag(tx, name); err != nil {
				return err
			}
		}
		return nil
	})
}
