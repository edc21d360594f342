package service

import (
	"errors"

	"github.com/campusCompass/backend/internal/model"
	"gorm.io/gorm"
)

type RequestService struct {
	db *gorm.DB
}

func NewRequestService(db *gorm.DB) *RequestService {
	return &RequestService{db: db}
}

// Filter is a conjunction of list predicates; zero values mean "no filter".
type Filter struct {
	Status *model.Status
	Course string
	Search string
	Tags   []string
}

// CreateRequest carries the fields for a new peer request. Status is always
// forced to OPEN regardless of what the client sent.
type CreateRequest struct {
	Title     string
	Content   string
	Course    *string
	IsUrgent  bool
	Anonymous bool
	TagNames  []string
}

// UpdateRequest is a sparse update: nil fields are left untouched. A Course
// that is present but empty clears the stored value. A non-empty TagNames
// replaces the full link set; nil or empty leaves existing links alone.
type UpdateRequest struct {
	Title     *string
	Content   *string
	Course    *string
	IsUrgent  *bool
	Anonymous *bool
	Status    *model.Status
	TagNames  []string
}

// UpsertTagByName returns the tag with the given name, creating it if absent.
// The unique index on tags.name is the backstop for concurrent upserts: a
// create that loses the race re-reads the winning row.
func (s *RequestService) UpsertTagByName(name string) (*model.Tag, error) {
	return upsertTag(s.db, name)
}

func upsertTag(tx *gorm.DB, name string) (*model.Tag, error) {
	var tag model.Tag
	err := tx.Where("name = ?", name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	tag = model.Tag{Name: name}
	if createErr := tx.Create(&tag).Error; createErr != nil {
		var existing model.Tag
		if readErr := tx.Where("name = ?", name).First(&existing).Error; readErr == nil {
			return &existing, nil
		}
		return nil, createErr
	}
	return &tag, nil
}

// Create inserts the request with status OPEN plus one link row per tag name,
// upserting tag rows first, all inside one transaction.
func (s *RequestService) Create(in CreateRequest) (*model.PeerRequest, error) {
	req := &model.PeerRequest{
		Title:     in.Title,
		Content:   in.Content,
		Course:    in.Course,
		IsUrgent:  in.IsUrgent,
		Anonymous: in.Anonymous,
		Status:    model.StatusOpen,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(req).Error; err != nil {
			return err
		}
		return linkTags(tx, req.ID, in.TagNames)
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(req.ID)
}

// linkTags upserts each name and writes link rows in the given order.
func linkTags(tx *gorm.DB, requestID string, tagNames []string) error {
	for i, name := range tagNames {
		tag, err := upsertTag(tx, name)
		if err != nil {
			return err
		}
		link := model.TagOnRequest{RequestID: requestID, TagID: tag.ID, Position: i}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

// List evaluates the filter conjunction and returns requests newest first,
// each with its tags resolved in link order.
func (s *RequestService) List(f Filter) ([]model.PeerRequest, error) {
	query := s.db.Model(&model.PeerRequest{})
	if f.Status != nil {
		query = query.Where("status = ?", *f.Status)
	}
	if f.Course != "" {
		query = query.Where("course LIKE ?", "%"+f.Course+"%")
	}
	if f.Search != "" {
		pat := "%" + f.Search + "%"
		tagMatch := s.db.Model(&model.TagOnRequest{}).
			Select("tag_on_requests.request_id").
			Joins("JOIN tags ON tags.id = tag_on_requests.tag_id").
			Where("tags.name LIKE ?", pat)
		query = query.Where(
			s.db.Where("title LIKE ?", pat).
				Or("content LIKE ?", pat).
				Or("peer_requests.id IN (?)", tagMatch),
		)
	}
	if len(f.Tags) > 0 {
		// any of the selected tags
		linked := s.db.Model(&model.TagOnRequest{}).
			Select("tag_on_requests.request_id").
			Joins("JOIN tags ON tags.id = tag_on_requests.tag_id").
			Where("tags.name IN ?", f.Tags)
		query = query.Where("peer_requests.id IN (?)", linked)
	}

	var reqs []model.PeerRequest
	if err := query.Order("created_at DESC").Find(&reqs).Error; err != nil {
		return nil, err
	}
	if err := s.attachTags(reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

func (s *RequestService) GetByID(id string) (*model.PeerRequest, error) {
	var req model.PeerRequest
	if err := s.db.First(&req, "id = ?", id).Error; err != nil {
		return nil, err
	}
	reqs := []model.PeerRequest{req}
	if err := s.attachTags(reqs); err != nil {
		return nil, err
	}
	return &reqs[0], nil
}

// Update applies only the fields present in the sparse payload. When tag
// names are supplied the full link set is replaced inside the same
// transaction. Returns gorm.ErrRecordNotFound for an unknown id.
func (s *RequestService) Update(id string, in UpdateRequest) (*model.PeerRequest, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var req model.PeerRequest
		if err := tx.First(&req, "id = ?", id).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if in.Title != nil {
			updates["title"] = *in.Title
		}
		if in.Content != nil {
			updates["content"] = *in.Content
		}
		if in.Course != nil {
			if *in.Course == "" {
				updates["course"] = nil
			} else {
				updates["course"] = *in.Course
			}
		}
		if in.IsUrgent != nil {
			updates["is_urgent"] = *in.IsUrgent
		}
		if in.Anonymous != nil {
			updates["anonymous"] = *in.Anonymous
		}
		if in.Status != nil {
			updates["status"] = *in.Status
		}
		if len(updates) > 0 {
			if err := tx.Model(&req).Updates(updates).Error; err != nil {
				return err
			}
		}

		if len(in.TagNames) > 0 {
			if err := tx.Where("request_id = ?", id).Delete(&model.TagOnRequest{}).Error; err != nil {
				return err
			}
			return linkTags(tx, id, in.TagNames)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(id)
}

// DeleteCascade removes the request's tag links, then the request row, in one
// transaction. The storage layer has no cascade of its own.
func (s *RequestService) DeleteCascade(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var req model.PeerRequest
		if err := tx.First(&req, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("request_id = ?", id).Delete(&model.TagOnRequest{}).Error; err != nil {
			return err
		}
		return tx.Delete(&req).Error
	})
}

// attachTags resolves tag names for the given requests in link order.
func (s *RequestService) attachTags(reqs []model.PeerRequest) error {
	if len(reqs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(reqs))
	for i := range reqs {
		ids = append(ids, reqs[i].ID)
	}

	var rows []struct {
		RequestID string
		TagID     string
		Name      string
	}
	err := s.db.Table("tag_on_requests").
		Select("tag_on_requests.request_id, tags.id AS tag_id, tags.name").
		Joins("JOIN tags ON tags.id = tag_on_requests.tag_id").
		Where("tag_on_requests.request_id IN ?", ids).
		Order("tag_on_requests.request_id, tag_on_requests.position").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	byRequest := make(map[string][]model.Tag, len(reqs))
	for _, row := range rows {
		byRequest[row.RequestID] = append(byRequest[row.RequestID], model.Tag{ID: row.TagID, Name: row.Name})
	}
	for i := range reqs {
		reqs[i].Tags = byRequest[reqs[i].ID]
	}
	return nil
}
