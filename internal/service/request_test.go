package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/campusCompass/backend/internal/config"
	"github.com/campusCompass/backend/internal/database"
	"github.com/campusCompass/backend/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(&config.DatabaseConfig{Driver: "sqlite", Path: dsn}, zap.NewNop())
	require.NoError(t, err)
	return db
}

func strptr(s string) *string { return &s }

func createRequest(t *testing.T, s *RequestService, title string, tags ...string) *model.PeerRequest {
	t.Helper()
	req, err := s.Create(CreateRequest{Title: title, Content: title + " content", TagNames: tags})
	require.NoError(t, err)
	return req
}

func TestCreateForcesOpenStatus(t *testing.T) {
	s := NewRequestService(newTestDB(t))

	req, err := s.Create(CreateRequest{Title: "Need help", Content: "Binary trees", TagNames: []string{"Labs"}})
	require.NoError(t, err)

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, model.StatusOpen, req.Status)
	assert.Equal(t, []string{"Labs"}, req.TagNames())
	assert.False(t, req.CreatedAt.IsZero())
}

func TestUpsertTagByNameReusesRow(t *testing.T) {
	db := newTestDB(t)
	s := NewRequestService(db)

	first, err := s.UpsertTagByName("Exam Prep")
	require.NoError(t, err)
	second, err := s.UpsertTagByName("Exam Prep")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&model.Tag{}).Where("name = ?", "Exam Prep").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateSharesTagRows(t *testing.T) {
	db := newTestDB(t)
	s := NewRequestService(db)

	a := createRequest(t, s, "first", "Labs")
	b := createRequest(t, s, "second", "Labs")
	require.NotEqual(t, a.ID, b.ID)

	var tagCount, linkCount int64
	require.NoError(t, db.Model(&model.Tag{}).Count(&tagCount).Error)
	require.NoError(t, db.Model(&model.TagOnRequest{}).Count(&linkCount).Error)
	assert.EqualValues(t, 1, tagCount)
	assert.EqualValues(t, 2, linkCount)
}

func TestListNewestFirst(t *testing.T) {
	s := NewRequestService(newTestDB(t))

	for _, title := range []string{"oldest", "middle", "newest"} {
		createRequest(t, s, title)
		time.Sleep(2 * time.Millisecond)
	}

	reqs, err := s.List(Filter{})
	require.NoError(t, err)
	require.Len(t, reqs, 3)
	assert.Equal(t, "newest", reqs[0].Title)
	assert.Equal(t, "oldest", reqs[2].Title)
}

func TestListStatusFilter(t *testing.T) {
	s := NewRequestService(newTestDB(t))

	open := createRequest(t, s, "still open")
	closedReq := createRequest(t, s, "done")
	closed := model.StatusClosed
	_, err := s.Update(closedReq.ID, UpdateRequest{Status: &closed})
	require.NoError(t, err)

	st := model.StatusOpen
	reqs, err := s.List(Filter{Status: &st})
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, open.ID, reqs[0].ID)

	st = model.StatusClosed
	reqs, err = s.List(Filter{Status: &st})
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, closedReq.ID, reqs[0].ID)
}

func TestListCourseSubstring(t *testing.T) {
	s := NewRequestService(newTestDB(t))

	_, err := s.Create(CreateRequest{Title: "sorting", Content: "quicksort", Course: strptr("CS 201 Algorithms")})
	require.NoError(t, err)
	_, err = s.Create(CreateRequest{Title: "essay", Content: "thesis", Course: strptr("ENG 101")})
	require.NoError(t, err)
	createRequest(t, s, "no course at all")

	reqs, err := s.List(Filter{Course: "201"})
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "sorting", reqs[0].Title)
}

func TestSearchMatchesTitleContentOrTagName(t *testing.T) {
	s := NewRequestService(newTestDB(t))

	createRequest(t, s, "recursion basics")
	_, err := s.Create(CreateRequest{Title: "stuck", Content: "my recursion never terminates"})
	require.NoError(t, err)
	_, err = s.Create(CreateRequest{Title: "lab partner", Content: "anyone free", TagNames: []string{"Recursion Help"}})
	require.NoError(t, err)
	createRequest(t, s, "unrelated", "General")

	reqs, err := s.List(Filter{Search: "recursion"})
	require.NoError(t, err)
	assert.Len(t, reqs, 3)

	reqs, err = s.List(Filter{Search: "nosuchterm"})
	require.NoError(t, err)
	assert.Empty(t, reqs)
}

func TestTagsFilterIsUnion(t *testing.T) {
	s := NewRequestService(newTestDB(t))

	a := createRequest(t, s, "a", "Labs")
	b := createRequest(t, s, "b", "Exam Prep")
	createRequest(t, s, "c", "General")

	reqs, err := s.List(Filter{Tags: []string{"Labs", "Exam Prep"}})
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	ids := []string{reqs[0].ID, reqs[1].ID}
	assert.Contains(t, ids, a.ID)
	assert.Contains(t, ids, b.ID)
}

func TestUpdateIsSparse(t *testing.T) {
	s := NewRequestService(newTestDB(t))

	req, err := s.Create(CreateRequest{Title: "before", Content: "keep me", Course: strptr("CS 201")})
	require.NoError(t, err)

	updated, err := s.Update(req.ID, UpdateRequest{Title: strptr("after")})
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title)
	assert.Equal(t, "keep me", updated.Content)
	require.NotNil(t, updated.Course)
	assert.Equal(t, "CS 201", *updated.Course)
}

func TestUpdateEmptyCourseClearsValue(t *testing.T) {
	s := NewRequestService(newTestDB(t))

	req, err := s.Create(CreateRequest{Title: "t", Content: "c", Course: strptr("CS 201")})
	require.NoError(t, err)

	updated, err := s.Update(req.ID, UpdateRequest{Title: strptr("t"), Content: strptr("c"), Course: strptr("")})
	require.NoError(t, err)
	assert.Nil(t, updated.Course)
}

func TestUpdateStatusOnlyKeepsTags(t *testing.T) {
	s := NewRequestService(newTestDB(t))

	req := createRequest(t, s, "tagged", "Labs", "General")

	closed := model.StatusClosed
	updated, err := s.Update(req.ID, UpdateRequest{Status: &closed})
	require.NoError(t, err)
	assert.Equal(t, model.StatusClosed, updated.Status)
	assert.Equal(t, []string{"Labs", "General"}, updated.TagNames())
	assert.Equal(t, "tagged", updated.Title)
}

func TestUpdateReplacesTagLinks(t *testing.T) {
	db := newTestDB(t)
	s := NewRequestService(db)

	req := createRequest(t, s, "retagged", "Labs", "General")

	updated, err := s.Update(req.ID, UpdateRequest{
		Title:    strptr("retagged"),
		Content:  strptr("retagged content"),
		TagNames: []string{"Exam Prep"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Exam Prep"}, updated.TagNames())

	var linkCount int64
	require.NoError(t, db.Model(&model.TagOnRequest{}).Where("request_id = ?", req.ID).Count(&linkCount).Error)
	assert.EqualValues(t, 1, linkCount)
}

func TestUpdateUnknownID(t *testing.T) {
	s := NewRequestService(newTestDB(t))

	closed := model.StatusClosed
	_, err := s.Update("missing", UpdateRequest{Status: &closed})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDeleteCascadeRemovesLinks(t *testing.T) {
	db := newTestDB(t)
	s := NewRequestService(db)

	req := createRequest(t, s, "doomed", "Labs")
	require.NoError(t, s.DeleteCascade(req.ID))

	_, err := s.GetByID(req.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var linkCount, tagCount int64
	require.NoError(t, db.Model(&model.TagOnRequest{}).Count(&linkCount).Error)
	require.NoError(t, db.Model(&model.Tag{}).Count(&tagCount).Error)
	assert.EqualValues(t, 0, linkCount)
	// the shared tag vocabulary survives request deletion
	assert.EqualValues(t, 1, tagCount)
}

func TestDeleteUnknownIDLeavesOthersIntact(t *testing.T) {
	db := newTestDB(t)
	s := NewRequestService(db)

	survivor := createRequest(t, s, "survivor", "Labs")

	err := s.DeleteCascade("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var linkCount int64
	require.NoError(t, db.Model(&model.TagOnRequest{}).Where("request_id = ?", survivor.ID).Count(&linkCount).Error)
	assert.EqualValues(t, 1, linkCount)
}
