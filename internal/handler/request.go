package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/campusCompass/backend/internal/model"
	"github.com/campusCompass/backend/internal/service"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const urgentTag = "Urgent"

type RequestHandler struct {
	requests *service.RequestService
}

func NewRequestHandler(requests *service.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

// requestBody is the wire payload for create and patch. Pointer fields
// distinguish "absent" from "present but zero" so patches stay sparse.
type requestBody struct {
	Title     *string  `json:"title"`
	Content   *string  `json:"content"`
	Course    *string  `json:"course"`
	Tags      []string `json:"tags"`
	IsUrgent  *bool    `json:"isUrgent"`
	Anonymous *bool    `json:"anonymous"`
	Status    *string  `json:"status"`
}

func requestJSON(r *model.PeerRequest) gin.H {
	return gin.H{
		"id":        r.ID,
		"title":     r.Title,
		"content":   r.Content,
		"course":    r.Course,
		"isUrgent":  r.IsUrgent,
		"anonymous": r.Anonymous,
		"status":    r.Status,
		"createdAt": r.CreatedAt,
		"updatedAt": r.UpdatedAt,
		"tags":      r.TagNames(),
	}
}

// GET /api/peer-requests
func (h *RequestHandler) List(c *gin.Context) {
	var f service.Filter
	if token := c.Query("status"); token != "" {
		status := model.ParseStatusToken(token)
		f.Status = &status
	}
	f.Course = c.Query("course")
	f.Search = c.Query("search")
	f.Tags = splitTags(c.QueryArray("tags"))

	reqs, err := h.requests.List(f)
	if err != nil {
		InternalError(c, err.Error())
		return
	}

	list := make([]gin.H, 0, len(reqs))
	for i := range reqs {
		list = append(list, requestJSON(&reqs[i]))
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/peer-requests
func (h *RequestHandler) Create(c *gin.Context) {
	var body requestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, "Missing body")
		return
	}

	// Status-only payloads bypass the required-field check (the client
	// reuses this shape when closing a request).
	if body.Status == nil {
		if emptyTrimmed(body.Title) || emptyTrimmed(body.Content) {
			BadRequest(c, "Title and content are required")
			return
		}
	}

	tagNames := dedupeTags(body.Tags)
	if body.IsUrgent != nil && *body.IsUrgent {
		tagNames = ensureTag(tagNames, urgentTag)
	}

	in := service.CreateRequest{
		Course:   normalizeCourse(body.Course),
		TagNames: tagNames,
	}
	if body.Title != nil {
		in.Title = *body.Title
	}
	if body.Content != nil {
		in.Content = *body.Content
	}
	if body.IsUrgent != nil {
		in.IsUrgent = *body.IsUrgent
	}
	if body.Anonymous != nil {
		in.Anonymous = *body.Anonymous
	}

	req, err := h.requests.Create(in)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, requestJSON(req))
}

// PATCH /api/peer-requests?id=<id>
func (h *RequestHandler) Update(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		BadRequest(c, "Missing id")
		return
	}

	var body requestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		BadRequest(c, "Missing body")
		return
	}

	if body.Status == nil {
		if emptyTrimmed(body.Title) || emptyTrimmed(body.Content) {
			BadRequest(c, "Title and content are required")
			return
		}
	}

	var status *model.Status
	if body.Status != nil {
		s := model.Status(*body.Status)
		if !s.Valid() {
			BadRequest(c, "Invalid status")
			return
		}
		status = &s
	}

	tagNames := dedupeTags(body.Tags)
	if body.IsUrgent != nil && *body.IsUrgent {
		tagNames = ensureTag(tagNames, urgentTag)
	}

	in := service.UpdateRequest{
		Title:     body.Title,
		Content:   body.Content,
		Course:    body.Course,
		IsUrgent:  body.IsUrgent,
		Anonymous: body.Anonymous,
		Status:    status,
		TagNames:  tagNames,
	}

	req, err := h.requests.Update(id, in)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c, "Request not found")
		return
	}
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, requestJSON(req))
}

// DELETE /api/peer-requests?id=<id>
func (h *RequestHandler) Delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		BadRequest(c, "Missing id")
		return
	}

	err := h.requests.DeleteCascade(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c, "Request not found")
		return
	}
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	c.Status(http.StatusNoContent)
}

func emptyTrimmed(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func normalizeCourse(course *string) *string {
	if course == nil || *course == "" {
		return nil
	}
	return course
}

// splitTags flattens repeated tags params, each of which may itself be a
// comma-separated list.
func splitTags(values []string) []string {
	var tags []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				tags = append(tags, part)
			}
		}
	}
	return tags
}

// dedupeTags drops empty names and duplicates, keeping first-seen order.
func dedupeTags(names []string) []string {
	var out []string
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func ensureTag(names []string, name string) []string {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	return append(names, name)
}
