package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vwconsorcio/consorcio-backend/internal/domain/content"
	"github.com/vwconsorcio/consorcio-backend/internal/http/response"
	"github.com/vwconsorcio/consorcio-backend/internal/platform/ctxutil"
	"github.com/vwconsorcio/consorcio-backend/internal/services"
)

type BlogHandler struct {
	blog services.BlogService
}

func NewBlogHandler(blogService services.BlogService) *BlogHandler {
	return &BlogHandler{blog: blogService}
}

// GET /api/blog/posts
func (h *BlogHandler) ListPosts(c *gin.Context) {
	includeDrafts, ok := includeHidden(c)
	if !ok {
		return
	}
	out, err := h.blog.List(c.Request.Context(), includeDrafts)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, out)
}

// GET /api/blog/posts/:slug
// Admins can preview unpublished posts.
func (h *BlogHandler) GetPost(c *gin.Context) {
	ctx := c.Request.Context()
	post, err := h.blog.GetBySlug(ctx, c.Param("slug"), ctxutil.IsAdmin(ctx))
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, post)
}

// POST /api/blog/posts
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var in content.BlogPostInput
	if !bindJSON(c, &in) {
		return
	}
	post, err := h.blog.Create(c.Request.Context(), in)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, post)
}

// PUT /api/blog/posts/:id
func (h *BlogHandler) UpdatePost(c *gin.Context) {
	var patch content.BlogPostPatch
	if !bindJSON(c, &patch) {
		return
	}
	post, err := h.blog.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, post)
}
