package handlers

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-library-backend/internal/application"
	"github.com/oksasatya/go-library-backend/internal/domain/entity"
	repo "github.com/oksasatya/go-library-backend/internal/domain/repository"
	"github.com/oksasatya/go-library-backend/pkg/response"
	"github.com/oksasatya/go-library-backend/pkg/validation"
)

const maxCoverSize = 5 << 20

var coverTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

type BookHandler struct {
	Svc    *application.BookService
	Logger *logrus.Logger
}

func NewBookHandler(svc *application.BookService, logger *logrus.Logger) *BookHandler {
	return &BookHandler{Svc: svc, Logger: logger}
}

type NamedRef struct {
	ID   int64  `json:"id"`
	Name string `json:"nome"`
}

type BookResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"titulo"`
	Description string    `json:"descricao,omitempty"`
	CoverURL    string    `json:"urlCapa,omitempty"`
	Author      *NamedRef `json:"autor"`
	Category    *NamedRef `json:"categoria"`
}

func toBookResponse(b *entity.Book) BookResponse {
	out := BookResponse{ID: b.ID, Title: b.Title, Description: b.Description, CoverURL: b.CoverURL}
	if b.Author != nil {
		out.Author = &NamedRef{ID: b.Author.ID, Name: b.Author.Name}
	}
	if b.Category != nil {
		out.Category = &NamedRef{ID: b.Category.ID, Name: b.Category.Name}
	}
	return out
}

type listBooksQuery struct {
	Title      string `form:"titulo" binding:"max=200"`
	CategoryID int64  `form:"categoria" binding:"omitempty,id"`
	AuthorID   int64  `form:"autor" binding:"omitempty,id"`
}

func bookIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"id": "must be a positive id"})
		return 0, false
	}
	return id, true
}

// List GET /api/books?titulo=&categoria=&autor=
func (h *BookHandler) List(c *gin.Context) {
	var q listBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	books, err := h.Svc.Search(c.Request.Context(), repo.BookFilter{
		Title:      strings.TrimSpace(q.Title),
		CategoryID: q.CategoryID,
		AuthorID:   q.AuthorID,
	})
	if err != nil {
		writeError(c, h.Logger, "list books", err)
		return
	}
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, toBookResponse(b))
	}
	response.Success(c, http.StatusOK, out, "books", map[string]any{"count": len(out)})
}

// Get GET /api/books/:id
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := bookIDParam(c)
	if !ok {
		return
	}
	b, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, application.ErrBookNotFound) {
			response.Error[any](c, http.StatusNotFound, err.Error(), nil)
			return
		}
		writeError(c, h.Logger, "get book", err)
		return
	}
	response.Success(c, http.StatusOK, toBookResponse(b), "book", nil)
}

// Search GET /api/books/search?q=&size=
func (h *BookHandler) Search(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "invalid query", map[string]string{"q": "is required"})
		return
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	hits, err := h.Svc.SearchCatalog(c.Request.Context(), q, size)
	if err != nil {
		writeError(c, h.Logger, "search catalog", err)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results", map[string]any{"count": len(hits)})
}

// UploadCover POST /api/books/:id/cover (multipart field "file")
func (h *BookHandler) UploadCover(c *gin.Context) {
	id, ok := bookIDParam(c)
	if !ok {
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"file": "is required"})
		return
	}
	contentType, allowed := coverTypes[strings.ToLower(filepath.Ext(fh.Filename))]
	if !allowed {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", map[string]string{"file": "must be a jpg, png or webp image"})
		return
	}
	if fh.Size > maxCoverSize {
		response.Error[any](c, http.StatusRequestEntityTooLarge, "cover too large", map[string]string{"file": "must be at most 5MB"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		writeError(c, h.Logger, "open cover", err)
		return
	}
	defer func() { _ = f.Close() }()

	url, err := h.Svc.UploadCover(c.Request.Context(), id, f, fh.Filename, contentType)
	if err != nil {
		if errors.Is(err, application.ErrBookNotFound) {
			response.Error[any](c, http.StatusNotFound, err.Error(), nil)
			return
		}
		writeError(c, h.Logger, "upload cover", err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"urlCapa": url}, "cover uploaded", nil)
}
