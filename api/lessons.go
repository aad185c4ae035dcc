package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/Domenick1991/lessonbooking/internal/repository"
	"github.com/Domenick1991/lessonbooking/internal/service/catalog"
	"github.com/gin-gonic/gin"
)

type LessonHandler struct {
	service catalog.CatalogUseCase
}

func NewLessonHandler(service catalog.CatalogUseCase) *LessonHandler {
	return &LessonHandler{service: service}
}

func (h *LessonHandler) Register(router gin.IRouter) {
	router.GET("/lessons", h.list)
	router.GET("/search", h.search)
	router.PUT("/lessons/:id", h.update)
}

func (h *LessonHandler) list(c *gin.Context) {
	lessons, err := h.service.List(c.Request.Context())
	if err != nil {
		log.Printf("Error fetching lessons: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch lessons"})
		return
	}
	c.JSON(http.StatusOK, lessons)
}

func (h *LessonHandler) search(c *gin.Context) {
	results, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrQueryTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": catalog.ErrQueryTooLong.Error()})
		case errors.Is(err, catalog.ErrInvalidQuery):
			c.JSON(http.StatusBadRequest, gin.H{"error": catalog.ErrInvalidQuery.Error()})
		default:
			log.Printf("Search error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed."})
		}
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *LessonHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": catalog.ErrInvalidPatch.Error()})
		return
	}

	if err := h.service.Update(c.Request.Context(), id, body); err != nil {
		switch {
		case errors.Is(err, repository.ErrLessonNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Lesson not found"})
		case errors.Is(err, repository.ErrUnknownField), errors.Is(err, catalog.ErrInvalidPatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": catalog.ErrInvalidPatch.Error()})
		default:
			log.Printf("Error updating lesson: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update lesson"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Lesson updated"})
}
