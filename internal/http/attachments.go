package http

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tasktracker/internal/domain"
	"tasktracker/internal/service"
)

const attachmentURLTTL = 15 * time.Minute

func (h *Handler) uploadAttachment(c *gin.Context) {
	if h.storage == nil || h.bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "storage service not configured"})
		return
	}

	taskID, ok := pathID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "file is required"})
		return
	}

	if _, err := h.tasks.GetTask(c.Request.Context(), taskID); err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	defer file.Close()

	name := filepath.Base(fileHeader.Filename)
	key := attachmentKey(h.prefix, taskID, name)
	contentType := fileHeader.Header.Get("Content-Type")

	if _, err := h.storage.Upload(c.Request.Context(), h.bucket, key, file, contentType); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	att := &domain.Attachment{
		TaskID:      taskID,
		FileName:    name,
		ContentType: contentType,
		Size:        fileHeader.Size,
		S3Key:       key,
	}
	if _, err := h.tasks.AddAttachment(c.Request.Context(), att); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, attachmentToResponse(*att, ""))
}

func (h *Handler) listAttachments(c *gin.Context) {
	taskID, ok := pathID(c)
	if !ok {
		return
	}

	atts, err := h.tasks.ListAttachments(c.Request.Context(), taskID)
	if err != nil {
		if errors.Is(err, service.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	resp := make([]AttachmentResponse, len(atts))
	for i := range atts {
		var url string
		if h.storage != nil && h.bucket != "" {
			if u, err := h.storage.GetObjectURL(c.Request.Context(), h.bucket, atts[i].S3Key, attachmentURLTTL); err == nil {
				url = u
			}
		}
		resp[i] = attachmentToResponse(atts[i], url)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) deleteAttachment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	att, err := h.tasks.GetAttachment(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrAttachmentNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	if h.storage != nil && h.bucket != "" && att.S3Key != "" {
		if err := h.storage.Delete(c.Request.Context(), h.bucket, att.S3Key); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}
	}

	if err := h.tasks.DeleteAttachment(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrAttachmentNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Attachment deleted successfully"})
}

func attachmentKey(prefix string, taskID int64, fileName string) string {
	key := fmt.Sprintf("task-%d/%s-%s", taskID, uuid.NewString(), fileName)
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return key
	}
	return prefix + "/" + key
}

type AttachmentResponse struct {
	ID          int64  `json:"id"`
	TaskID      int64  `json:"task_id"`
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	URL         string `json:"url,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func attachmentToResponse(att domain.Attachment, url string) AttachmentResponse {
	return AttachmentResponse{
		ID:          att.ID,
		TaskID:      att.TaskID,
		FileName:    att.FileName,
		ContentType: att.ContentType,
		Size:        att.Size,
		URL:         url,
		CreatedAt:   att.CreatedAt.Format(time.RFC3339),
	}
}
