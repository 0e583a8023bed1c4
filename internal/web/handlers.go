package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Protocol-Lattice/docassist/internal/ctxlog"
	"github.com/Protocol-Lattice/docassist/pkg/assistant"
	"github.com/Protocol-Lattice/docassist/pkg/credentials"
	"github.com/Protocol-Lattice/docassist/pkg/gather"
	"github.com/Protocol-Lattice/docassist/pkg/models"
	"github.com/Protocol-Lattice/docassist/pkg/upload"
)

type filePayload struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type sourcesPayload struct {
	URLs []string `json:"urls"`
	// URLText is the newline-separated form of URLs.
	URLText string        `json:"url_text"`
	Files   []filePayload `json:"files"`
}

func (p sourcesPayload) urls() []string {
	return append(gather.CleanURLs(p.URLs), gather.ParseURLs(p.URLText)...)
}

func (p sourcesPayload) files() []upload.File {
	out := make([]upload.File, len(p.Files))
	for i, f := range p.Files {
		out[i] = upload.FromBytes(f.Name, []byte(f.Content))
	}
	return out
}

type generateRequest struct {
	sourcesPayload
	Instruction string `json:"instruction"`
}

type imageRequest struct {
	Prompt string `json:"prompt"`
}

type credentialRequest struct {
	Value string `json:"value"`
}

type contextResponse struct {
	Context string         `json:"context"`
	Entries []gather.Entry `json:"entries"`
	Errors  []string       `json:"errors"`
}

func (s *Server) handleListCredentials(c *gin.Context) {
	out := gin.H{}
	for _, slot := range credentials.Slots() {
		v, err := s.store.Get(c.Request.Context(), slot)
		if err != nil {
			writeError(c, err)
			return
		}
		out[slot] = credentials.Mask(v)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleSetCredential(c *gin.Context) {
	name := c.Param("name")
	if !credentials.ValidSlot(name) {
		c.JSON(http.StatusNotFound, gin.H{"error": credentials.ErrUnknownSlot.Error()})
		return
	}
	var req credentialRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Value == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "value is required"})
		return
	}
	if err := s.store.Set(c.Request.Context(), name, req.Value); err != nil {
		writeError(c, err)
		return
	}
	ctxlog.FromContext(c.Request.Context()).Info("credential saved", "slot", name, "key", credentials.Mask(req.Value))
	c.JSON(http.StatusOK, gin.H{name: credentials.Mask(req.Value)})
}

func (s *Server) handleClearCredential(c *gin.Context) {
	name := c.Param("name")
	if !credentials.ValidSlot(name) {
		c.JSON(http.StatusNotFound, gin.H{"error": credentials.ErrUnknownSlot.Error()})
		return
	}
	if err := s.store.Clear(c.Request.Context(), name); err != nil {
		writeError(c, err)
		return
	}
	ctxlog.FromContext(c.Request.Context()).Info("credential cleared", "slot", name)
	c.Status(http.StatusNoContent)
}

func (s *Server) handleContext(c *gin.Context) {
	var req sourcesPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b := s.assistant.GatherContext(c.Request.Context(), req.urls(), req.files())
	c.JSON(http.StatusOK, contextResponse{Context: b.Text(), Entries: nonNil(b.Entries), Errors: b.Messages()})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var resp gin.H
	err := s.pool.Do(ctx, func() error {
		res, err := s.assistant.GenerateDocument(ctx, documentRequest(req))
		if err != nil {
			return err
		}
		errs := []string{}
		if res.Context != nil {
			errs = res.Context.Messages()
		}
		resp = gin.H{"document": res.Document, "errors": errs}
		return nil
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleImage(c *gin.Context) {
	var req imageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	var res *models.ImageResult
	err := s.pool.Do(ctx, func() error {
		var err error
		res, err = s.assistant.GenerateImage(ctx, req.Prompt)
		return err
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// writeError maps the error taxonomy onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	var (
		perr  *models.ProviderError
		noImg *models.NoImageProducedError
	)
	switch {
	case errors.Is(err, models.ErrMissingCredential):
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrEmptyPrompt):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &noImg):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": models.ErrNoImageProduced.Error(), "text": noImg.Text})
	case errors.As(err, &perr), errors.Is(err, models.ErrMalformedResponse):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		ctxlog.FromContext(c.Request.Context()).Error("request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func documentRequest(req generateRequest) assistant.DocumentRequest {
	return assistant.DocumentRequest{
		Instruction: req.Instruction,
		URLs:        req.urls(),
		Files:       req.files(),
	}
}
