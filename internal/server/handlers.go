package server

import (
	"net/http"
	"time"

	"github.com/apylist/apylist/internal/blog"
	"github.com/apylist/apylist/internal/directory"
	apperr "github.com/apylist/apylist/internal/errors"
	"github.com/apylist/apylist/internal/export"
	"github.com/apylist/apylist/internal/model"
	"github.com/apylist/apylist/internal/risk"
	"github.com/apylist/apylist/internal/viewstate"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type poolsResponse struct {
	Items       []model.Item        `json:"items"`
	TotalItems  int                 `json:"totalItems"`
	TotalPages  int                 `json:"totalPages"`
	CurrentPage int                 `json:"currentPage"`
	PageLinks   directory.PageLinks `json:"pageLinks"`
	ViewMode    string              `json:"viewMode"`
}

func (s *Server) respond(c *gin.Context, status int, data any, source model.SourceStatus) {
	c.JSON(status, model.Envelope{
		Version: model.EnvelopeVersion,
		Success: true,
		Data:    data,
		Meta: model.EnvelopeMeta{
			RequestID: requestID(c),
			Timestamp: time.Now().UTC(),
			Source:    source,
		},
	})
}

func (s *Server) respondError(c *gin.Context, status int, err *apperr.Error) {
	c.JSON(status, model.Envelope{
		Version: model.EnvelopeVersion,
		Success: false,
		Error: &model.ErrorBody{
			Code:    int(err.Code),
			Type:    http.StatusText(status),
			Message: err.Message,
		},
		Meta: model.EnvelopeMeta{
			RequestID: requestID(c),
			Timestamp: time.Now().UTC(),
		},
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleListPools runs the full fetch → filter → sort → paginate pipeline for
// one request. Upstream failure still answers 200 with an empty directory;
// meta.source tells the two apart.
func (s *Server) handleListPools(c *gin.Context) {
	params := directory.ParseValues(c.Request.URL.Query())
	if view := c.Query("view"); view != "" {
		s.state.SetViewMode(view)
	}

	snap := s.source.Fetch(c.Request.Context())
	res := directory.Run(snap.Items, params)

	s.respond(c, http.StatusOK, poolsResponse{
		Items:       res.Items,
		TotalItems:  res.TotalItems,
		TotalPages:  res.TotalPages,
		CurrentPage: res.CurrentPage,
		PageLinks:   directory.BuildPageLinks(res.CurrentPage, res.TotalPages),
		ViewMode:    s.state.ViewMode(),
	}, snap.Status)
}

// handleExportPools downloads the filtered, sorted list as CSV. Pagination is
// not applied: the download always covers the whole filtered set.
func (s *Server) handleExportPools(c *gin.Context) {
	params := directory.ParseValues(c.Request.URL.Query())
	snap := s.source.Fetch(c.Request.Context())

	filtered := directory.RunAll(snap.Items, params)

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+export.Filename+`"`)
	if err := export.WriteCSV(c.Writer, filtered); err != nil {
		s.log.Warn("csv export failed", zap.Error(err))
	}
}

func (s *Server) handleFilterOptions(c *gin.Context) {
	s.respond(c, http.StatusOK, gin.H{
		"chains":     directory.Chains,
		"categories": directory.Categories,
		"attributes": directory.Attributes,
		"riskLevels": risk.Levels,
		"sortBy":     []string{directory.SortByAPY, directory.SortByTVL, directory.SortByName},
		"sortOrder":  []string{directory.SortAsc, directory.SortDesc},
		"pageSize":   directory.PageSize,
	}, "")
}

func (s *Server) handleGetView(c *gin.Context) {
	s.respond(c, http.StatusOK, gin.H{"viewMode": s.state.ViewMode()}, "")
}

func (s *Server) handleSetView(c *gin.Context) {
	var body struct {
		ViewMode string `json:"viewMode"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		s.respondError(c, http.StatusBadRequest, apperr.Wrap(apperr.CodeInvalid, "invalid request body", err))
		return
	}
	if body.ViewMode != viewstate.ModeGrid && body.ViewMode != viewstate.ModeList {
		s.respondError(c, http.StatusBadRequest, apperr.New(apperr.CodeInvalid, "viewMode must be grid or list"))
		return
	}
	s.state.SetViewMode(body.ViewMode)
	s.respond(c, http.StatusOK, gin.H{"viewMode": s.state.ViewMode()}, "")
}

func (s *Server) handleGetConsent(c *gin.Context) {
	s.respond(c, http.StatusOK, gin.H{"consent": s.state.Consent()}, "")
}

func (s *Server) handleSetConsent(c *gin.Context) {
	var body struct {
		Consent string `json:"consent"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		s.respondError(c, http.StatusBadRequest, apperr.Wrap(apperr.CodeInvalid, "invalid request body", err))
		return
	}
	if body.Consent != viewstate.ConsentAccepted && body.Consent != viewstate.ConsentDeclined {
		s.respondError(c, http.StatusBadRequest, apperr.New(apperr.CodeInvalid, "consent must be accepted or declined"))
		return
	}
	s.state.SetConsent(body.Consent)
	s.respond(c, http.StatusOK, gin.H{"consent": s.state.Consent()}, "")
}

type postSummary struct {
	Slug          string        `json:"slug"`
	Metadata      blog.Metadata `json:"metadata"`
	FormattedDate string        `json:"formattedDate"`
}

func (s *Server) handleListPosts(c *gin.Context) {
	summaries := make([]postSummary, 0, len(s.posts))
	for _, p := range s.posts {
		summaries = append(summaries, postSummary{
			Slug:          p.Slug,
			Metadata:      p.Metadata,
			FormattedDate: blog.FormatDate(p.Metadata.PublishedAt, false),
		})
	}
	s.respond(c, http.StatusOK, summaries, "")
}

func (s *Server) handleGetPost(c *gin.Context) {
	post, ok := blog.Find(s.posts, c.Param("slug"))
	if !ok {
		s.respondError(c, http.StatusNotFound, apperr.New(apperr.CodeNotFound, "post not found"))
		return
	}
	s.respond(c, http.StatusOK, gin.H{
		"slug":          post.Slug,
		"metadata":      post.Metadata,
		"formattedDate": blog.FormatDate(post.Metadata.PublishedAt, true),
		"content":       post.Content,
	}, "")
}

func (s *Server) handleJoinWaitlist(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		s.respondError(c, http.StatusBadRequest, apperr.Wrap(apperr.CodeInvalid, "invalid request body", err))
		return
	}
	if err := s.signups.Add(body.Email); err != nil {
		if appErr, ok := apperr.As(err); ok && appErr.Code == apperr.CodeInvalid {
			s.respondError(c, http.StatusBadRequest, appErr)
			return
		}
		s.log.Error("waitlist signup failed", zap.Error(err))
		s.respondError(c, http.StatusInternalServerError, apperr.New(apperr.CodeInternal, "could not record signup"))
		return
	}
	s.respond(c, http.StatusCreated, gin.H{"joined": true}, "")
}
