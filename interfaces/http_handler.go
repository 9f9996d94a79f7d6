package interfaces

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"resume-screener/domain"
	"resume-screener/usecase"
)

const analyzeErrorDetails = "Please check your configuration and try again"

type HTTPHandler struct {
	Screening *usecase.Screening
	Admin     *usecase.Admin
	Log       *logrus.Logger
}

func NewHTTPHandler(router *gin.Engine, screening *usecase.Screening, admin *usecase.Admin, log *logrus.Logger) *HTTPHandler {
	h := &HTTPHandler{Screening: screening, Admin: admin, Log: log}

	router.GET("/health", h.Health)

	api := router.Group("/api")
	{
		api.GET("/jobs", h.ListJobs)
		api.POST("/jobs/:id/apply", h.Apply)
		api.POST("/analyze-resume", h.AnalyzeResume)
		api.POST("/extract-text", h.ExtractText)
		api.POST("/extract-text-from-url", h.ExtractTextFromURL)

		api.POST("/admin/login", h.Login)
		api.POST("/admin/logout", h.Logout)

		admin := api.Group("/admin", h.RequireAdmin())
		admin.GET("/jobs", h.AdminListJobs)
		admin.POST("/jobs", h.CreateJob)
		admin.DELETE("/jobs/:id", h.DeleteJob)
		admin.GET("/applications", h.ListApplications)
		admin.GET("/dashboard", h.Dashboard)
	}
	return h
}

func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HTTPHandler) ListJobs(c *gin.Context) {
	jobs, err := h.Screening.ListJobs(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, err, nil)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// Apply accepts multipart full_name + resume and runs the whole pipeline.
func (h *HTTPHandler) Apply(c *gin.Context) {
	resume, err := formUpload(c, "resume")
	if err != nil {
		respondError(c, h.Log, err, nil)
		return
	}

	out, err := h.Screening.Apply(c.Request.Context(), usecase.ApplyInput{
		JobID:    c.Param("id"),
		FullName: c.PostForm("full_name"),
		Resume:   resume,
	})
	if err != nil {
		respondError(c, h.Log, err, nil)
		return
	}
	c.JSON(http.StatusCreated, out)
}

type analyzeRequest struct {
	ApplicationID string `json:"applicationId"`
	ResumeText    string `json:"resumeText"`
	JDURL         string `json:"jdUrl"`
}

func (h *HTTPHandler) AnalyzeResume(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.Log, domain.Reason(domain.ErrValidation, "Missing required fields"), nil)
		return
	}

	result, err := h.Screening.AnalyzeApplication(c.Request.Context(), req.ApplicationID, req.ResumeText, req.JDURL)
	if err != nil {
		respondError(c, h.Log, err, gin.H{"details": analyzeErrorDetails})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *HTTPHandler) ExtractText(c *gin.Context) {
	file, err := formUpload(c, "file")
	if err != nil {
		respondError(c, h.Log, err, nil)
		return
	}

	doc, err := h.Screening.ExtractText(c.Request.Context(), file)
	if err != nil {
		respondError(c, h.Log, err, nil)
		return
	}
	c.JSON(http.StatusOK, doc)
}

type extractURLRequest struct {
	URL string `json:"url"`
}

func (h *HTTPHandler) ExtractTextFromURL(c *gin.Context) {
	var req extractURLRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondError(c, h.Log, err, nil)
		return
	}

	doc, err := h.Screening.ExtractTextFromURL(c.Request.Context(), req.URL)
	if err != nil {
		respondError(c, h.Log, err, nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"text":     doc.Text,
		"url":      req.URL,
		"filename": doc.Filename,
	})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *HTTPHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondError(c, h.Log, err, nil)
		return
	}

	token, expires, err := h.Admin.Login(req.Username, req.Password)
	if err != nil {
		respondError(c, h.Log, err, nil)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, token, int(time.Until(expires).Seconds()), "/", "", c.Request.TLS != nil, true)
	c.JSON(http.StatusOK, gin.H{"token": token, "expires_at": expires})
}

func (h *HTTPHandler) Logout(c *gin.Context) {
	if tok := sessionToken(c); tok != "" {
		h.Admin.Logout(tok)
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", c.Request.TLS != nil, true)
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) AdminListJobs(c *gin.Context) {
	jobs, err := h.Admin.ListJobs(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, err, nil)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *HTTPHandler) CreateJob(c *gin.Context) {
	jd, err := formUpload(c, "jd_file")
	if err != nil {
		respondError(c, h.Log, err, nil)
		return
	}

	job, err := h.Admin.CreateJob(c.Request.Context(), usecase.CreateJobInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		JD:          jd,
	})
	if err != nil {
		respondError(c, h.Log, err, nil)
		return
	}
	c.JSON(http.StatusCreated, job)
}

func (h *HTTPHandler) DeleteJob(c *gin.Context) {
	if err := h.Admin.DeleteJob(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.Log, err, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *HTTPHandler) ListApplications(c *gin.Context) {
	var f domain.ApplicationFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		respondError(c, h.Log, domain.Reason(domain.ErrValidation, "invalid filter: %v", err), nil)
		return
	}

	apps, err := h.Admin.ListApplications(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.Log, err, nil)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *HTTPHandler) Dashboard(c *gin.Context) {
	d, err := h.Admin.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, err, nil)
		return
	}
	c.JSON(http.StatusOK, d)
}

// bindOptionalJSON decodes the body into req. An empty body leaves req zero
// valued so the use case reports the missing fields.
func bindOptionalJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return domain.Reason(domain.ErrValidation, "Invalid request body")
	}
	return nil
}

// formUpload reads a multipart file field. A missing field yields an empty
// Upload so the use case can report it.
func formUpload(c *gin.Context, field string) (usecase.Upload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return usecase.Upload{}, nil
	}
	if header.Size > domain.MaxFileSize {
		return usecase.Upload{}, domain.ErrFileTooLarge
	}
	return readUpload(header)
}

func readUpload(header *multipart.FileHeader) (usecase.Upload, error) {
	f, err := header.Open()
	if err != nil {
		return usecase.Upload{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, domain.MaxFileSize+1))
	if err != nil {
		return usecase.Upload{}, err
	}
	if len(data) > domain.MaxFileSize {
		return usecase.Upload{}, domain.ErrFileTooLarge
	}
	return usecase.Upload{Filename: header.Filename, Data: data}, nil
}
