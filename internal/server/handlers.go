package server

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cleared-dev/mt940convert/internal/convert"
	"github.com/cleared-dev/mt940convert/internal/logger"
	"github.com/cleared-dev/mt940convert/web"
)

const (
	formFile       = "mt940"
	formOutputType = "outputType"
	stagedExt      = ".mt940"
)

func (s *Server) index(c *gin.Context) {
	page, err := fs.ReadFile(web.StaticFS, "static/index.html")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "page not available"})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", page)
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": s.version})
}

func (s *Server) formats(c *gin.Context) {
	type format struct {
		Tag       string `json:"tag"`
		Extension string `json:"extension"`
	}
	var out []format
	for _, f := range convert.Formats() {
		out = append(out, format{Tag: f.String(), Extension: f.Extension()})
	}
	c.JSON(http.StatusOK, gin.H{"formats": out, "parser": s.parser.Name()})
}

// upload converts the posted statement and answers with the converted file
// as an attachment. The staged upload is removed whatever the outcome.
func (s *Server) upload(c *gin.Context) {
	log := logger.FromContext(c.Request.Context())

	if c.Request.ContentLength > s.cfg.MaxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxUploadBytes)

	fh, err := c.FormFile(formFile)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}

	format, err := convert.ParseFormat(c.PostForm(formOutputType))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid output type"})
		return
	}

	staged := filepath.Join(s.cfg.UploadDir, uuid.NewString()+stagedExt)
	if err := c.SaveUploadedFile(fh, staged); err != nil {
		log.Error().Err(err).Msg("staging upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error processing file"})
		return
	}
	defer func() {
		if err := os.Remove(staged); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", staged).Msg("removing staged upload")
		}
	}()

	data, err := os.ReadFile(staged)
	if err != nil {
		log.Error().Err(err).Msg("reading staged upload")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error processing file"})
		return
	}

	res, err := convert.ConvertFormat(string(data), format, convert.WithParser(s.parser))
	if err != nil {
		log.Error().Err(err).Str("format", format.String()).Msg("conversion failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "error processing file"})
		return
	}

	name := downloadName(fh.Filename, res.Extension)
	log.Info().
		Str("file", fh.Filename).
		Str("format", format.String()).
		Int("transactions", res.Count).
		Msg("converted")

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	c.Data(http.StatusOK, format.ContentType(), res.Content)
}
