// Package health reports storage reachability and lists the daily log files.
package health

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linkfolio/core/internal/middleware"
	"github.com/linkfolio/core/internal/pkg/apperr"
	"github.com/linkfolio/core/internal/pkg/response"
	"gorm.io/gorm"
)

// Pinger is satisfied by the optional Redis client.
type Pinger interface {
	Ping(ctx context.Context) error
}

type LogFile struct {
	Filename string    `json:"filename"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

type Handler struct {
	db     *gorm.DB
	redis  Pinger
	logDir string
}

// NewHandler builds the handler. redis may be nil when Redis is disabled.
func NewHandler(db *gorm.DB, redis Pinger, logDir string) *Handler {
	return &Handler{db: db, redis: redis, logDir: logDir}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	rg.GET("/health", h.health)
	rg.GET("/admin/logs", authMW, h.logs)
	rg.GET("/admin/logs/:filename", authMW, h.download)
}

func (h *Handler) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	sqlDB, err := h.db.DB()
	dbOK := err == nil && sqlDB.PingContext(ctx) == nil

	body := gin.H{"database": dbOK}
	ok := dbOK
	if h.redis != nil {
		redisOK := h.redis.Ping(ctx) == nil
		body["redis"] = redisOK
		ok = ok && redisOK
	}

	code := http.StatusOK
	body["status"] = "ok"
	if !ok {
		code = http.StatusServiceUnavailable
		body["status"] = "degraded"
	}
	c.JSON(code, body)
}

func (h *Handler) logs(c *gin.Context) {
	if !middleware.IsAdmin(c) {
		response.Unauthorized(c)
		return
	}
	files, err := ListLogFiles(h.logDir)
	if err != nil {
		response.Error(c, apperr.Internal(err))
		return
	}
	response.OK(c, gin.H{"logs": files})
}

func (h *Handler) download(c *gin.Context) {
	if !middleware.IsAdmin(c) {
		response.Unauthorized(c)
		return
	}
	path, ok := LogPath(h.logDir, c.Param("filename"))
	if !ok {
		response.BadRequest(c, "Invalid log file name")
		return
	}
	if _, err := os.Stat(path); err != nil {
		response.Error(c, apperr.NotFound("Log file"))
		return
	}
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.File(path)
}

// ListLogFiles returns the .log files in dir, newest first. A missing dir yields an empty list.
func ListLogFiles(dir string) ([]LogFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []LogFile{}, nil
		}
		return nil, err
	}

	files := make([]LogFile, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, LogFile{Filename: e.Name(), Size: info.Size(), Modified: info.ModTime()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Modified.After(files[j].Modified) })
	return files, nil
}

// LogPath joins a listed filename onto dir, rejecting anything that escapes it.
func LogPath(dir, filename string) (string, bool) {
	if filename == "" || filename != filepath.Base(filename) || !strings.HasSuffix(filename, ".log") {
		return "", false
	}
	return filepath.Join(dir, filename), true
}
