package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/visionchain/screening-api/internal/anchoring"
	"github.com/visionchain/screening-api/internal/auth"
	"github.com/visionchain/screening-api/internal/chat"
	"github.com/visionchain/screening-api/internal/inference"
	"github.com/visionchain/screening-api/internal/usecase"
)

// MaxUploadSize bounds fundus uploads.
const MaxUploadSize = 10 << 20

// Anchorer is the anchoring surface the handlers drive.
type Anchorer interface {
	Anchor(ctx context.Context, screeningID, patientID, riskScore string) (*anchoring.Result, error)
	Retry(ctx context.Context, screeningID string) (*anchoring.Result, error)
}

// Dependencies collects the collaborators behind the API surface.
type Dependencies struct {
	Screenings *usecase.ScreeningUseCase
	Anchorer   Anchorer
	Assistant  *chat.Assistant
	// AnchorHealth probes the external gateway for /health; may be nil.
	AnchorHealth anchoring.Client
	HeatmapDir   string
	StoreReady   bool
}

type anchorRequest struct {
	ScreeningID string `json:"screeningId" binding:"required"`
	PatientID   string `json:"patientId" binding:"required"`
	RiskScore   string `json:"riskScore" binding:"required"`
}

type retryAnchorRequest struct {
	ScreeningID string `json:"screeningId" binding:"required"`
}

type chatRequest struct {
	Messages []chat.Message `json:"messages" binding:"required,min=1"`
}

// RegisterRoutes wires the HTTP handlers to the Gin router.
func RegisterRoutes(router *gin.Engine, deps Dependencies, adminAuth gin.HandlerFunc) {
	router.Use(corsMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message":              "Diabetic Retinopathy Screening API",
			"status":               "running",
			"database_connected":   deps.StoreReady,
			"chat_available":       deps.Assistant.Available(),
			"blockchain_available": deps.AnchorHealth != nil,
		})
	})

	router.GET("/health", func(c *gin.Context) {
		blockfrost := gin.H{"connected": false, "status": "missing_key"}
		if deps.AnchorHealth != nil {
			if err := deps.AnchorHealth.Health(c.Request.Context()); err != nil {
				blockfrost = gin.H{"connected": false, "status": err.Error()}
			} else {
				blockfrost = gin.H{"connected": true, "status": "healthy"}
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"database":   deps.StoreReady,
			"chat":       deps.Assistant.Available(),
			"blockfrost": blockfrost,
		})
	})

	router.GET("/classes", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"classes":      inference.Classes,
			"num_classes":  len(inference.Classes),
			"descriptions": inference.ClassDescriptions,
		})
	})

	router.POST("/predict", func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}
		if file.Size > MaxUploadSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds upload limit"})
			return
		}
		if contentType := file.Header.Get("Content-Type"); contentType != "" && !strings.HasPrefix(contentType, "image/") {
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": "file must be an image"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unable to open image"})
			return
		}
		defer src.Close()

		data, err := io.ReadAll(io.LimitReader(src, MaxUploadSize+1))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read image"})
			return
		}
		if len(data) > MaxUploadSize {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "image exceeds upload limit"})
			return
		}

		operator := auth.OperatorFrom(c)
		result, err := deps.Screenings.Screen(c.Request.Context(), operator, c.PostForm("patientId"), data)
		if err != nil {
			var vErr *usecase.ValidationError
			if errors.As(err, &vErr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	})

	router.GET("/heatmap/:filename", func(c *gin.Context) {
		filename := filepath.Base(c.Param("filename"))
		if filename == "." || filename == "/" || filename == ".." {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filename"})
			return
		}
		path := filepath.Join(deps.HeatmapDir, filename)
		c.FileAttachment(path, filename)
	})

	router.POST("/chat", func(c *gin.Context) {
		var req chatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if !deps.Assistant.Available() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "chat service unavailable"})
			return
		}
		reply, err := deps.Assistant.Reply(c.Request.Context(), req.Messages)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"reply": reply})
	})

	router.POST("/store-on-chain", func(c *gin.Context) {
		var req anchorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		result, err := deps.Anchorer.Anchor(c.Request.Context(), req.ScreeningID, req.PatientID, req.RiskScore)
		if err != nil {
			writeAnchorError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	})

	router.GET("/debug/anchor-logs", func(c *gin.Context) {
		screeningID := c.Query("screeningId")
		if screeningID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "screeningId is required"})
			return
		}
		logs, err := deps.Screenings.AnchorLogs(c.Request.Context(), screeningID)
		if err != nil {
			writeAnchorError(c, err)
			return
		}
		c.JSON(http.StatusOK, logs)
	})

	router.GET("/stats/today", func(c *gin.Context) {
		stats, err := deps.Screenings.TodayStats(c.Request.Context(), auth.OperatorFrom(c).ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	router.GET("/screenings/recent", func(c *gin.Context) {
		recent, err := deps.Screenings.RecentScreenings(c.Request.Context(), auth.OperatorFrom(c).ID, 5)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, recent)
	})

	router.GET("/analytics/summary", func(c *gin.Context) {
		summary, err := deps.Screenings.Analytics(c.Request.Context(), auth.OperatorFrom(c).ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, summary)
	})

	admin := router.Group("/admin", adminAuth)
	admin.POST("/retry-anchor", func(c *gin.Context) {
		var req retryAnchorRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		result, err := deps.Anchorer.Retry(c.Request.Context(), req.ScreeningID)
		if err != nil {
			writeAnchorError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	})
	admin.POST("/clear-screenings", func(c *gin.Context) {
		if err := deps.Screenings.ClearScreenings(c.Request.Context()); err != nil {
			if errors.Is(err, usecase.ErrStoreUnavailable) {
				c.JSON(http.StatusOK, gin.H{"cleared": false, "reason": "no database"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cleared": true})
	})
}

// writeAnchorError maps the anchoring error taxonomy onto HTTP statuses:
// unknown screening 404, unconfigured dependency 503, exhausted retries
// 502, anything else 500.
func writeAnchorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, anchoring.ErrScreeningNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "screening not found"})
	case errors.Is(err, anchoring.ErrStoreUnavailable), errors.Is(err, usecase.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database unavailable"})
	default:
		var upstream *anchoring.UpstreamError
		if errors.As(err, &upstream) {
			c.JSON(http.StatusBadGateway, gin.H{"error": upstream.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-User-Id, X-User-Name")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
