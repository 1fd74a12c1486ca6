package api

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/PhanMy23520965/LaLuneBakery/app"
	"github.com/PhanMy23520965/LaLuneBakery/config"
	"github.com/PhanMy23520965/LaLuneBakery/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	application *app.App
	initErr     error
	once        sync.Once
)

func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		cfg := config.LoadConfig()
		logger, err := config.NewLogger(cfg)
		if err != nil {
			logger = zap.NewNop()
		}

		application, initErr = app.New(context.Background(), cfg, logger)
		if initErr != nil {
			logger.Error("Failed to initialize application", zap.Error(initErr))
		}
	})
}

// Handler is the serverless entry point. Connections are opened once per
// instance and reused across invocations.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(models.ErrorResponse{
			Success: false,
			Message: "Service unavailable",
		})
		return
	}
	application.Router.ServeHTTP(w, r)
}
