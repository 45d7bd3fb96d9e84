package handlers

import (
	"net/http"
	"time"

	"github.com/SscSPs/bank_ledger_app/internal/platform/config"
	"github.com/gin-gonic/gin"
)

type homeResponse struct {
	Service string    `json:"service"`
	Version string    `json:"version"`
	Storage string    `json:"storage"`
	Time    time.Time `json:"time"`
}

// getHome godoc
// @Summary Describe the service
// @Description Returns the service name, API version and storage backend in use.
// @Tags root
// @Produce json
// @Success 200 {object} homeResponse
// @Router / [get]
func getHome(cfg *config.Config) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, homeResponse{
			Service: "bank-ledger",
			Version: "v1",
			Storage: cfg.StorageDriver,
			Time:    time.Now().UTC(),
		})
	}
}

// getHealth reports liveness.
func getHealth(ctx *gin.Context) {
	ctx.String(http.StatusOK, "OK")
}
