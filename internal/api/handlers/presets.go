package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"hybrid-sim/internal/api/models"
	"hybrid-sim/internal/config"
	"hybrid-sim/internal/logger"
)

// PresetHandler lists technology presets from a directory.
type PresetHandler struct {
	presetDir string
	log       logger.Logger
}

// PresetDirFromEnv returns PRESET_DIR, or ./examples/presets.
func PresetDirFromEnv() string {
	dir := os.Getenv("PRESET_DIR")
	if dir == "" {
		dir = filepath.Join("examples", "presets")
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return dir
}

func NewPresetHandler(dir string, log logger.Logger) *PresetHandler {
	return &PresetHandler{presetDir: dir, log: log}
}

// ListPresets handles GET /api/v1/presets. A missing directory yields an
// empty list.
func (h *PresetHandler) ListPresets(c *gin.Context) {
	out := []models.PresetInfo{}

	presets, skipped, err := config.ListPresets(h.presetDir)
	if err != nil {
		h.log.Warnf("read preset directory %s: %v", h.presetDir, err)
		c.JSON(http.StatusOK, gin.H{"presets": out})
		return
	}
	for name, err := range skipped {
		h.log.Warnf("skip preset %s: %v", name, err)
	}

	kind := c.Query("kind")
	for _, p := range presets {
		if kind != "" && string(p.Kind) != kind {
			continue
		}
		out = append(out, models.PresetInfo{
			ID:     p.ID,
			Name:   p.Name,
			Kind:   p.Kind,
			File:   p.File,
			Params: p.Params,
		})
	}
	c.JSON(http.StatusOK, gin.H{"presets": out})
}
