package api

import (
	"net/http"
	"time"

	"infinite-experiment/logbook/internal/auth"
	"infinite-experiment/logbook/internal/common"
	"infinite-experiment/logbook/internal/logging"
	"infinite-experiment/logbook/internal/middleware"
)

// RankSyncResult is the payload of a manually triggered rank sync
type RankSyncResult struct {
	TriggeredBy string `json:"triggered_by"`
	TriggeredAt string `json:"triggered_at"`
	CompletedAt string `json:"completed_at"`
	DurationMs  int    `json:"duration_ms"`
	Pilots      int    `json:"pilots"`
	Repaired    int    `json:"repaired"`
	Failed      int    `json:"failed"`
}

// TriggerRankSync handles POST /api/v1/jobs/rank-sync
func (h *Handlers) TriggerRankSync() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		triggeredBy := auth.Subject(r.Context())
		tokenID := ""
		if claims := auth.GetUserClaims(r.Context()); claims != nil {
			tokenID = claims.TokenID()
		}
		logger := logging.WithRequest(middleware.GetRequestID(r.Context()), triggeredBy, r.URL.Path)
		logger.Infow("Rank sync manually triggered", "triggered_by", triggeredBy, "token_id", tokenID)

		result, err := h.deps.Jobs.RankSync.Run(r.Context())
		if err != nil {
			logger.Errorw("Manual rank sync failed", "error", err.Error())
			common.RespondError(w, start, err, "Failed to run rank sync", http.StatusInternalServerError)
			return
		}

		common.RespondSuccess(w, start, "Rank sync completed successfully", RankSyncResult{
			TriggeredBy: triggeredBy,
			TriggeredAt: start.UTC().Format(time.RFC3339),
			CompletedAt: time.Now().UTC().Format(time.RFC3339),
			DurationMs:  int(time.Since(start).Milliseconds()),
			Pilots:      result.Pilots,
			Repaired:    result.Repaired,
			Failed:      result.Failed,
		})
	}
}
