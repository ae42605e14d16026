package handler

import (
	"encoding/json"
	"net/http"

	"clinic-agenda/internal/domain/entity"
	"clinic-agenda/internal/usecase"
	"clinic-agenda/pkg/response"
)

type BackupHandler struct {
	backupUsecase usecase.BackupUsecase
}

func NewBackupHandler(backupUsecase usecase.BackupUsecase) *BackupHandler {
	return &BackupHandler{backupUsecase: backupUsecase}
}

func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.backupUsecase.Export(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to export data")
		return
	}

	response.Success(w, http.StatusOK, "Data exported successfully", snapshot)
}

// Import replaces any collection present in the supplied snapshot
// wholesale. No merge and no referential-integrity checks.
func (h *BackupHandler) Import(w http.ResponseWriter, r *http.Request) {
	var snapshot entity.Snapshot
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.backupUsecase.Import(r.Context(), &snapshot); err != nil {
		response.InternalServerError(w, "Failed to import data")
		return
	}

	response.Success(w, http.StatusOK, "Data imported successfully", nil)
}

func (h *BackupHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.backupUsecase.Reset(r.Context()); err != nil {
		response.InternalServerError(w, "Failed to reset data")
		return
	}

	response.Success(w, http.StatusOK, "Data reset successfully", nil)
}
