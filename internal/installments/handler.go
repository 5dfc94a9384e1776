package installments

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/koperasi-erp/koperasi-erp/internal/platform/httpx"
	"github.com/koperasi-erp/koperasi-erp/internal/shared"
)

const lockScope = "installment_payment"

// Handler wires HTTP endpoints for installment payments.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	lock      *shared.SubmitLock
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, lock *shared.SubmitLock) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		lock:      lock,
		validator: validator.New(),
	}
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	// One in-flight payment per schedule entry; double clicks on the pay
	// button land on the lock, not on the database.
	key := fmt.Sprintf("%d:%d", req.PinjamanID, req.PinjamanDetailID)
	token, err := h.lock.Acquire(r.Context(), lockScope, key)
	if err != nil {
		if errors.Is(err, shared.ErrSubmitInFlight) {
			httpx.RespondError(w, httpx.ErrConflict)
			return
		}
		httpx.RespondError(w, err)
		return
	}
	defer func() {
		if err := h.lock.Release(r.Context(), lockScope, key, token); err != nil {
			h.logger.Warn("release submit lock failed", "error", err, "scope", lockScope)
		}
	}()

	payment, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create installment payment failed", "error", err)
		if errors.Is(err, shared.ErrReferenceMismatch) {
			httpx.Problem(w, http.StatusBadRequest, "Stale Reference", shared.UserSafeMessage(err))
			return
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, payment)
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid payment ID")
		return
	}

	payment, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, payment)
}

func (h *Handler) Statement(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid loan ID")
		return
	}

	statement, err := h.service.Statement(r.Context(), id)
	if err != nil {
		h.logger.Error("load loan statement failed", "error", err, "pinjaman_id", id)
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, statement)
}
