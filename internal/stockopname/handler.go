package stockopname

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/koperasi-erp/koperasi-erp/internal/platform/httpx"
	"github.com/koperasi-erp/koperasi-erp/internal/shared"
)

const lockScope = "stock_opname"

// Handler wires HTTP endpoints for stock opnames.
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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req := ListOpnamesRequest{Limit: 20}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		req.Limit = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 1 {
		req.Offset = (v - 1) * req.Limit
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("shop_id"), 10, 64); err == nil && v > 0 {
		req.ShopID = &v
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("product_id"), 10, 64); err == nil && v > 0 {
		req.ProductID = &v
	}
	req.Status = r.URL.Query().Get("status")
	req.DateFrom = parseDate(r.URL.Query().Get("date_from"))
	req.DateTo = parseDate(r.URL.Query().Get("date_to"))

	list, total, err := h.service.List(r.Context(), req)
	if err != nil {
		h.logger.Error("list stock opnames failed", "error", err)
		httpx.RespondError(w, err)
		return
	}

	page := req.Offset/req.Limit + 1
	httpx.JSON(w, http.StatusOK, map[string]any{
		"data":       list,
		"pagination": shared.NewPagination(page, req.Limit, total),
	})
}

func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid stock opname ID")
		return
	}

	op, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, op)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOpnameRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	if sid := r.Header.Get("X-Submission-Id"); sid != "" {
		token, err := h.lock.Acquire(r.Context(), lockScope, sid)
		if err != nil {
			h.respondLockError(w, err)
			return
		}
		defer h.release(r, sid, token)
	}

	op, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.logger.Error("create stock opname failed", "error", err)
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, op)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid stock opname ID")
		return
	}

	var req CreateOpnameRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "malformed JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	key := strconv.FormatInt(id, 10)
	token, err := h.lock.Acquire(r.Context(), lockScope, key)
	if err != nil {
		h.respondLockError(w, err)
		return
	}
	defer h.release(r, key, token)

	op, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.logger.Error("update stock opname failed", "error", err, "id", id)
		h.respondServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, op)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid stock opname ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.logger.Error("delete stock opname failed", "error", err, "id", id)
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondLockError(w http.ResponseWriter, err error) {
	if errors.Is(err, shared.ErrSubmitInFlight) {
		httpx.RespondError(w, httpx.ErrConflict)
		return
	}
	httpx.RespondError(w, err)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	if errors.Is(err, shared.ErrReferenceMismatch) {
		httpx.Problem(w, http.StatusBadRequest, "Stale Reference", shared.UserSafeMessage(err))
		return
	}
	httpx.RespondError(w, err)
}

func (h *Handler) release(r *http.Request, id, token string) {
	if err := h.lock.Release(r.Context(), lockScope, id, token); err != nil {
		h.logger.Warn("release submit lock failed", "error", err, "scope", lockScope)
	}
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
