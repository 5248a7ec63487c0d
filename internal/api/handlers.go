package api

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/shopfleet/payouts/internal/domain"
	"github.com/shopfleet/payouts/internal/ingestion"
	"github.com/shopfleet/payouts/internal/payout"
	"github.com/shopfleet/payouts/internal/report"
	"github.com/shopfleet/payouts/internal/repository"
	"github.com/shopfleet/payouts/internal/settings"
)

// Handlers groups all HTTP handler methods and their dependencies.
type Handlers struct {
	orderRepo  *repository.OrderRepo
	configRepo *repository.ConfigRepo
	payoutRepo *repository.PayoutRepo
	importSvc  *ingestion.Service
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func parseTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t, err = time.Parse("2006-01-02", s)
		if err != nil {
			return nil
		}
	}
	return &t
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return def
	}
	return v
}

// --- Import ---

func (h *Handlers) Import(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required: "+err.Error())
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "read file: "+err.Error())
		return
	}

	result, err := h.importSvc.Import(data, kind)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// --- ListOrders ---

func (h *Handlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repository.OrderFilter{
		Dropshipper: q.Get("dropshipper"),
		Status:      q.Get("status"),
		Carrier:     q.Get("carrier"),
		From:        parseTime(q.Get("from")),
		To:          parseTime(q.Get("to")),
		Page:        parseIntDefault(q.Get("page"), 1),
		Limit:       parseIntDefault(q.Get("limit"), 50),
	}

	orders, total, err := h.orderRepo.List(filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"orders": orders,
		"total":  total,
		"page":   filter.Page,
		"limit":  filter.Limit,
	})
}

// --- Settings ---

func (h *Handlers) ListPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.configRepo.AllPrices()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"prices": prices, "total": len(prices)})
}

func (h *Handlers) UpsertPrices(w http.ResponseWriter, r *http.Request) {
	var prices []domain.ProductPrice
	if err := json.NewDecoder(r.Body).Decode(&prices); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	n, err := h.configRepo.UpsertPrices(prices)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"applied": n})
}

func (h *Handlers) ResetPrices(w http.ResponseWriter, r *http.Request) {
	if err := h.configRepo.ResetPrices(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *Handlers) ListRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.configRepo.AllRates()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rates": rates, "total": len(rates)})
}

func (h *Handlers) UpsertRates(w http.ResponseWriter, r *http.Request) {
	var rates []domain.ShippingRate
	if err := json.NewDecoder(r.Body).Decode(&rates); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	n, err := h.configRepo.UpsertRates(rates)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"applied": n})
}

func (h *Handlers) ResetRates(w http.ResponseWriter, r *http.Request) {
	if err := h.configRepo.ResetRates(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// GetGaps reports products and carriers that appear in the order book
// with no configured price or rate. The engine silently computes with
// zero for these; this endpoint is how operators find them.
func (h *Handlers) GetGaps(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderRepo.All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	prices, err := h.configRepo.PriceIndex()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rates, err := h.configRepo.RateIndex()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	missingPrices := settings.MissingPrices(orders, prices)
	missingRates := settings.MissingRates(orders, rates)

	writeJSON(w, http.StatusOK, map[string]any{
		"missing_prices": missingPrices,
		"missing_rates":  missingRates,
		"complete":       len(missingPrices) == 0 && len(missingRates) == 0,
	})
}

func (h *Handlers) ExportSettings(w http.ResponseWriter, r *http.Request) {
	prices, err := h.configRepo.PriceIndex()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rates, err := h.configRepo.RateIndex()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="settings.csv"`)
	if err := report.WriteSettingsCSV(w, settings.ExportAll(prices, rates)); err != nil {
		log.Printf("[api] settings export: %v", err)
	}
}

func (h *Handlers) GetTemplate(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	var f = report.BuildPriceTemplate()
	switch kind {
	case "prices":
		// already built
	case "rates":
		f = report.BuildRateTemplate()
	default:
		writeError(w, http.StatusNotFound, "unknown template: "+kind)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+kind+`-template.xlsx"`)
	if err := f.Write(w); err != nil {
		log.Printf("[api] template write: %v", err)
	}
}

// --- CalculatePayout ---

type calculateRequest struct {
	OrderFrom     string `json:"order_from"`
	OrderTo       string `json:"order_to"`
	DeliveredFrom string `json:"delivered_from"`
	DeliveredTo   string `json:"delivered_to"`
}

// CalculatePayout validates the windows, runs the engine over a
// consistent snapshot of orders, settings and payout history, persists
// the run and returns the full result.
func (h *Handlers) CalculatePayout(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}

	v := payout.ValidateDateRanges(req.OrderFrom, req.OrderTo, req.DeliveredFrom, req.DeliveredTo)
	if !v.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, v)
		return
	}

	orders, err := h.orderRepo.All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	prices, err := h.configRepo.PriceIndex()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rates, err := h.configRepo.RateIndex()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	history, err := h.payoutRepo.HistoryEntries()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	result := payout.Calculate(orders, prices, rates,
		payout.ParseWindow(req.OrderFrom, req.OrderTo),
		payout.ParseWindow(req.DeliveredFrom, req.DeliveredTo),
		history)

	run := &domain.PayoutRun{
		ID:            payout.NewRunID(),
		OrderFrom:     req.OrderFrom,
		OrderTo:       req.OrderTo,
		DeliveredFrom: req.DeliveredFrom,
		DeliveredTo:   req.DeliveredTo,
		Summary:       result.Summary,
		CreatedAt:     time.Now().UTC(),
	}
	if err := h.payoutRepo.SaveRun(run, result.Rows, result.Adjustments); err != nil {
		writeError(w, http.StatusInternalServerError, "save run: "+err.Error())
		return
	}

	log.Printf("[api] Payout run %s: %d rows, %d reversals, final payable %.0f",
		run.ID, result.Summary.RowCount, len(result.Adjustments), result.Summary.FinalPayable)

	writeJSON(w, http.StatusOK, map[string]any{
		"run_id":      run.ID,
		"summary":     result.Summary,
		"rows":        result.Rows,
		"adjustments": result.Adjustments,
	})
}

// --- Payout runs ---

func (h *Handlers) ListPayouts(w http.ResponseWriter, r *http.Request) {
	runs, err := h.payoutRepo.ListRuns()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs, "total": len(runs)})
}

func (h *Handlers) GetPayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, rows, adjs, err := h.payoutRepo.GetRun(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "payout run not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"run":         run,
		"rows":        rows,
		"adjustments": adjs,
	})
}

func (h *Handlers) ExportPayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	run, rows, adjs, err := h.payoutRepo.GetRun(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "payout run not found")
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "xlsx":
		f, err := report.BuildPayoutWorkbook(run, rows, adjs)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="`+run.ID+`.xlsx"`)
		if err := f.Write(w); err != nil {
			log.Printf("[api] workbook write: %v", err)
		}
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="`+run.ID+`.csv"`)
		if err := report.WritePayoutCSV(w, run.Summary, rows); err != nil {
			log.Printf("[api] csv write: %v", err)
		}
	default:
		writeError(w, http.StatusBadRequest, "format must be csv or xlsx")
	}
}

// --- GetDashboard ---

func (h *Handlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	orderCount, err := h.orderRepo.Count()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	byStatus, err := h.orderRepo.CountByStatus()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	byCarrier, err := h.orderRepo.VolumeByCarrier()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	runs, err := h.payoutRepo.ListRuns()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	orders, err := h.orderRepo.All()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	prices, err := h.configRepo.PriceIndex()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	rates, err := h.configRepo.RateIndex()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	dashboard := map[string]any{
		"orders": map[string]any{
			"total":      orderCount,
			"by_status":  byStatus,
			"by_carrier": byCarrier,
		},
		"settings": map[string]any{
			"configured_prices": len(prices),
			"configured_rates":  len(rates),
			"missing_prices":    len(settings.MissingPrices(orders, prices)),
			"missing_rates":     len(settings.MissingRates(orders, rates)),
		},
		"payout_runs": len(runs),
	}
	if len(runs) > 0 {
		dashboard["latest_run"] = runs[0]
	}

	writeJSON(w, http.StatusOK, dashboard)
}
