package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fekusatech/inoutcome-wa/internal/api/httpx"
	"github.com/fekusatech/inoutcome-wa/internal/auth"
	"github.com/fekusatech/inoutcome-wa/internal/bot"
	"github.com/fekusatech/inoutcome-wa/internal/config"
	"github.com/fekusatech/inoutcome-wa/internal/ledger"
	"github.com/fekusatech/inoutcome-wa/internal/middleware"
	"github.com/fekusatech/inoutcome-wa/internal/wallet"
	"github.com/fekusatech/inoutcome-wa/internal/whatsapp"
)

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("amount must be >= 0")
	}
	return d, nil
}

type tokenResp struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // seconds
}

// NewRouter mounts the message webhook, health/metrics, and the
// token-protected ops endpoints.
func NewRouter(cfg config.Config, h *bot.Handler, ls *ledger.Service, ws *wallet.Service, tm *auth.TokenManager) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", promhttp.Handler())

	// inbound messages from the transport gateway
	r.Post("/webhook/whatsapp", whatsapp.InboundHandler(h))

	r.Route("/api/v1", func(r chi.Router) {
		// ---------- auth ----------
		r.Post("/auth/login", func(w http.ResponseWriter, r *http.Request) {
			var req struct{ Username, Password string }
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "bad request", nil)
				return
			}
			if req.Username != cfg.AdminUser ||
				auth.VerifyPassword(req.Password, cfg.AdminPasswordHash) != nil {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid credentials", nil)
				return
			}
			access, refresh, exp, err := tm.GeneratePair(req.Username)
			if err != nil {
				httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "token generation failed", nil)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, tokenResp{
				AccessToken:  access,
				RefreshToken: refresh,
				ExpiresIn:    int64(time.Until(exp).Seconds()),
			})
		})

		r.Post("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				RefreshToken string `json:"refresh_token"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
				httpx.WriteError(w, http.StatusBadRequest, "bad_request", "bad request", nil)
				return
			}
			claims, isRefresh, err := tm.ParseAny(req.RefreshToken)
			if err != nil || !isRefresh {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid refresh token", nil)
				return
			}
			access, refresh, exp, err := tm.GeneratePair(claims.Subject)
			if err != nil {
				httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "token generation failed", nil)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, tokenResp{
				AccessToken:  access,
				RefreshToken: refresh,
				ExpiresIn:    int64(time.Until(exp).Seconds()),
			})
		})

		// ---------- ops reads ----------
		am := middleware.NewAuthMiddleware(tm)
		r.Group(func(r chi.Router) {
			r.Use(am.Auth)

			r.Get("/transactions", func(w http.ResponseWriter, r *http.Request) {
				gid := r.URL.Query().Get("group_id")
				if gid == "" {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "group_id required", nil)
					return
				}
				limit := 0
				if v := r.URL.Query().Get("limit"); v != "" {
					if n, err := strconv.Atoi(v); err == nil && n > 0 {
						limit = n
					}
				}
				txns, err := ls.Recent(r.Context(), gid, limit)
				if err != nil {
					httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, txns)
			})

			r.Get("/wallets", func(w http.ResponseWriter, r *http.Request) {
				gid := r.URL.Query().Get("group_id")
				if gid == "" {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "group_id required", nil)
					return
				}
				wallets, err := ws.List(r.Context(), gid)
				if err != nil {
					httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, wallets)
			})

			r.Get("/balance", func(w http.ResponseWriter, r *http.Request) {
				gid := r.URL.Query().Get("group_id")
				if gid == "" {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "group_id required", nil)
					return
				}
				total, err := ws.TotalBalance(r.Context(), gid)
				if err != nil {
					httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, map[string]any{"group_id": gid, "total_balance": total})
			})

			// out-of-band announcement to a chat, outside the webhook
			// request/reply cycle
			wc := whatsapp.NewClient(cfg)
			r.Post("/messages", func(w http.ResponseWriter, r *http.Request) {
				var req struct {
					To   string `json:"to"`
					Body string `json:"body"`
				}
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.To == "" || req.Body == "" {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "to and body required", nil)
					return
				}
				if err := wc.Send(r.Context(), req.To, req.Body); err != nil {
					httpx.WriteError(w, http.StatusBadGateway, "send_failed", "message send failed", nil)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, map[string]bool{"sent": true})
			})

			// manual balance adjustment; confirmation does not touch
			// wallet balances, this endpoint is the explicit primitive
			r.Post("/wallets/{id}/adjust", func(w http.ResponseWriter, r *http.Request) {
				id := chi.URLParam(r, "id")
				var req struct {
					Amount   string `json:"amount"`
					IsIncome bool   `json:"is_income"`
				}
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "bad request", nil)
					return
				}
				amount, err := parseAmount(req.Amount)
				if err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid amount", nil)
					return
				}
				ok, err := ws.AdjustBalance(r.Context(), id, amount, req.IsIncome)
				if err != nil {
					httpx.WriteError(w, http.StatusInternalServerError, "internal_error", "internal error", nil)
					return
				}
				if !ok {
					httpx.WriteError(w, http.StatusNotFound, "not_found", "wallet not found", nil)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, map[string]bool{"adjusted": true})
			})
		})
	})

	return r
}
