package httpgin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/precisionto/funnel-go/internal/catalog"
	"github.com/precisionto/funnel-go/internal/domain"
	redisrepo "github.com/precisionto/funnel-go/internal/repository/redis"
	"github.com/precisionto/funnel-go/internal/service"
	"github.com/precisionto/funnel-go/internal/service/admin"
	"github.com/precisionto/funnel-go/internal/service/availability"
	"github.com/precisionto/funnel-go/internal/service/checkout"
	"github.com/precisionto/funnel-go/internal/service/funnel"
	"github.com/precisionto/funnel-go/internal/upstream"
	"github.com/precisionto/funnel-go/internal/wizard"
)

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	limiter *redisrepo.SlidingWindowLimiter,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Catalog (static, cacheable)
	r.GET("/catalog/vehicle-types", handleVehicleTypes())
	r.GET("/catalog/:vehicleType/services", handleCatalogServices())
	r.GET("/catalog/:vehicleType/addons", handleCatalogAddons())

	// Funnel sessions
	r.POST("/sessions", handleCreateSession(svcs))
	r.GET("/sessions/:id", handleGetSession(svcs))
	r.DELETE("/sessions/:id", handleResetSession(svcs))

	r.PUT("/sessions/:id/vehicle-type", handleSetVehicleType(svcs))
	r.POST("/sessions/:id/services/:itemID/toggle", handleToggleService(svcs))
	r.POST("/sessions/:id/addons/:itemID/toggle", handleToggleAddon(svcs))
	r.PATCH("/sessions/:id/services/:itemID", handleAdjustService(svcs))
	r.PATCH("/sessions/:id/addons/:itemID", handleAdjustAddon(svcs))
	r.PUT("/sessions/:id/customer", handleSetCustomerInfo(svcs))
	r.PUT("/sessions/:id/vehicle", handleSetVehicleInfo(svcs))

	r.POST("/sessions/:id/availability", handleSelectDate(svcs))
	r.GET("/sessions/:id/availability", handleGetAvailability(svcs))
	r.PUT("/sessions/:id/schedule", handleSetSchedule(svcs))

	r.POST("/sessions/:id/advance", handleAdvance(svcs))
	r.POST("/sessions/:id/back", handleBack(svcs))

	r.POST("/sessions/:id/checkout", handleCheckout(svcs, idem, limiter))

	r.GET("/sessions/:id/receipt", handleGetReceipt(svcs))
	r.GET("/sessions/:id/events", handleSessionEvents(svcs))

	// Admin-API (proxied to the booking backend)
	r.POST("/admin/login", handleAdminLogin(svcs))

	adm := r.Group("/admin", AdminAuthMiddleware(svcs.Admin))
	{
		adm.GET("/bookings", handleListBookings(svcs))
		adm.PATCH("/bookings/:id", handleUpdateBookingStatus(svcs))
		adm.DELETE("/bookings/:id", handleDeleteBooking(svcs))
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  List vehicle types
// @Success  200  {array}  string
// @Router   /catalog/vehicle-types [get]
func handleVehicleTypes() gin.HandlerFunc {
	return func(c *gin.Context) {
		// ETag + Cache-Control 300s
		writeJSONWithCache(c, http.StatusOK, catalog.VehicleTypes(), "public, max-age=300", true)
	}
}

// @Summary  Service catalog for a vehicle type
// @Param    vehicleType  path  string  true  "sedan|suv|truck|coupe"
// @Success  200  {array}   catalog.Entry
// @Failure  404  {object}  ErrorResponse
// @Router   /catalog/{vehicleType}/services [get]
func handleCatalogServices() gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := catalog.Services(c.Param("vehicleType"))
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, entries, "public, max-age=300", true)
	}
}

// @Summary  Add-on catalog for a vehicle type
// @Param    vehicleType  path  string  true  "sedan|suv|truck|coupe"
// @Success  200  {array}   catalog.Entry
// @Failure  404  {object}  ErrorResponse
// @Router   /catalog/{vehicleType}/addons [get]
func handleCatalogAddons() gin.HandlerFunc {
	return func(c *gin.Context) {
		entries, err := catalog.Addons(c.Param("vehicleType"))
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, entries, "public, max-age=300", true)
	}
}

// @Summary  Start a funnel session
// @Success  201  {object}  CreateSessionResponse
// @Router   /sessions [post]
func handleCreateSession(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := svcs.Funnel.CreateSession(c.Request.Context())
		c.JSON(http.StatusCreated, CreateSessionResponse{SessionID: id})
	}
}

// @Summary  Session state
// @Param    id  path  string  true  "Session ID"
// @Success  200  {object}  funnel.State
// @Router   /sessions/{id} [get]
func handleGetSession(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := svcs.Funnel.GetState(c.Request.Context(), c.Param("id"))
		c.JSON(http.StatusOK, st)
	}
}

// @Summary  Reset a session to a fresh draft
// @Param    id  path  string  true  "Session ID"
// @Success  200  {object}  funnel.State
// @Router   /sessions/{id} [delete]
func handleResetSession(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		st := svcs.Funnel.Reset(c.Request.Context(), id)
		svcs.Availability.Drop(id)
		c.JSON(http.StatusOK, st)
	}
}

// @Summary  Last confirmed booking receipt
// @Param    id  path  string  true  "Session ID"
// @Success  200  {object}  domain.Booking
// @Failure  404  {object}  ErrorResponse
// @Router   /sessions/{id}/receipt [get]
func handleGetReceipt(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := svcs.Funnel.Receipt(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// @Summary  Set vehicle type
// @Param    id   path  string              true  "Session ID"
// @Param    req  body  VehicleTypeRequest  true  "payload"
// @Success  200  {object}  funnel.State
// @Failure  400  {object}  ErrorResponse
// @Router   /sessions/{id}/vehicle-type [put]
func handleSetVehicleType(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VehicleTypeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		if _, err := catalog.Services(req.VehicleType); err != nil {
			respondErr(c, err)
			return
		}
		st := svcs.Funnel.SetVehicleType(c.Request.Context(), c.Param("id"), req.VehicleType)
		c.JSON(http.StatusOK, st)
	}
}

// @Summary  Toggle a service selection
// @Param    id      path  string  true  "Session ID"
// @Param    itemID  path  string  true  "Catalog entry ID"
// @Success  200  {object}  funnel.State
// @Failure  404  {object}  ErrorResponse
// @Router   /sessions/{id}/services/{itemID}/toggle [post]
func handleToggleService(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		d := svcs.Funnel.Snapshot(c.Request.Context(), id)
		entry, err := catalog.FindService(d.VehicleType, c.Param("itemID"))
		if err != nil {
			respondErr(c, err)
			return
		}
		st := svcs.Funnel.ToggleService(c.Request.Context(), id, entry.LineItem())
		c.JSON(http.StatusOK, st)
	}
}

// @Summary  Toggle an add-on selection
// @Param    id      path  string  true  "Session ID"
// @Param    itemID  path  string  true  "Catalog entry ID"
// @Success  200  {object}  funnel.State
// @Failure  404  {object}  ErrorResponse
// @Router   /sessions/{id}/addons/{itemID}/toggle [post]
func handleToggleAddon(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		d := svcs.Funnel.Snapshot(c.Request.Context(), id)
		entry, err := catalog.FindAddon(d.VehicleType, c.Param("itemID"))
		if err != nil {
			respondErr(c, err)
			return
		}
		st := svcs.Funnel.ToggleAddon(c.Request.Context(), id, entry.LineItem())
		c.JSON(http.StatusOK, st)
	}
}

// @Summary  Adjust service quantity
// @Param    id      path  string         true  "Session ID"
// @Param    itemID  path  string         true  "Catalog entry ID"
// @Param    req     body  AdjustRequest  true  "signed delta"
// @Success  200  {object}  funnel.State
// @Router   /sessions/{id}/services/{itemID} [patch]
func handleAdjustService(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdjustRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		st := svcs.Funnel.AdjustService(c.Request.Context(), c.Param("id"), c.Param("itemID"), req.Delta)
		c.JSON(http.StatusOK, st)
	}
}

// @Summary  Adjust add-on quantity
// @Param    id      path  string         true  "Session ID"
// @Param    itemID  path  string         true  "Catalog entry ID"
// @Param    req     body  AdjustRequest  true  "signed delta"
// @Success  200  {object}  funnel.State
// @Router   /sessions/{id}/addons/{itemID} [patch]
func handleAdjustAddon(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AdjustRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		st := svcs.Funnel.AdjustAddon(c.Request.Context(), c.Param("id"), c.Param("itemID"), req.Delta)
		c.JSON(http.StatusOK, st)
	}
}

// @Summary  Set customer info
// @Param    id   path  string               true  "Session ID"
// @Param    req  body  CustomerInfoRequest  true  "payload"
// @Success  200  {object}  funnel.State
// @Router   /sessions/{id}/customer [put]
func handleSetCustomerInfo(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CustomerInfoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		st := svcs.Funnel.SetCustomerInfo(c.Request.Context(), c.Param("id"), domain.CustomerInfo{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
			Notes:   req.Notes,
		})
		c.JSON(http.StatusOK, st)
	}
}

// @Summary  Set vehicle info
// @Param    id   path  string              true  "Session ID"
// @Param    req  body  VehicleInfoRequest  true  "payload"
// @Success  200  {object}  funnel.State
// @Router   /sessions/{id}/vehicle [put]
func handleSetVehicleInfo(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VehicleInfoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		st := svcs.Funnel.SetVehicleInfo(c.Request.Context(), c.Param("id"), domain.VehicleInfo{
			Make:         req.Make,
			Model:        req.Model,
			Year:         req.Year,
			Color:        req.Color,
			LicensePlate: req.LicensePlate,
		})
		c.JSON(http.StatusOK, st)
	}
}

// @Summary  Select a date and start loading its slots
// @Param    id   path  string             true  "Session ID"
// @Param    req  body  SelectDateRequest  true  "payload"
// @Success  202  {object}  availability.State
// @Failure  400  {object}  ErrorResponse
// @Router   /sessions/{id}/availability [post]
func handleSelectDate(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SelectDateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		st, err := svcs.Availability.SelectDate(c.Param("id"), req.Date)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusAccepted, st)
	}
}

// @Summary  Current availability view
// @Param    id  path  string  true  "Session ID"
// @Success  200  {object}  availability.State
// @Router   /sessions/{id}/availability [get]
func handleGetAvailability(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svcs.Availability.GetState(c.Param("id")))
	}
}

// @Summary  Pick a slot for the draft
// @Param    id   path  string           true  "Session ID"
// @Param    req  body  ScheduleRequest  true  "payload"
// @Success  200  {object}  funnel.State
// @Failure  404  {object}  ErrorResponse  "unknown slot"
// @Failure  409  {object}  ErrorResponse  "slot already booked"
// @Router   /sessions/{id}/schedule [put]
func handleSetSchedule(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ScheduleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		id := c.Param("id")
		slot, err := svcs.Availability.Slot(id, req.Date, req.TimeLabel)
		if err != nil {
			respondErr(c, err)
			return
		}
		st := svcs.Funnel.SetSchedule(c.Request.Context(), id, req.Date, req.TimeLabel, slot.Start)
		c.JSON(http.StatusOK, st)
	}
}

// @Summary  Advance the wizard one step
// @Param    id  path  string  true  "Session ID"
// @Success  200  {object}  funnel.State
// @Failure  409  {object}  ErrorResponse  "step requirements not met"
// @Router   /sessions/{id}/advance [post]
func handleAdvance(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := svcs.Funnel.Advance(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

// @Summary  Step the wizard back
// @Param    id  path  string  true  "Session ID"
// @Success  200  {object}  funnel.State
// @Router   /sessions/{id}/back [post]
func handleBack(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, svcs.Funnel.Back(c.Request.Context(), c.Param("id")))
	}
}

// @Summary  Submit the draft (idempotent)
// @Param    id  path  string  true  "Session ID"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} funnel.State
// @Failure  400 {object} ErrorResponse "incomplete draft"
// @Failure  409 {object} ErrorResponse "submission in flight / idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Failure  504 {object} ErrorResponse "backend timeout"
// @Router   /sessions/{id}/checkout [post]
func handleCheckout(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	limiter *redisrepo.SlidingWindowLimiter,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("id")

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemCheckout(sessionID, idemKey)

			if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
				return
			}

			locked, err := idem.AcquireLock(c.Request.Context(), idemStorageKey, 60*time.Second)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(c.Request.Context(), idemStorageKey); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(http.StatusCreated, "application/json; charset=utf-8", []byte(payload))
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			}
		}

		if limiter != nil {
			allowed, _, retryAfter, err := limiter.Allow(c.Request.Context(), "ip:"+c.ClientIP())
			if err == nil && !allowed {
				if idemStorageKey != "" && idem != nil {
					_ = idem.Release(c.Request.Context(), idemStorageKey)
				}
				c.Header("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
				c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited"})
				return
			}
		}

		st, err := svcs.Checkout.Submit(c.Request.Context(), sessionID)
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			respondErr(c, err)
			return
		}

		if idemStorageKey != "" && idem != nil {
			b, _ := json.Marshal(st)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(b))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, st)
	}
}

// @Summary  Admin login
// @Param    req  body  LoginRequest  true  "credentials"
// @Success  200  {object}  LoginResponse
// @Failure  401  {object}  ErrorResponse
// @Router   /admin/login [post]
func handleAdminLogin(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		token, err := svcs.Admin.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, LoginResponse{Token: token})
	}
}

// @Summary  List bookings
// @Param    q         query  string  false  "search"
// @Param    status    query  string  false  "status filter"
// @Param    sort      query  string  false  "createdAt|startAt|totalPrice|name"
// @Param    dir       query  string  false  "asc|desc"
// @Param    page      query  int     false  "page number"
// @Param    page_size query  int     false  "page size"
// @Success  200  {object}  admin.Page
// @Router   /admin/bookings [get]
func handleListBookings(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := admin.ListQuery{
			Search:   c.Query("q"),
			Status:   domain.BookingStatus(c.Query("status")),
			SortKey:  c.Query("sort"),
			SortDesc: c.Query("dir") == "desc",
			Page:     parseIntDefault(c.Query("page"), 1),
			PageSize: parseIntDefault(c.Query("page_size"), 0),
		}
		page, err := svcs.Admin.ListBookings(c.Request.Context(), upstreamToken(c), q)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// @Summary  Update booking status
// @Param    id   path  string               true  "Booking ID"
// @Param    req  body  UpdateStatusRequest  true  "payload"
// @Success  200  {object}  domain.Booking
// @Router   /admin/bookings/{id} [patch]
func handleUpdateBookingStatus(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
		b, err := svcs.Admin.UpdateStatus(
			c.Request.Context(),
			upstreamToken(c),
			c.Param("id"),
			domain.BookingStatus(req.Status),
		)
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

// @Summary  Delete a booking
// @Param    id  path  string  true  "Booking ID"
// @Success  204
// @Router   /admin/bookings/{id} [delete]
func handleDeleteBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svcs.Admin.DeleteBooking(c.Request.Context(), upstreamToken(c), c.Param("id")); err != nil {
			respondErr(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// --- Helpers ---

func upstreamToken(c *gin.Context) string {
	return c.GetString("upstream_token")
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// catalog
	case errors.Is(err, catalog.ErrUnknownVehicleType):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unknown vehicle type"})
		return
	case errors.Is(err, catalog.ErrEntryNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "catalog entry not found"})
		return
	// availability service
	case errors.Is(err, availability.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date, want YYYY-MM-DD"})
		return
	case errors.Is(err, availability.ErrSlotNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "slot not found"})
		return
	case errors.Is(err, availability.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "slot already booked"})
		return
	// wizard
	case errors.Is(err, wizard.ErrStepIncomplete):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "step requirements not met"})
		return
	// funnel / checkout
	case errors.Is(err, funnel.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "submission already in flight"})
		return
	case errors.Is(err, funnel.ErrNoBookingData):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "no confirmed booking for this session"})
		return
	case errors.Is(err, checkout.ErrIncompleteDraft):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "draft is not ready for checkout"})
		return
	case errors.Is(err, checkout.ErrTimeout):
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{Error: "checkout timed out, please try again"})
		return
	// admin
	case errors.Is(err, admin.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		return
	case errors.Is(err, admin.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid booking status"})
		return
	}

	// Backend errors keep their status and message so the user sees what
	// the booking API said.
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, ErrorResponse{Error: apiErr.Message})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
