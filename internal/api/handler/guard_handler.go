package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sentinelforce/agency-api/internal/core/ports"
)

// GuardHandler handles HTTP requests for guard records and their logs.
// Every route identifies the calling admin through the email query parameter.
type GuardHandler struct {
	service ports.GuardService
}

func NewGuardHandler(service ports.GuardService) *GuardHandler {
	return &GuardHandler{service: service}
}

// --- Request types ---

type createGuardRequest struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	NID          string `json:"nid"`
	Address      string `json:"address"`
	JoinDate     string `json:"joinDate"`
	DutyPlace    string `json:"dutyPlace"`
	DutyTime     string `json:"dutyTime"`
	Transactions any    `json:"transactions"`
	Presence     any    `json:"presence"`
}

// updateGuardRequest has no transactions or presence field: those keys are
// dropped by the decoder and can never reach the store through this route.
type updateGuardRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	NID       *string `json:"nid"`
	Address   *string `json:"address"`
	JoinDate  *string `json:"joinDate"`
	DutyPlace *string `json:"dutyPlace"`
	DutyTime  *string `json:"dutyTime"`
}

type transactionRequest struct {
	Type   string  `json:"type"`
	Amount any     `json:"amount"`
	Date   string  `json:"date"`
	Note   *string `json:"note"`
}

type presenceRequest struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

func caller(c echo.Context) string {
	return c.QueryParam("email")
}

// List handles GET /guards?email=.
//
// @Summary      List guards
// @Tags         guards
// @Produce      json
// @Param        email  query     string  true  "Email of the requesting admin"
// @Success      200    {object}  envelope{data=[]domain.Guard}
// @Failure      400    {object}  ErrorEnvelope
// @Failure      403    {object}  ErrorEnvelope
// @Router       /guards [get]
func (h *GuardHandler) List(c echo.Context) error {
	guards, err := h.service.List(c.Request().Context(), caller(c))
	if err != nil {
		return err
	}
	return okList(c, len(guards), guards)
}

// Get handles GET /guards/:id?email=.
//
// @Summary      Get a guard
// @Tags         guards
// @Produce      json
// @Param        id     path      string  true  "Guard id"
// @Param        email  query     string  true  "Email of the requesting admin"
// @Success      200    {object}  envelope{data=domain.Guard}
// @Failure      403    {object}  ErrorEnvelope
// @Failure      404    {object}  ErrorEnvelope
// @Router       /guards/{id} [get]
func (h *GuardHandler) Get(c echo.Context) error {
	guard, err := h.service.Get(c.Request().Context(), caller(c), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, guard)
}

// Create handles POST /guards?email=.
//
// @Summary      Create a guard
// @Tags         guards
// @Accept       json
// @Produce      json
// @Param        email  query     string              true  "Email of the requesting admin"
// @Param        body   body      createGuardRequest  true  "Guard record with optional seed logs"
// @Success      201    {object}  envelope{data=domain.Guard}
// @Failure      400    {object}  ErrorEnvelope
// @Failure      403    {object}  ErrorEnvelope
// @Router       /guards [post]
func (h *GuardHandler) Create(c echo.Context) error {
	var req createGuardRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}

	guard, err := h.service.Create(c.Request().Context(), caller(c), ports.CreateGuardInput{
		Name:         req.Name,
		Phone:        req.Phone,
		NID:          req.NID,
		Address:      req.Address,
		JoinDate:     req.JoinDate,
		DutyPlace:    req.DutyPlace,
		DutyTime:     req.DutyTime,
		Transactions: req.Transactions,
		Presence:     req.Presence,
	})
	if err != nil {
		return err
	}
	return ok(c, http.StatusCreated, guard)
}

// Update handles PATCH /guards/:id?email=.
//
// @Summary      Update a guard's core fields
// @Description  transactions and presence are ignored; use the append routes.
// @Tags         guards
// @Accept       json
// @Produce      json
// @Param        id     path      string              true  "Guard id"
// @Param        email  query     string              true  "Email of the requesting admin"
// @Param        body   body      updateGuardRequest  true  "Fields to overwrite"
// @Success      200    {object}  envelope{data=domain.Guard}
// @Failure      403    {object}  ErrorEnvelope
// @Failure      404    {object}  ErrorEnvelope
// @Router       /guards/{id} [patch]
func (h *GuardHandler) Update(c echo.Context) error {
	var req updateGuardRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}

	guard, err := h.service.Update(c.Request().Context(), caller(c), c.Param("id"), ports.UpdateGuardInput{
		Name:      req.Name,
		Phone:     req.Phone,
		NID:       req.NID,
		Address:   req.Address,
		JoinDate:  req.JoinDate,
		DutyPlace: req.DutyPlace,
		DutyTime:  req.DutyTime,
	})
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, guard)
}

// AppendTransaction handles POST /guards/:id/transactions?email=.
//
// @Summary      Append a ledger entry
// @Tags         guards
// @Accept       json
// @Produce      json
// @Param        id     path      string              true  "Guard id"
// @Param        email  query     string              true  "Email of the requesting admin"
// @Param        body   body      transactionRequest  true  "Ledger entry"
// @Success      200    {object}  envelope{data=domain.Guard}
// @Failure      400    {object}  ErrorEnvelope
// @Failure      403    {object}  ErrorEnvelope
// @Failure      404    {object}  ErrorEnvelope
// @Router       /guards/{id}/transactions [post]
func (h *GuardHandler) AppendTransaction(c echo.Context) error {
	var req transactionRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}

	guard, err := h.service.AppendTransaction(c.Request().Context(), caller(c), c.Param("id"), ports.TransactionInput{
		Type:   req.Type,
		Amount: req.Amount,
		Date:   req.Date,
		Note:   req.Note,
	})
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, guard)
}

// AppendPresence handles POST /guards/:id/presence?email=.
//
// @Summary      Append an attendance entry
// @Tags         guards
// @Accept       json
// @Produce      json
// @Param        id     path      string           true  "Guard id"
// @Param        email  query     string           true  "Email of the requesting admin"
// @Param        body   body      presenceRequest  true  "Attendance entry"
// @Success      200    {object}  envelope{data=domain.Guard}
// @Failure      400    {object}  ErrorEnvelope
// @Failure      403    {object}  ErrorEnvelope
// @Failure      404    {object}  ErrorEnvelope
// @Router       /guards/{id}/presence [post]
func (h *GuardHandler) AppendPresence(c echo.Context) error {
	var req presenceRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}

	guard, err := h.service.AppendPresence(c.Request().Context(), caller(c), c.Param("id"), ports.PresenceInput{
		Date:   req.Date,
		Status: req.Status,
	})
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, guard)
}

// Transactions handles GET /guards/:id/transactions?email=.
//
// @Summary      Read a guard's ledger
// @Tags         guards
// @Produce      json
// @Param        id     path      string  true  "Guard id"
// @Param        email  query     string  true  "Email of the requesting admin"
// @Success      200    {object}  envelope{data=[]domain.Transaction}
// @Failure      403    {object}  ErrorEnvelope
// @Failure      404    {object}  ErrorEnvelope
// @Router       /guards/{id}/transactions [get]
func (h *GuardHandler) Transactions(c echo.Context) error {
	txs, err := h.service.Transactions(c.Request().Context(), caller(c), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, txs)
}

// Presence handles GET /guards/:id/presence?email=.
//
// @Summary      Read a guard's attendance log
// @Tags         guards
// @Produce      json
// @Param        id     path      string  true  "Guard id"
// @Param        email  query     string  true  "Email of the requesting admin"
// @Success      200    {object}  envelope{data=[]domain.PresenceEntry}
// @Failure      403    {object}  ErrorEnvelope
// @Failure      404    {object}  ErrorEnvelope
// @Router       /guards/{id}/presence [get]
func (h *GuardHandler) Presence(c echo.Context) error {
	entries, err := h.service.Presence(c.Request().Context(), caller(c), c.Param("id"))
	if err != nil {
		return err
	}
	return ok(c, http.StatusOK, entries)
}
