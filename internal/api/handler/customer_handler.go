package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/erptelco/backoffice/internal/api/metrics"
	"github.com/erptelco/backoffice/internal/core/domain"
	"github.com/erptelco/backoffice/internal/core/ports"
)

// CustomerHandler handles HTTP requests for customer records.
type CustomerHandler struct {
	service ports.CustomerService
}

func NewCustomerHandler(service ports.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

type createCustomerRequest struct {
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name"`
	Class         string `json:"class" validate:"required"`
	SubClass      string `json:"sub_class"`
	Country       string `json:"country"`
	CountryCode   string `json:"country_code"`
	Email         string `json:"email" validate:"omitempty,email"`
	ContactNumber int64  `json:"contact_number"`
	AddressLine1  string `json:"address_line1"`
	AddressLine2  string `json:"address_line2"`
	Region        string `json:"region"`
}

// customerResponse is a customer record plus its derived display name. The
// display name is computed on the way out and never stored.
type customerResponse struct {
	*domain.Customer
	FullName string `json:"full_name"`
}

func toResponse(c *domain.Customer) customerResponse {
	return customerResponse{Customer: c, FullName: c.DisplayName()}
}

// Get handles GET /customer/get. With an id query parameter it returns that
// customer; without one it returns the full list.
//
// @Summary      Get customer(s)
// @Tags         customers
// @Produce      json
// @Security     BearerAuth
// @Param        id   query     int  false  "Customer id; omit to list all"
// @Success      200  {object}  customerResponse
// @Failure      404  {object}  map[string]string
// @Router       /customer/get [get]
func (h *CustomerHandler) Get(c echo.Context) error {
	if _, err := ctxPrincipal(c); err != nil {
		return err
	}

	rawID := c.QueryParam("id")
	if rawID == "" {
		return h.list(c)
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id must be an integer")
	}

	customer, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toResponse(customer))
}

func (h *CustomerHandler) list(c echo.Context) error {
	customers, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]customerResponse, 0, len(customers))
	for _, customer := range customers {
		out = append(out, toResponse(customer))
	}
	return c.JSON(http.StatusOK, out)
}

// Create handles POST /customer/new.
//
// @Summary      Create a new customer
// @Tags         customers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCustomerRequest  true  "Customer details"
// @Success      201   {object}  customerResponse
// @Failure      400   {object}  map[string]string
// @Router       /customer/new [post]
func (h *CustomerHandler) Create(c echo.Context) error {
	if _, err := ctxPrincipal(c); err != nil {
		return err
	}

	var req createCustomerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), &domain.Customer{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Class:         req.Class,
		SubClass:      req.SubClass,
		Country:       req.Country,
		CountryCode:   req.CountryCode,
		Email:         req.Email,
		ContactNumber: req.ContactNumber,
		AddressLine1:  req.AddressLine1,
		AddressLine2:  req.AddressLine2,
		Region:        req.Region,
	})
	if err != nil {
		return err
	}

	metrics.CustomersCreatedTotal.WithLabelValues(created.Class).Inc()
	return c.JSON(http.StatusCreated, toResponse(created))
}
