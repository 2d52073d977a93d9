package http

import (
	"net/http"
	"strconv"

	echo "github.com/labstack/echo/v4"

	"github.com/acme/customer-service/internal/metrics"
	"github.com/acme/customer-service/internal/model"
	"github.com/acme/customer-service/internal/service/customers"
)

func parseID(c echo.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &customers.NotFoundError{Message: "Customer not found with ID: " + raw}
	}
	return id, nil
}

func listCustomersHandler(svc *customers.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := svc.List(c.Request().Context())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, model.ToResponseList(list))
	}
}

func getCustomerHandler(svc *customers.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return respondError(c, err)
		}
		cust, err := svc.Get(c.Request().Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, cust.ToResponse())
	}
}

func pageCustomersHandler(svc *customers.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		pr := model.ParsePageRequest(c.QueryParam("page"), c.QueryParam("size"), c.QueryParam("sort"))
		list, total, err := svc.Page(c.Request().Context(), "", pr)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, model.NewPageResponse(list, pr, total))
	}
}

// searchCustomersHandler is the legacy unbounded search path.
func searchCustomersHandler(svc *customers.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		list, err := svc.Search(c.Request().Context(), c.QueryParam("q"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, model.ToResponseList(list))
	}
}

func searchPageCustomersHandler(svc *customers.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		pr := model.ParsePageRequest(c.QueryParam("page"), c.QueryParam("size"), c.QueryParam("sort"))
		list, total, err := svc.Page(c.Request().Context(), c.QueryParam("q"), pr)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, model.NewPageResponse(list, pr, total))
	}
}

func getByEmailHandler(svc *customers.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		cust, err := svc.GetByEmail(c.Request().Context(), c.QueryParam("email"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, cust.ToResponse())
	}
}

func getByPhoneHandler(svc *customers.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		cust, err := svc.GetByPhone(c.Request().Context(), c.QueryParam("phone"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, cust.ToResponse())
	}
}

func existsEmailHandler(svc *customers.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		exists, err := svc.ExistsByEmail(c.Request().Context(), c.Param("email"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, exists)
	}
}

func countByLastNameHandler(svc *customers.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		n, err := svc.CountByLastName(c.Request().Context(), c.Param("lastName"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, n)
	}
}

func statsHandler(svc *customers.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := svc.Stats(c.Request().Context())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, stats)
	}
}

func createCustomerHandler(svc *customers.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req model.CustomerRequest
		if err := c.Bind(&req); err != nil {
			verr := &customers.ValidationError{Message: "Malformed request body"}
			metrics.CustomerOpsTotal.WithLabelValues("create", outcomeOf(verr)).Inc()
			return respondError(c, verr)
		}

		cust, err := svc.Create(c.Request().Context(), &req)
		metrics.CustomerOpsTotal.WithLabelValues("create", outcomeOf(err)).Inc()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusCreated, cust.ToResponse())
	}
}

func updateCustomerHandler(svc *customers.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return respondError(c, err)
		}

		var req model.CustomerRequest
		if err := c.Bind(&req); err != nil {
			verr := &customers.ValidationError{Message: "Malformed request body"}
			metrics.CustomerOpsTotal.WithLabelValues("update", outcomeOf(verr)).Inc()
			return respondError(c, verr)
		}

		cust, err := svc.Update(c.Request().Context(), id, &req)
		metrics.CustomerOpsTotal.WithLabelValues("update", outcomeOf(err)).Inc()
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, cust.ToResponse())
	}
}

func deleteCustomerHandler(svc *customers.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := parseID(c)
		if err != nil {
			return respondError(c, err)
		}

		err = svc.Delete(c.Request().Context(), id)
		metrics.CustomerOpsTotal.WithLabelValues("delete", outcomeOf(err)).Inc()
		if err != nil {
			return respondError(c, err)
		}
		return c.NoContent(http.StatusNoContent)
	}
}
