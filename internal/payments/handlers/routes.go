package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Routes struct {
	Dashboard *DashboardHandler
	List      *ListPaymentsHandler
	Detail    *PaymentDetailHandler
	Payment   *PaymentHandler
}

func (r Routes) Register(e *echo.Echo) {
	e.GET("/", r.Dashboard.Handle)
	e.GET("/payments", r.List.Handle)
	e.GET("/payments/new", r.Payment.Show)
	e.POST("/payments/new", r.Payment.Handle)
	e.GET("/payments/:id", r.Detail.Handle)

	// The old standalone form lived here.
	e.GET("/payment/new", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/payments/new")
	})
}
