package hospital

import (
	"context"
	"fmt"
	"net/http"

	"sanjudas/models"
)

// PaymentAPI is the slice of the backend the payment action consumes.
type PaymentAPI interface {
	PayAppointment(ctx context.Context, token, folio string, amount float64) (*models.PaymentResult, error)
}

type payRequest struct {
	Monto float64 `json:"monto"`
}

type payResponse struct {
	PaymentFolio   FlexID     `json:"folioPago"`
	Folio          FlexID     `json:"paymentFolio"`
	CumulativePaid FlexAmount `json:"montoAcumulado"`
	Cumulative     FlexAmount `json:"cumulativePaid"`
	TotalDue       FlexAmount `json:"totalOrden"`
	Total          FlexAmount `json:"totalDue"`
	FullyPaid      bool       `json:"pagadoCompleto"`
	Fully          bool       `json:"fullyPaid"`
}

// PayAppointment posts a (possibly partial) payment. The backend answers with
// the cumulative amount paid, the order total and whether the order is now
// fully paid; the remaining balance is derived here so callers never compute
// it from stale fields.
func (c *Client) PayAppointment(ctx context.Context, token, folio string, amount float64) (*models.PaymentResult, error) {
	path := fmt.Sprintf("/api/citas/%s/pagar", folio)
	var resp payResponse
	if err := c.do(ctx, token, http.MethodPost, path, nil, payRequest{Monto: amount}, &resp); err != nil {
		return nil, err
	}

	result := &models.PaymentResult{
		PaymentFolio:   firstID(resp.PaymentFolio, resp.Folio),
		CumulativePaid: float64(resp.CumulativePaid),
		TotalDue:       float64(resp.TotalDue),
		FullyPaid:      resp.FullyPaid || resp.Fully,
	}
	if result.CumulativePaid == 0 {
		result.CumulativePaid = float64(resp.Cumulative)
	}
	if result.TotalDue == 0 {
		result.TotalDue = float64(resp.Total)
	}
	result.RemainingBalance = result.TotalDue - result.CumulativePaid
	if result.RemainingBalance < 0 {
		result.RemainingBalance = 0
	}
	return result, nil
}
