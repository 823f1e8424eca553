package web

import (
	"net/http"

	"vodadmin/internal/api"
)

type paymentsPage struct {
	AccountID int64
	Payments  []api.Payment
}

func (s *Server) handlePayments(w http.ResponseWriter, r *http.Request) {
	accountID, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	v := view{Title: "Lịch sử thanh toán", Nav: "accounts"}
	payments, err := s.client(r).PaymentHistory(r.Context(), accountID)
	if err != nil {
		if s.abort(w, r, "payments.history", err) {
			return
		}
		v.danger(msgLoadFailed + "thanh toán")
	}
	v.Data = paymentsPage{AccountID: accountID, Payments: payments}
	s.render(w, r, "payments", v)
}
