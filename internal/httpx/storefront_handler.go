package httpx

import (
	"context"
	"github.com/ariefcatur/go-bbq-preorder/internal/catalog"
	"github.com/ariefcatur/go-bbq-preorder/internal/checkout"
	"github.com/ariefcatur/go-bbq-preorder/internal/orders"
	"github.com/ariefcatur/go-bbq-preorder/internal/payments"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type StorefrontHandler struct {
	Checkout *checkout.Service
	Menu     *catalog.Catalog
	Log      *slog.Logger
}

func (h *StorefrontHandler) Register(r chi.Router) {
	r.Get("/api/menu", h.menu)
	r.Post("/api/order/submit", h.submitOrder)
	r.Post("/api/square/create-payment", h.createPayment)

	r.Route("/api/carts", func(r chi.Router) {
		r.Post("/", h.createCart)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getCart)
			r.Delete("/", h.clearCart)
			r.Post("/items", h.addItem)
			r.Put("/items/{itemID}", h.setQuantity)
			r.Delete("/items/{itemID}", h.removeItem)
			r.Put("/date", h.setDate)
			r.Put("/payment-method", h.choosePayment)
			r.Post("/payment", h.captureCart)
			r.Post("/submit", h.submitCart)
		})
	})
}

func (h *StorefrontHandler) menu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": h.Menu.Categories()})
}

type submitLine struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Qty       int             `json:"qty"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type squarePaid struct {
	PaymentID  string `json:"paymentId"`
	ReceiptURL string `json:"receiptUrl"`
}

type SubmitOrderReq struct {
	CustomerName  string           `json:"customerName"`
	Phone         string           `json:"phone"`
	CustomerEmail string           `json:"customerEmail"`
	EventDate     string           `json:"eventDate"`
	PickupTime    string           `json:"pickupTime"`
	Notes         string           `json:"notes"`
	Lines         []submitLine     `json:"lines"`
	Subtotal      *decimal.Decimal `json:"subtotal"`
	PaymentMethod string           `json:"paymentMethod"`
	PaymentStatus string           `json:"paymentStatus"`
	Square        *squarePaid      `json:"square"`
}

type SubmitOrderResp struct {
	OK      bool   `json:"ok"`
	Detail  string `json:"detail"`
	Outcome string `json:"outcome"`
	OrderID string `json:"orderId"`
}

// paymentMethod accepts the processor name older clients send for online payment.
func paymentMethod(s string) orders.PaymentMethod {
	if strings.EqualFold(s, "square") {
		return orders.MethodOnline
	}
	return orders.PaymentMethod(strings.ToLower(strings.TrimSpace(s)))
}

func (req SubmitOrderReq) input() orders.OrderInput {
	in := orders.OrderInput{
		CustomerName:  req.CustomerName,
		Phone:         req.Phone,
		Email:         req.CustomerEmail,
		EventDate:     req.EventDate,
		PickupTime:    req.PickupTime,
		Notes:         req.Notes,
		Subtotal:      req.Subtotal,
		PaymentMethod: paymentMethod(req.PaymentMethod),
		PaymentStatus: orders.PaymentStatus(strings.ToLower(strings.TrimSpace(req.PaymentStatus))),
	}
	for _, l := range req.Lines {
		in.Lines = append(in.Lines, orders.PricedLine{ID: l.ID, Name: l.Name, UnitPrice: l.UnitPrice, Qty: l.Qty, LineTotal: l.LineTotal})
	}
	if req.Square != nil && req.Square.PaymentID != "" {
		in.Receipt = &orders.CaptureReceipt{CaptureID: req.Square.PaymentID, ReceiptURL: req.Square.ReceiptURL}
	}
	return in
}

func (h *StorefrontHandler) submitOrder(w http.ResponseWriter, r *http.Request) {
	var req SubmitOrderReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid json", Kind: "validation"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	res, err := h.Checkout.SubmitOrder(ctx, req.input())
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, SubmitOrderResp{OK: true, Detail: res.Outcome.Detail(), Outcome: string(res.Outcome), OrderID: res.OrderID})
}

type CreatePaymentResp struct {
	OK         bool   `json:"ok"`
	PaymentID  string `json:"paymentId"`
	ReceiptURL string `json:"receiptUrl,omitempty"`
	Status     string `json:"status"`
}

func (h *StorefrontHandler) createPayment(w http.ResponseWriter, r *http.Request) {
	var req payments.CaptureRequest
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "Invalid payment request.", Kind: "validation"})
		return
	}

	rc, err := h.Checkout.CreatePayment(r.Context(), req, "")
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, CreatePaymentResp{OK: true, PaymentID: rc.PaymentID, ReceiptURL: rc.ReceiptURL, Status: rc.Status})
}
