package httpx

import (
	"github.com/ariefcatur/go-bbq-preorder/internal/checkout"
	"github.com/ariefcatur/go-bbq-preorder/internal/orders"
	"github.com/ariefcatur/go-bbq-preorder/internal/payments"
	"github.com/go-chi/chi/v5"
	"net/http"
)

type CartView struct {
	ID             string                 `json:"id"`
	State          orders.State           `json:"state"`
	Lines          []orders.PricedLine    `json:"lines"`
	Subtotal       string                 `json:"subtotal"`
	AmountCents    int64                  `json:"amount_cents"`
	EventDate      string                 `json:"event_date"`
	IsFuture       bool                   `json:"is_future"`
	AllowedMethods []orders.PaymentMethod `json:"allowed_methods"`
	PaymentMethod  orders.PaymentMethod   `json:"payment_method"`
	Receipt        *orders.CaptureReceipt `json:"receipt,omitempty"`
	OrderID        string                 `json:"order_id,omitempty"`
}

func (h *StorefrontHandler) view(id string, c orders.Cart) (CartView, error) {
	lines, err := c.Priced(h.Menu)
	if err != nil {
		return CartView{}, err
	}
	sub := orders.Subtotal(lines)
	p := h.Checkout.Policy
	return CartView{
		ID:             id,
		State:          c.State(),
		Lines:          lines,
		Subtotal:       sub.StringFixed(2),
		AmountCents:    orders.AmountCents(sub),
		EventDate:      c.EventDate.String(),
		IsFuture:       p.IsFuture(c.EventDate),
		AllowedMethods: p.AllowedMethods(c.EventDate),
		PaymentMethod:  c.PaymentMethod,
		Receipt:        c.Receipt,
		OrderID:        c.OrderID,
	}, nil
}

func (h *StorefrontHandler) respondCart(w http.ResponseWriter, code int, id string, c orders.Cart, err error) {
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	v, err := h.view(id, c)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, code, v)
}

func (h *StorefrontHandler) createCart(w http.ResponseWriter, r *http.Request) {
	id, c, err := h.Checkout.NewCart(r.Context())
	h.respondCart(w, http.StatusCreated, id, c, err)
}

func (h *StorefrontHandler) getCart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := h.Checkout.Cart(r.Context(), id)
	h.respondCart(w, http.StatusOK, id, c, err)
}

func (h *StorefrontHandler) clearCart(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := h.Checkout.UpdateCart(r.Context(), id, func(c *orders.Cart) error {
		c.Clear(h.Checkout.Policy)
		return nil
	})
	h.respondCart(w, http.StatusOK, id, c, err)
}

type addItemReq struct {
	ItemID string `json:"item_id"`
}

func (h *StorefrontHandler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid json", Kind: "validation"})
		return
	}
	id := chi.URLParam(r, "id")
	c, err := h.Checkout.UpdateCart(r.Context(), id, func(c *orders.Cart) error {
		return c.Add(h.Menu, req.ItemID)
	})
	h.respondCart(w, http.StatusOK, id, c, err)
}

type setQtyReq struct {
	Qty int `json:"qty"`
}

func (h *StorefrontHandler) setQuantity(w http.ResponseWriter, r *http.Request) {
	var req setQtyReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid json", Kind: "validation"})
		return
	}
	id, itemID := chi.URLParam(r, "id"), chi.URLParam(r, "itemID")
	c, err := h.Checkout.UpdateCart(r.Context(), id, func(c *orders.Cart) error {
		return c.SetQuantity(h.Menu, itemID, req.Qty)
	})
	h.respondCart(w, http.StatusOK, id, c, err)
}

func (h *StorefrontHandler) removeItem(w http.ResponseWriter, r *http.Request) {
	id, itemID := chi.URLParam(r, "id"), chi.URLParam(r, "itemID")
	c, err := h.Checkout.UpdateCart(r.Context(), id, func(c *orders.Cart) error {
		return c.Remove(itemID)
	})
	h.respondCart(w, http.StatusOK, id, c, err)
}

type setDateReq struct {
	EventDate string `json:"event_date"`
}

func (h *StorefrontHandler) setDate(w http.ResponseWriter, r *http.Request) {
	var req setDateReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid json", Kind: "validation"})
		return
	}
	id := chi.URLParam(r, "id")
	c, err := h.Checkout.SetEventDate(r.Context(), id, req.EventDate)
	h.respondCart(w, http.StatusOK, id, c, err)
}

type choosePaymentReq struct {
	Method string `json:"method"`
}

func (h *StorefrontHandler) choosePayment(w http.ResponseWriter, r *http.Request) {
	var req choosePaymentReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid json", Kind: "validation"})
		return
	}
	id := chi.URLParam(r, "id")
	c, err := h.Checkout.UpdateCart(r.Context(), id, func(c *orders.Cart) error {
		return c.ChoosePayment(h.Checkout.Policy, paymentMethod(req.Method))
	})
	h.respondCart(w, http.StatusOK, id, c, err)
}

type captureCartReq struct {
	SourceID   string `json:"source_id"`
	BuyerEmail string `json:"buyer_email"`
}

func (h *StorefrontHandler) captureCart(w http.ResponseWriter, r *http.Request) {
	var req captureCartReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid json", Kind: "validation"})
		return
	}
	id := chi.URLParam(r, "id")
	c, _, err := h.Checkout.CaptureCart(r.Context(), id, payments.BrowserNonce{}, payments.CardDetails{Nonce: req.SourceID}, req.BuyerEmail)
	h.respondCart(w, http.StatusOK, id, c, err)
}

type submitCartReq struct {
	CustomerName  string `json:"customer_name"`
	Phone         string `json:"phone"`
	CustomerEmail string `json:"customer_email"`
	PickupTime    string `json:"pickup_time"`
	Notes         string `json:"notes"`
}

func (h *StorefrontHandler) submitCart(w http.ResponseWriter, r *http.Request) {
	var req submitCartReq
	if err := decode(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid json", Kind: "validation"})
		return
	}
	res, err := h.Checkout.SubmitCart(r.Context(), chi.URLParam(r, "id"), checkout.Customer{
		Name:       req.CustomerName,
		Phone:      req.Phone,
		Email:      req.CustomerEmail,
		PickupTime: req.PickupTime,
		Notes:      req.Notes,
	})
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, SubmitOrderResp{OK: true, Detail: res.Outcome.Detail(), Outcome: string(res.Outcome), OrderID: res.OrderID})
}
