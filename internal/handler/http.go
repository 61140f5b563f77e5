package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/thriftly/checkout-service/internal/entities"
	"github.com/thriftly/checkout-service/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type CartService interface {
	GetCart(ctx context.Context, buyerID string) (entities.Cart, error)
	AddItem(ctx context.Context, item entities.CartItem) error
	RemoveItem(ctx context.Context, buyerID, itemID string) error
}

type ShippingService interface {
	QuoteRates(ctx context.Context, groups []entities.SellerGroup, to entities.Address) (entities.QuoteSet, error)
}

type CheckoutService interface {
	Begin(ctx context.Context, in entities.CheckoutInput) (entities.CheckoutAttempt, error)
	Advance(ctx context.Context, attemptID uuid.UUID) (url string, done bool, err error)
}

type OrderService interface {
	GetOrderBySessionID(ctx context.Context, sessionID string) (entities.Order, error)
	ListOrders(ctx context.Context, buyerID string) ([]entities.Order, error)
}

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	cart     CartService
	shipping ShippingService
	checkout CheckoutService
	orders   OrderService
}

func NewHTTPHandler(logger *slog.Logger, cart CartService, shipping ShippingService, checkout CheckoutService, orders OrderService) *HTTPHandler {
	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "http")),
		validate: validator.New(),
		cart:     cart,
		shipping: shipping,
		checkout: checkout,
		orders:   orders,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Get("/cart/{buyer_id}", h.GetCart)
	r.Post("/cart/{buyer_id}/items", h.AddCartItem)
	r.Delete("/cart/{buyer_id}/items/{item_id}", h.RemoveCartItem)

	r.Post("/checkout/rates", h.QuoteRates)
	r.Post("/checkout", h.BeginCheckout)
	r.Post("/checkout/{attempt_id}/advance", h.AdvanceCheckout)

	r.Get("/order/session/{session_id}", h.GetOrderBySession)
	r.Get("/orders/{buyer_id}", h.ListOrders)

	r.Get("/swagger/*", httpSwagger.Handler())
}

// GetCart возвращает корзину, сгруппированную по продавцам.
// @Summary      Корзина покупателя
// @Tags         cart
// @Param        buyer_id   path      string  true  "Идентификатор покупателя"
// @Success      200  {object}  Cart
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /cart/{buyer_id} [get]
func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	buyerID := chi.URLParam(r, "buyer_id")

	if err := h.validate.Var(buyerID, "required"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	cart, err := h.cart.GetCart(ctx, buyerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get cart", slog.Any("error", err), slog.String("buyer_id", buyerID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, CartEntityToJSON(cart), http.StatusOK)
}

// AddCartItem добавляет товар в корзину.
// @Summary      Добавить товар в корзину
// @Tags         cart
// @Param        buyer_id   path      string    true  "Идентификатор покупателя"
// @Param        item       body      CartItem  true  "Товар"
// @Success      201  "Товар добавлен"
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /cart/{buyer_id}/items [post]
func (h *HTTPHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	buyerID := chi.URLParam(r, "buyer_id")

	var item CartItem
	if err := utils.DecodeBody(r, &item); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(item); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	if err := h.cart.AddItem(ctx, CartItemJSONToEntity(buyerID, item)); err != nil {
		if errors.Is(err, entities.ErrInvalidQuantity) {
			utils.WriteError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to add cart item", slog.Any("error", err), slog.String("buyer_id", buyerID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// RemoveCartItem убирает товар из корзины.
// @Summary      Удалить товар из корзины
// @Tags         cart
// @Param        buyer_id   path      string  true  "Идентификатор покупателя"
// @Param        item_id    path      string  true  "Идентификатор товара"
// @Success      204  "Товар удалён"
// @Failure      404  {object}  utils.ErrorResponse "Товар не найден"
// @Router       /cart/{buyer_id}/items/{item_id} [delete]
func (h *HTTPHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	buyerID := chi.URLParam(r, "buyer_id")
	itemID := chi.URLParam(r, "item_id")

	err := h.cart.RemoveItem(ctx, buyerID, itemID)
	if errors.Is(err, entities.ErrCartItemNotFound) {
		utils.WriteError(w, "cart item not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to remove cart item", slog.Any("error", err), slog.String("buyer_id", buyerID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// QuoteRates запрашивает ставки доставки по каждому продавцу.
// @Summary      Ставки доставки
// @Tags         checkout
// @Param        request  body      QuoteRequest  true  "Покупатель и адрес"
// @Success      200  {object}  QuoteResponse
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /checkout/rates [post]
func (h *HTTPHandler) QuoteRates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req QuoteRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	cart, err := h.cart.GetCart(ctx, req.BuyerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get cart", slog.Any("error", err), slog.String("buyer_id", req.BuyerID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	quotes, err := h.shipping.QuoteRates(ctx, cart.Groups, AddressJSONToEntity(req.ToAddress))
	if errors.Is(err, entities.ErrIncompleteAddress) || errors.Is(err, entities.ErrCartEmpty) {
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to quote rates", slog.Any("error", err), slog.String("buyer_id", req.BuyerID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, QuoteSetEntityToJSON(quotes), http.StatusOK)
}

// BeginCheckout создаёт платёжные сессии по продавцам.
// @Summary      Начать оформление
// @Tags         checkout
// @Param        request  body      CheckoutRequest  true  "Параметры оформления"
// @Success      201  {object}  CheckoutResponse
// @Failure      400  {object}  utils.ValidationErrorResponse "Ошибка валидации"
// @Failure      409  {object}  utils.ErrorResponse "Оформление заблокировано"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /checkout [post]
func (h *HTTPHandler) BeginCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CheckoutRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	selected := make(map[string]entities.Rate, len(req.SelectedRates))
	for sellerID, rate := range req.SelectedRates {
		selected[sellerID] = RateJSONToEntity(rate)
	}

	attempt, err := h.checkout.Begin(ctx, entities.CheckoutInput{
		BuyerID:             req.BuyerID,
		To:                  AddressJSONToEntity(req.ToAddress),
		SelectedRates:       selected,
		AcknowledgedSellers: req.AcknowledgedSellers,
	})

	switch {
	case errors.Is(err, entities.ErrIncompleteAddress),
		errors.Is(err, entities.ErrCartEmpty),
		errors.Is(err, entities.ErrNothingToCheckout):
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, entities.ErrCheckoutBlocked):
		utils.WriteError(w, err.Error(), http.StatusConflict)
		return
	case err != nil:
		h.logger.ErrorContext(ctx, "failed to begin checkout", slog.Any("error", err), slog.String("buyer_id", req.BuyerID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, CheckoutResponse{
		AttemptID:     attempt.ID.String(),
		URL:           attempt.Sessions[0].URL,
		TotalSessions: attempt.TotalSessions,
		Pending:       len(attempt.PendingSessions()),
	}, http.StatusCreated)
}

// AdvanceCheckout выдаёт следующую ссылку оплаты из очереди попытки.
// @Summary      Следующая платёжная сессия
// @Tags         checkout
// @Param        attempt_id   path      string  true  "Идентификатор попытки"
// @Success      200  {object}  AdvanceResponse
// @Failure      404  {object}  utils.ErrorResponse "Попытка не найдена"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /checkout/{attempt_id}/advance [post]
func (h *HTTPHandler) AdvanceCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	attemptID, err := uuid.Parse(chi.URLParam(r, "attempt_id"))
	if err != nil {
		utils.WriteError(w, "invalid attempt id", http.StatusBadRequest)
		return
	}

	url, done, err := h.checkout.Advance(ctx, attemptID)
	if errors.Is(err, entities.ErrAttemptNotFound) {
		utils.WriteError(w, "checkout attempt not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to advance checkout", slog.Any("error", err), slog.String("attempt_id", attemptID.String()))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, AdvanceResponse{URL: url, Done: done}, http.StatusOK)
}

// GetOrderBySession возвращает заказ по идентификатору платёжной сессии.
// @Summary      Заказ по сессии оплаты
// @Tags         orders
// @Param        session_id   path      string  true  "Идентификатор сессии Stripe"
// @Success      200  {object}  Order
// @Failure      404  {object}  utils.ErrorResponse "Заказ не найден"
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /order/session/{session_id} [get]
func (h *HTTPHandler) GetOrderBySession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sessionID := chi.URLParam(r, "session_id")

	if err := h.validate.Var(sessionID, "required"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.GetOrderBySessionID(ctx, sessionID)

	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	}

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get order", slog.Any("error", err), slog.String("session_id", sessionID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

// ListOrders возвращает историю заказов покупателя.
// @Summary      История заказов
// @Tags         orders
// @Param        buyer_id   path      string  true  "Идентификатор покупателя"
// @Success      200  {array}  Order
// @Failure      500  {object}  utils.ErrorResponse "Внутренняя ошибка сервера"
// @Router       /orders/{buyer_id} [get]
func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	buyerID := chi.URLParam(r, "buyer_id")

	if err := h.validate.Var(buyerID, "required"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	orders, err := h.orders.ListOrders(ctx, buyerID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list orders", slog.Any("error", err), slog.String("buyer_id", buyerID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	res := make([]Order, 0, len(orders))
	for _, o := range orders {
		res = append(res, OrderEntityToJSON(o))
	}
	utils.WriteJSON(w, res, http.StatusOK)
}
