package service

import (
	"context"
	"log/slog"

	"go.mongodb.org/mongo-driver/v2/bson"

	"ecocart.dev/ecocart/api/pkg/global"
	"ecocart.dev/ecocart/api/pkg/models"
)

type OrderService struct {
	orders OrderRepo
	log    *slog.Logger
}

func NewOrderService(orders OrderRepo, log *slog.Logger) *OrderService {
	return &OrderService{orders: orders, log: log}
}

// PlaceOrder appends an order and returns its identifier. Orders are not
// tied to an account.
func (s *OrderService) PlaceOrder(ctx context.Context, req models.CreateOrderRequest) (bson.ObjectID, error) {
	if err := validate(&req, "Missing required order fields"); err != nil {
		return bson.ObjectID{}, err
	}

	id, err := s.orders.Create(ctx, req.ToOrder())
	if err != nil {
		return bson.ObjectID{}, global.NewInternalError("Failed to save order", err)
	}

	s.log.Info("order stored", slog.String("id", id.Hex()), slog.Int("lines", len(req.Cart)))
	return id, nil
}
