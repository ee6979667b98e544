package services

import (
	"context"
	"errors"
	"os"

	mt "github.com/OmarAhmadIsamail/Farmer-Place/external/midtrans"
	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"
)

// PaymentService consumes gateway notifications and moves the matching order
// along: settled payments confirm it, failed ones cancel it.
type PaymentService struct {
	Orders OrderStore
}

func NewPaymentService(orders OrderStore) *PaymentService {
	return &PaymentService{Orders: orders}
}

// HandleGatewayNotification processes a midtrans server notification. The
// order id in the payload is the storefront order id used when the snap
// transaction was created.
func (s *PaymentService) HandleGatewayNotification(ctx context.Context, payload map[string]interface{}) error {
	orderID, ok := payload["order_id"].(string)
	if !ok || orderID == "" {
		return errors.New("missing order_id")
	}

	order, err := s.Orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order.Status != model.OrderPending {
		// already processed; retries are safe to ignore
		return nil
	}

	statusCode, _ := payload["status_code"].(string)
	grossAmount, _ := payload["gross_amount"].(string)
	signature, _ := payload["signature_key"].(string)

	if !mt.VerifySignature(
		orderID,
		statusCode,
		grossAmount,
		signature,
		os.Getenv("MIDTRANS_SERVER_KEY"),
	) {
		return errors.New("invalid signature")
	}

	transactionStatus, _ := payload["transaction_status"].(string)
	fraudStatus, _ := payload["fraud_status"].(string)

	switch transactionStatus {
	case "settlement":
		return s.Orders.UpdateStatus(ctx, orderID, model.OrderConfirmed)
	case "capture":
		if fraudStatus == "accept" {
			return s.Orders.UpdateStatus(ctx, orderID, model.OrderConfirmed)
		}
	case "expire", "cancel", "deny":
		return s.Orders.UpdateStatus(ctx, orderID, model.OrderCancelled)
	}
	return nil
}
