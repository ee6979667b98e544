package services

import (
	"context"

	"github.com/OmarAhmadIsamail/Farmer-Place/internal/model"
)

type EmailSender interface {
	SendOrderConfirmation(ctx context.Context, toEmail string, order *model.Order) error
}
