package create_slot_hold

import (
	"context"

	createSlotHold "github.com/vkarpovs/CBP-BookingService/internal/usecase/create_slot_hold"
)

type CreateSlotHoldUseCase interface {
	Execute(ctx context.Context, req *createSlotHold.Request) (*createSlotHold.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
