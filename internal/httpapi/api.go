package httpapi

import (
	"log/slog"

	"certquiz/internal/bank"
)

type API struct {
	bank   *bank.Bank
	logger *slog.Logger
}

func NewAPI(b *bank.Bank, logger *slog.Logger) *API {
	if b == nil {
		b = bank.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &API{
		bank:   b,
		logger: logger,
	}
}
