package services

import (
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// SnapGateway abstracts the Midtrans Snap client for services and tests.
type SnapGateway interface {
	CreateSnapToken(orderID string, amount float64, customerName, customerEmail string) (string, error)
}

// MidtransGateway implements SnapGateway using the official Midtrans SDK.
type MidtransGateway struct {
	client     snap.Client
	webhookURL string
}

// NewMidtransGateway creates a Snap client for the given environment
// ("sandbox" or "production").
func NewMidtransGateway(serverKey, env, webhookURL string) *MidtransGateway {
	midtransEnv := midtrans.Sandbox
	if env == "production" {
		midtransEnv = midtrans.Production
	}

	g := &MidtransGateway{webhookURL: webhookURL}
	g.client.New(serverKey, midtransEnv)
	return g
}

// CreateSnapToken requests a hosted-checkout session token for the given
// order. Amounts are rupiah, so the gross amount is a whole number.
func (g *MidtransGateway) CreateSnapToken(orderID string, amount float64, customerName, customerEmail string) (string, error) {
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: int64(amount),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: customerName,
			Email: customerEmail,
		},
		Callbacks: &snap.Callbacks{
			Finish: g.webhookURL,
		},
	}

	resp, err := g.client.CreateTransaction(req)
	if err != nil {
		return "", fmt.Errorf("midtrans create transaction: %w", err)
	}
	return resp.Token, nil
}
