package checkout

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestResolveFulfillment(t *testing.T) {
	fee := decimal.NewFromInt(20)

	tests := []struct {
		name         string
		delivery     string
		payment      string
		wantDelivery string
		wantPayment  string
		wantFee      decimal.Decimal
	}{
		{"deliver with cod", DeliveryDeliver, PaymentCOD, DeliveryDeliver, PaymentCOD, fee},
		{"deliver defaults to cod", DeliveryDeliver, "", DeliveryDeliver, PaymentCOD, fee},
		{"pickup defaults to over counter", DeliveryPickup, "", DeliveryPickup, PaymentOverCounter, decimal.Zero},
		{"pickup forces over counter", DeliveryPickup, PaymentCOD, DeliveryPickup, PaymentOverCounter, decimal.Zero},
		{"cod forces delivery", DeliveryDeliver, PaymentCOD, DeliveryDeliver, PaymentCOD, fee},
		{"unknown delivery falls back to deliver", "teleport", "", DeliveryDeliver, PaymentCOD, fee},
		{"empty delivery falls back to deliver", "", "", DeliveryDeliver, PaymentCOD, fee},
		{"deliver over counter allowed", DeliveryDeliver, PaymentOverCounter, DeliveryDeliver, PaymentOverCounter, fee},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveFulfillment(tt.delivery, tt.payment, fee)
			assert.Equal(t, tt.wantDelivery, got.DeliveryMethod)
			assert.Equal(t, tt.wantPayment, got.PaymentMethod)
			assert.True(t, got.DeliveryFee.Equal(tt.wantFee),
				"fee = %s, want %s", got.DeliveryFee, tt.wantFee)
		})
	}
}

func TestFulfillmentDisplay(t *testing.T) {
	f := ResolveFulfillment(DeliveryPickup, "", decimal.NewFromInt(20))
	assert.Equal(t, "Pick-up", f.DeliveryDisplay())
	assert.Equal(t, "Over the counter", f.PaymentDisplay())

	f = ResolveFulfillment(DeliveryDeliver, PaymentCOD, decimal.NewFromInt(20))
	assert.Equal(t, "Deliver", f.DeliveryDisplay())
	assert.Equal(t, "Cash on delivery", f.PaymentDisplay())
}
