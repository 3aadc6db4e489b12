package checkout

import "github.com/shopspring/decimal"

// Delivery and payment method values.
const (
	DeliveryDeliver = "deliver"
	DeliveryPickup  = "pickup"

	PaymentCOD         = "cod"
	PaymentOverCounter = "over_counter"
)

// DefaultDeliveryFee applies when no fee has been configured.
var DefaultDeliveryFee = decimal.NewFromInt(20)

// Fulfillment is the reconciled delivery/payment choice for an order.
type Fulfillment struct {
	DeliveryMethod string          `json:"delivery_method"`
	PaymentMethod  string          `json:"payment_method"`
	DeliveryFee    decimal.Decimal `json:"delivery_fee"`
}

// DeliveryDisplay returns the label used in order confirmations.
func (f Fulfillment) DeliveryDisplay() string {
	if f.DeliveryMethod == DeliveryPickup {
		return "Pick-up"
	}
	return "Deliver"
}

// PaymentDisplay returns the label used in order confirmations.
func (f Fulfillment) PaymentDisplay() string {
	if f.PaymentMethod == PaymentCOD {
		return "Cash on delivery"
	}
	return "Over the counter"
}

// ResolveFulfillment applies the delivery/payment business rules shared by
// the checkout preview and commit paths:
//
//   - unknown delivery methods fall back to deliver
//   - payment defaults to cod when delivering, over_counter otherwise
//   - pickup forces payment to over_counter
//   - cod forces delivery
//   - the delivery fee applies only when delivering
func ResolveFulfillment(deliveryMethod, paymentMethod string, fee decimal.Decimal) Fulfillment {
	if deliveryMethod != DeliveryPickup && deliveryMethod != DeliveryDeliver {
		deliveryMethod = DeliveryDeliver
	}

	if paymentMethod == "" {
		if deliveryMethod == DeliveryDeliver {
			paymentMethod = PaymentCOD
		} else {
			paymentMethod = PaymentOverCounter
		}
	}

	if deliveryMethod == DeliveryPickup {
		paymentMethod = PaymentOverCounter
	} else if paymentMethod == PaymentCOD {
		deliveryMethod = DeliveryDeliver
	}

	deliveryFee := decimal.Zero
	if deliveryMethod == DeliveryDeliver {
		deliveryFee = fee
	}

	return Fulfillment{
		DeliveryMethod: deliveryMethod,
		PaymentMethod:  paymentMethod,
		DeliveryFee:    deliveryFee,
	}
}
