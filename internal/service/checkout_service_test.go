package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "foodparadise/internal/errors"
	"foodparadise/internal/processor"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		price string
		want  int64
	}{
		{"19.99", 1999},
		{"25.50", 2550},
		{"0.01", 1},
		{"10", 1000},
		{"10.005", 1000},
		{"12.345", 1234},
		{"12.349", 1234},
		{"0.004", 0},
	}

	for _, tt := range tests {
		t.Run(tt.price, func(t *testing.T) {
			assert.Equal(t, tt.want, ToMinorUnits(decimal.RequireFromString(tt.price)))
		})
	}
}

func TestCreatePaymentIntent(t *testing.T) {
	p := new(MockProcessor)
	p.On("CreatePaymentIntent", mock.Anything, int64(1999), "usd").
		Return(&processor.Intent{ID: "pi_1", ClientSecret: "pi_1_secret", Amount: 1999, Currency: "usd"}, nil)

	svc := NewCheckoutService(p, "usd", nil)
	intent, err := svc.CreatePaymentIntent(context.Background(), decimal.RequireFromString("19.99"), "")
	require.NoError(t, err)

	assert.Equal(t, "pi_1_secret", intent.ClientSecret)
	p.AssertExpectations(t)
}

func TestCreatePaymentIntent_RejectsNonPositive(t *testing.T) {
	p := new(MockProcessor)
	svc := NewCheckoutService(p, "usd", nil)

	for _, price := range []string{"0", "-5", "0.009"} {
		_, err := svc.CreatePaymentIntent(context.Background(), decimal.RequireFromString(price), "usd")
		assert.ErrorIs(t, err, apperrors.ErrInvalidAmount, price)
	}
	p.AssertNotCalled(t, "CreatePaymentIntent", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePaymentIntent_UpstreamFailure(t *testing.T) {
	p := new(MockProcessor)
	p.On("CreatePaymentIntent", mock.Anything, int64(500), "thb").Return(nil, errors.New("card_declined"))

	svc := NewCheckoutService(p, "usd", nil)
	_, err := svc.CreatePaymentIntent(context.Background(), decimal.NewFromInt(5), "THB")

	assert.ErrorIs(t, err, apperrors.ErrUpstreamProcessor)
	assert.Contains(t, err.Error(), "card_declined")
}
