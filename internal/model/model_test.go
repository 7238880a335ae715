package model

import (
	"errors"
	"testing"
)

func validParams() ReserveParams {
	return ReserveParams{
		IdempotencyKey: "key-1",
		SenderID:       "acct-000001",
		ReceiverID:     "acct-000002",
		Amount:         500,
		Currency:       "EUR",
	}
}

func TestReserveParamsValidate(t *testing.T) {
	if err := validParams().Validate(); err != nil {
		t.Fatalf("valid params rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*ReserveParams)
	}{
		{"missing key", func(p *ReserveParams) { p.IdempotencyKey = "" }},
		{"missing sender", func(p *ReserveParams) { p.SenderID = "" }},
		{"missing receiver", func(p *ReserveParams) { p.ReceiverID = "" }},
		{"zero amount", func(p *ReserveParams) { p.Amount = 0 }},
		{"negative amount", func(p *ReserveParams) { p.Amount = -100 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validParams()
			tc.mutate(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
