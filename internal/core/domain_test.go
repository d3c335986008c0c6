package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestTransactionValidate(t *testing.T) {
	ts := time.Date(2025, 3, 14, 12, 30, 0, 0, time.Local)
	good := Transaction{Amount: decimal.NewFromInt(50000), Description: "makan siang", Timestamp: ts}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Amount: decimal.Zero, Description: "a", Timestamp: ts},
		{Amount: decimal.NewFromInt(-5), Description: "a", Timestamp: ts},
		{Amount: decimal.NewFromInt(1), Description: "", Timestamp: ts},
		{Amount: decimal.NewFromInt(1), Description: "   ", Timestamp: ts},
		{Amount: decimal.NewFromInt(1), Description: "a"}, // zero timestamp
	}
	for i, tx := range bads {
		if err := tx.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestView(t *testing.T) {
	ts := time.Date(2025, 3, 14, 9, 5, 0, 0, time.Local)
	v := Transaction{Amount: decimal.NewFromInt(25000), Description: "kopi", Timestamp: ts}.View()
	if v.Date != "2025-03-14" {
		t.Fatalf("unexpected date: %q", v.Date)
	}
	if v.Time != "09:05" {
		t.Fatalf("unexpected time: %q", v.Time)
	}
	if v.Description != "kopi" || !v.Amount.Equal(decimal.NewFromInt(25000)) {
		t.Fatalf("unexpected view: %+v", v)
	}
}
