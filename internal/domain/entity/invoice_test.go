package entity

import (
	"testing"

	"github.com/printflow/printflow-api/internal/domain/enum"
)

func TestInvoiceCanBeModified(t *testing.T) {
	cases := []struct {
		name     string
		status   enum.InvoiceStatus
		payments int64
		want     bool
	}{
		{"draft unpaid", enum.InvoiceStatusDraft, 0, true},
		{"pending unpaid", enum.InvoiceStatusPending, 0, true},
		{"draft with payment", enum.InvoiceStatusDraft, 1, false},
		{"confirmed", enum.InvoiceStatusConfirmed, 0, false},
		{"cancelled", enum.InvoiceStatusCancelled, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			inv := Invoice{Status: c.status}
			if got := inv.CanBeModified(c.payments); got != c.want {
				t.Errorf("CanBeModified = %v, want %v", got, c.want)
			}
		})
	}
}

func TestInvoiceCanBeDeleted(t *testing.T) {
	inv := Invoice{Status: enum.InvoiceStatusDraft}
	if !inv.CanBeDeleted(0) {
		t.Error("unpaid draft should be deletable")
	}
	if inv.CanBeDeleted(1) {
		t.Error("draft with payments should not be deletable")
	}
	inv.Status = enum.InvoiceStatusPending
	if inv.CanBeDeleted(0) {
		t.Error("pending invoice should not be deletable")
	}
}

func TestCompanyEffectiveTaxRate(t *testing.T) {
	c := Company{}
	if got := c.EffectiveTaxRate(0.12); got != 0.12 {
		t.Errorf("EffectiveTaxRate = %v, want fallback 0.12", got)
	}
	c.TaxRate = 0.16
	if got := c.EffectiveTaxRate(0.12); got != 0.16 {
		t.Errorf("EffectiveTaxRate = %v, want configured 0.16", got)
	}
}
