package billing

import (
	"context"
	"strings"
	"testing"
)

func TestPlansAreStable(t *testing.T) {
	first := Plans()
	second := Plans()

	if len(first) != 4 {
		t.Fatalf("expected 4 plans, got %d", len(first))
	}
	for i := range first {
		if first[i].ID != second[i].ID || first[i].PriceCents != second[i].PriceCents {
			t.Fatalf("plan %d differs across calls: %+v vs %+v", i, first[i], second[i])
		}
	}

	// Mutating a returned slice must not leak into the table.
	first[0].Name = "tampered"
	if Plans()[0].Name == "tampered" {
		t.Fatal("plan table was mutated through the returned slice")
	}
}

func TestLimitsForUnknownPlanFallsBackToFree(t *testing.T) {
	free := LimitsFor(PlanFree)
	unknown := LimitsFor("platinum")

	if unknown != free {
		t.Fatalf("expected free limits, got %+v", unknown)
	}
}

func TestIsPremium(t *testing.T) {
	cases := map[string]bool{
		PlanFree:       false,
		PlanBasic:      false,
		PlanPro:        true,
		PlanEnterprise: true,
		"platinum":     false,
	}

	for planID, want := range cases {
		if got := IsPremium(planID); got != want {
			t.Errorf("IsPremium(%q) = %v, want %v", planID, got, want)
		}
	}
}

func TestMockBillerCheckoutURL(t *testing.T) {
	url, err := MockBiller{}.CreateCheckout(context.Background(), CheckoutRequest{
		UserID: "user-1",
		PlanID: PlanPro,
	})
	if err != nil {
		t.Fatalf("mock checkout: %v", err)
	}
	if !strings.HasPrefix(url, "https://") || !strings.Contains(url, PlanPro) {
		t.Fatalf("unexpected checkout url %q", url)
	}
}

func TestStripeBillerUnconfigured(t *testing.T) {
	_, err := NewStripeBiller("").CreateCheckout(context.Background(), CheckoutRequest{PlanID: PlanPro})
	if err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
