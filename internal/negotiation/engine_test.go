package negotiation

import (
	"errors"
	"strings"
	"testing"
)

func TestAssessFixtures(t *testing.T) {
	tests := []struct {
		name    string
		in      Input
		label   string
		tier    int
		counter float64
	}{
		{"vendor excellent", Input{Role: RoleVendor, AskingPrice: 50, Offer: 48}, "excellent", 1, 50},
		{"vendor good", Input{Role: RoleVendor, AskingPrice: 50, Offer: 43}, "good", 2, 47},
		{"vendor low", Input{Role: RoleVendor, AskingPrice: 50, Offer: 38}, "low", 3, 45},
		{"vendor very low", Input{Role: RoleVendor, AskingPrice: 50, Offer: 30}, "very-low", 4, 43},
		{"vendor offer above asking", Input{Role: RoleVendor, AskingPrice: 50, Offer: 70}, "excellent", 1, 60},
		{"buyer fair", Input{Role: RoleBuyer, AskingPrice: 52, Offer: 45, MarketPrice: 50}, "fair", 1, 51},
		{"buyer slightly high", Input{Role: RoleBuyer, AskingPrice: 56, Offer: 45, MarketPrice: 50}, "slightly-high", 2, 53},
		{"buyer high", Input{Role: RoleBuyer, AskingPrice: 60, Offer: 50, MarketPrice: 50}, "high", 3, 55},
		{"buyer very high", Input{Role: RoleBuyer, AskingPrice: 80, Offer: 50, MarketPrice: 50}, "very-high", 4, 50},
		{"buyer default market", Input{Role: RoleBuyer, AskingPrice: 60, Offer: 50}, "slightly-high", 2, 57},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Assess(tt.in)
			if err != nil {
				t.Fatalf("Assess: %v", err)
			}
			if res.Label != tt.label || res.Tier != tt.tier {
				t.Fatalf("got tier %d %q, want %d %q", res.Tier, res.Label, tt.tier, tt.label)
			}
			if res.CounterOffer != tt.counter {
				t.Fatalf("counter %v, want %v", res.CounterOffer, tt.counter)
			}
			if res.Assessment == "" || res.Color == "" || res.Phrase == "" {
				t.Fatalf("incomplete result %+v", res)
			}
		})
	}
}

func TestAssessDefaultMarket(t *testing.T) {
	res, err := Assess(Input{Role: RoleVendor, AskingPrice: 50, Offer: 48})
	if err != nil {
		t.Fatal(err)
	}
	if res.MarketPrice != 45 {
		t.Fatalf("market %v, want 45", res.MarketPrice)
	}
	res, err = Assess(Input{Role: RoleVendor, AskingPrice: 50, Offer: 48, MarketPrice: -3})
	if err != nil || res.MarketPrice != 45 {
		t.Fatalf("non-positive market should default, got %v %v", res.MarketPrice, err)
	}
}

func TestAssessRejectsBadInput(t *testing.T) {
	for _, in := range []Input{
		{Role: RoleVendor, AskingPrice: 0, Offer: 10},
		{Role: RoleVendor, AskingPrice: 10, Offer: 0},
		{Role: RoleBuyer, AskingPrice: -1, Offer: 10, MarketPrice: 10},
	} {
		if _, err := Assess(in); !errors.Is(err, ErrInvalidPrice) {
			t.Errorf("Assess(%+v) err = %v, want ErrInvalidPrice", in, err)
		}
	}
	if _, err := Assess(Input{Role: "broker", AskingPrice: 10, Offer: 10}); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("unknown role err = %v", err)
	}
}

func TestVendorCounterNeverBelowOffer(t *testing.T) {
	for asking := 1.0; asking <= 200; asking += 1.5 {
		for offer := 0.5; offer <= 260; offer += 0.7 {
			res, err := Assess(Input{Role: RoleVendor, AskingPrice: asking, Offer: offer})
			if err != nil {
				t.Fatal(err)
			}
			floor := offer
			if asking < floor {
				floor = asking
			}
			if res.CounterOffer < floor {
				t.Fatalf("asking %v offer %v: counter %v below %v", asking, offer, res.CounterOffer, floor)
			}
		}
	}
}

func TestBuyerCounterNeverAboveAsking(t *testing.T) {
	for asking := 1.0; asking <= 200; asking += 1.3 {
		for market := 0.5; market <= 260; market += 0.9 {
			res, err := Assess(Input{Role: RoleBuyer, AskingPrice: asking, Offer: 1, MarketPrice: market})
			if err != nil {
				t.Fatal(err)
			}
			if res.CounterOffer > asking {
				t.Fatalf("asking %v market %v: counter %v above asking", asking, market, res.CounterOffer)
			}
		}
	}
}

func TestAssessDeterministic(t *testing.T) {
	in := Input{Role: RoleBuyer, Commodity: "onion", AskingPrice: 37, Offer: 30, MarketPrice: 31}
	first, _ := Assess(in)
	for i := 0; i < 20; i++ {
		if next, _ := Assess(in); next != first {
			t.Fatalf("run %d differs: %+v vs %+v", i, next, first)
		}
	}
}

func TestFallbackPhrase(t *testing.T) {
	if got := FallbackPhrase(RoleVendor, 45, 50); got != "Sir, considering the quality, I can offer you at ₹50 per kg." {
		t.Errorf("vendor phrase %q", got)
	}
	got := FallbackPhrase(RoleBuyer, 40.5, 43)
	if !strings.Contains(got, "₹40.5.") || !strings.Contains(got, "₹43 per kg?") {
		t.Errorf("buyer phrase %q", got)
	}
}

func TestParseRole(t *testing.T) {
	tests := map[string]Role{"vendor": RoleVendor, " Buyer ": RoleBuyer, "": RoleBuyer, " ": RoleBuyer}
	for in, want := range tests {
		got, err := ParseRole(in)
		if err != nil || got != want {
			t.Errorf("ParseRole(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseRole("agent"); !errors.Is(err, ErrInvalidRole) {
		t.Errorf("expected ErrInvalidRole, got %v", err)
	}
}
