package inspector

import (
	"net/http/httptest"
	"testing"
)

// TestIsProxied_AllCombinations checks every combination of the four
// proxy-indicating headers: the flag must be true iff at least one is set.
func TestIsProxied_AllCombinations(t *testing.T) {
	headers := []string{"Via", "X-Forwarded-For", "Forwarded", "Proxy-Connection"}

	for mask := 0; mask < 1<<len(headers); mask++ {
		r := httptest.NewRequest("GET", "/", nil)
		for i, h := range headers {
			if mask&(1<<i) != 0 {
				r.Header.Set(h, "anything")
			}
		}

		want := mask != 0
		if got := IsProxied(r); got != want {
			t.Errorf("IsProxied(mask=%04b) = %t, want %t", mask, got, want)
		}
	}
}

func TestIsProxied_ValueIsIrrelevant(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.Header.Set("Proxy-Connection", "")

	if !IsProxied(r) {
		t.Error("IsProxied() should be true for an empty-valued proxy header")
	}
}

func TestIsProxied_NilRequest(t *testing.T) {
	if IsProxied(nil) {
		t.Error("IsProxied(nil) should be false")
	}
}
