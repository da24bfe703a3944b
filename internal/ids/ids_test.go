package ids

import "testing"

func TestNew_IsSortableAndUnique(t *testing.T) {
	prev := New()
	for i := 0; i < 1000; i++ {
		next := New()
		if next <= prev {
			t.Fatalf("ids must increase: %s then %s", prev, next)
		}
		prev = next
	}
	if len(prev) != 26 {
		t.Fatalf("expected 26 character ulid, got %q", prev)
	}
}
