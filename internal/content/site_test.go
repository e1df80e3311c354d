package content

import (
	"reflect"
	"testing"
)

func TestCategories_FirstSeenOrder(t *testing.T) {
	got := Default().Categories()
	want := []string{"Tools", "Web", "Design"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("categories = %v, want %v", got, want)
	}
}

func TestServiceNames(t *testing.T) {
	s := Site{Services: []Service{{Title: "A"}, {Title: "B"}}}
	if got := s.ServiceNames(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("unexpected names: %v", got)
	}
}
