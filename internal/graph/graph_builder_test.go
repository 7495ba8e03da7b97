package graph

import "testing"

func TestTermParams(t *testing.T) {
	params := termParams([]Term{
		{Source: "门派", Target: "Môn phái", Origin: "compare"},
		{Source: "Hello", Target: "Bonjour", Origin: "edit"},
	})
	if len(params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(params))
	}
	if params[0]["source"] != "门派" || params[0]["target"] != "Môn phái" || params[0]["origin"] != "compare" {
		t.Errorf("unexpected params: %v", params[0])
	}
	if params[1]["origin"] != "edit" {
		t.Errorf("unexpected params: %v", params[1])
	}
}
