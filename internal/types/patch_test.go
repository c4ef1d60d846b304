package types

import (
	"encoding/json"
	"testing"
)

func TestPatchApply(t *testing.T) {
	orig := "Lynch"
	tests := []struct {
		name  string
		patch Patch[string]
		want  *string
	}{
		{"unset leaves value", Patch[string]{}, &orig},
		{"set writes value", Set("Villeneuve"), func() *string { s := "Villeneuve"; return &s }()},
		{"clear writes nil", Clear[string](), nil},
		{"set if false is unset", SetIf("Villeneuve", false), &orig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := &orig
			tt.patch.Apply(&dst)
			switch {
			case tt.want == nil && dst != nil:
				t.Errorf("Expected nil, got %q", *dst)
			case tt.want != nil && (dst == nil || *dst != *tt.want):
				t.Errorf("Expected %q, got %v", *tt.want, dst)
			}
		})
	}
}

func TestPatchState(t *testing.T) {
	var unset Patch[int]
	if unset.IsSet() || unset.IsClear() || unset.Value() != nil {
		t.Error("Expected zero Patch to be unset")
	}

	zero := Set(0)
	if !zero.IsSet() || zero.IsClear() || zero.Value() == nil || *zero.Value() != 0 {
		t.Error("Expected Set(0) to write zero, not clear")
	}

	cleared := Clear[int]()
	if !cleared.IsSet() || !cleared.IsClear() {
		t.Error("Expected Clear to be set and clear")
	}
}

func TestPatchApplyCopies(t *testing.T) {
	p := Set(1999)
	var a, b *int
	p.Apply(&a)
	p.Apply(&b)
	*a = 2000
	if *b != 1999 {
		t.Errorf("Expected independent copies, got %d", *b)
	}
}

func TestFlexStringUnmarshal(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{`"Dune"`, "Dune", false},
		{`"  Dune  "`, "Dune", false},
		{`2021`, "2021", false},
		{`8.5`, "8.5", false},
		{`null`, "", false},
		{`""`, "", false},
		{`true`, "", true},
		{`["a"]`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var body struct {
				Value FlexString `json:"value"`
			}
			err := json.Unmarshal([]byte(`{"value":`+tt.input+`}`), &body)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unexpected error state: %v", err)
			}
			if err == nil && body.Value.String() != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, body.Value.String())
			}
		})
	}

	if !FlexString("   ").Empty() {
		t.Error("Expected whitespace to be empty")
	}
}
