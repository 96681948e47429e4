package element

import (
	"testing"

	"github.com/gofhir/elementmodel/primitive"
)

func TestValueComparer_ScalarEquality(t *testing.T) {
	cmp := ValueComparer{}
	dec1, _ := primitive.ParseDecimal("1.50")
	dec2, _ := primitive.ParseDecimal("1.5")

	tests := []struct {
		name string
		a, b Node
		want bool
	}{
		{"equal strings", Literal(primitive.String("Doe")), Literal(primitive.String("Doe")), true},
		{"unequal strings", Literal(primitive.String("Doe")), Literal(primitive.String("Roe")), false},
		{"decimal scale", Literal(dec1), Literal(dec2), true},
		{"integer vs decimal", Literal(primitive.Integer(3)), Literal(primitive.DecimalFromFloat(3)), true},
		{"string vs boolean", Literal(primitive.String("true")), Literal(primitive.Boolean(true)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cmp.Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestValueComparer_Presence(t *testing.T) {
	cmp := ValueComparer{}
	valued := Literal(primitive.String("x"))

	if !cmp.Equal(nil, nil) {
		t.Error("two absent nodes should be equal")
	}
	if cmp.Equal(valued, nil) || cmp.Equal(nil, valued) {
		t.Error("a present node should not equal an absent one")
	}
}

func TestLiteral(t *testing.T) {
	n := Literal(primitive.Integer(5))
	if n.InstanceType() != "integer" {
		t.Errorf("InstanceType() = %q; want integer", n.InstanceType())
	}
	if n.Value() == nil || n.Value().String() != "5" {
		t.Errorf("Value() = %v; want 5", n.Value())
	}
	if got := Collect(n.Children()); len(got) != 0 {
		t.Errorf("literal node should have no children, got %d", len(got))
	}
}
