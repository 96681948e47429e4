package primitive

import "testing"

func TestBoolean_Parse(t *testing.T) {
	b, err := ParseBoolean("true")
	if err != nil || !b.Bool() {
		t.Errorf("ParseBoolean(true) = %v, %v", b, err)
	}
	if _, err := ParseBoolean("True"); err == nil {
		t.Error("ParseBoolean(True) should fail; FHIR literals are lower-case")
	}
	if _, err := ParseBoolean("1"); err == nil {
		t.Error("ParseBoolean(1) should fail")
	}
}

func TestInteger_Bounds(t *testing.T) {
	tests := []struct {
		typeCode string
		literal  string
		wantErr  bool
	}{
		{"integer", "42", false},
		{"integer", "-2147483648", false},
		{"integer", "2147483648", true},
		{"integer64", "9223372036854775807", false},
		{"unsignedInt", "0", false},
		{"unsignedInt", "-1", true},
		{"positiveInt", "1", false},
		{"positiveInt", "0", true},
		{"integer", "1.5", true},
		{"integer", "abc", true},
	}

	for _, tt := range tests {
		_, err := ParseInteger(tt.typeCode, tt.literal)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseInteger(%s, %q) err = %v; wantErr %v",
				tt.typeCode, tt.literal, err, tt.wantErr)
		}
	}
}

func TestDecimal_ScaleInsensitiveEquality(t *testing.T) {
	a, err := ParseDecimal("0.010")
	if err != nil {
		t.Fatalf("ParseDecimal: %v", err)
	}
	b, err := ParseDecimal("0.01")
	if err != nil {
		t.Fatalf("ParseDecimal: %v", err)
	}
	if !a.Equal(b) {
		t.Error("0.010 should equal 0.01 under decimal semantics")
	}
}

func TestNumericCrossTypeEquality(t *testing.T) {
	i := Integer(3)
	d, _ := ParseDecimal("3.0")

	if !i.Equal(d) {
		t.Error("Integer(3) should equal Decimal(3.0)")
	}
	if !d.Equal(i) {
		t.Error("Decimal(3.0) should equal Integer(3)")
	}

	d2, _ := ParseDecimal("3.5")
	if i.Equal(d2) {
		t.Error("Integer(3) should not equal Decimal(3.5)")
	}
}

func TestNumericOrdering(t *testing.T) {
	d1, _ := ParseDecimal("1.5")
	d2, _ := ParseDecimal("2")

	if c, ok := d1.Cmp(d2); !ok || c != -1 {
		t.Errorf("1.5 cmp 2 = %d, %v; want -1, true", c, ok)
	}
	if c, ok := Integer(2).Cmp(d1); !ok || c != 1 {
		t.Errorf("2 cmp 1.5 = %d, %v; want 1, true", c, ok)
	}
	if _, ok := d1.Cmp(String("x")); ok {
		t.Error("decimal should not order against string")
	}
}

func TestValuesAreNotHostEqual(t *testing.T) {
	// Different Value kinds never compare equal, even when the host
	// representation would.
	if String("true").Equal(Boolean(true)) {
		t.Error("String(true) must not equal Boolean(true)")
	}
	if String("3").Equal(Integer(3)) {
		t.Error("String(3) must not equal Integer(3)")
	}
}
