package grocer

import "testing"

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantUnit  string
		wantValue float64
		wantOK    bool
	}{
		{name: "value with unit", input: "500g", wantValue: 500, wantUnit: "g", wantOK: true},
		{name: "value with spaced unit", input: "2 cups", wantValue: 2, wantUnit: "cups", wantOK: true},
		{name: "decimal value", input: "1.5kg", wantValue: 1.5, wantUnit: "kg", wantOK: true},
		{name: "bare number", input: "3", wantValue: 3, wantUnit: "", wantOK: true},
		{name: "cjk unit", input: "2个", wantValue: 2, wantUnit: "个", wantOK: true},
		{name: "surrounding whitespace", input: "  250 ml ", wantValue: 250, wantUnit: "ml", wantOK: true},
		{name: "no leading number", input: "a pinch", wantOK: false},
		{name: "empty string", input: "", wantOK: false},
		{name: "only dots", input: "...", wantOK: false},
		{name: "unit before number", input: "g500", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseQuantity(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseQuantity(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Value != tt.wantValue || got.Unit != tt.wantUnit {
				t.Errorf("ParseQuantity(%q) = {%v %q}, want {%v %q}",
					tt.input, got.Value, got.Unit, tt.wantValue, tt.wantUnit)
			}
		})
	}
}

func TestFormatQuantity(t *testing.T) {
	tests := []struct {
		name  string
		want  string
		input Quantity
	}{
		{name: "unit attached without separator", input: Quantity{Value: 800, Unit: "g"}, want: "800g"},
		{name: "no unit", input: Quantity{Value: 3}, want: "3"},
		{name: "fractional value", input: Quantity{Value: 1.5, Unit: "kg"}, want: "1.5kg"},
		{name: "sum drops trailing zeros", input: Quantity{Value: 2.0, Unit: "cups"}, want: "2cups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatQuantity(tt.input); got != tt.want {
				t.Errorf("FormatQuantity(%+v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMergeQuantities(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want string
	}{
		{name: "same unit sums", a: "500g", b: "300g", want: "800g"},
		{name: "unitless sums", a: "2", b: "3", want: "5"},
		{name: "cjk unit sums", a: "2个", b: "1个", want: "3个"},
		{name: "decimal sum", a: "1.5kg", b: "0.5kg", want: "2kg"},
		{name: "different units join", a: "500g", b: "2 cups", want: "500g, 2 cups"},
		{name: "unparseable side joins", a: "a pinch", b: "2 cups", want: "a pinch, 2 cups"},
		{name: "empty side joins", a: "", b: "2 cups", want: ", 2 cups"},
		{name: "no unit conversion", a: "500g", b: "1kg", want: "500g, 1kg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeQuantities(tt.a, tt.b); got != tt.want {
				t.Errorf("MergeQuantities(%q, %q) = %q, want %q", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
