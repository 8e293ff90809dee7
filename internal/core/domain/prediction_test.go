package domain

import "testing"

func TestLabelFor(t *testing.T) {
	if LabelFor(1) != LabelGood {
		t.Error("prediction 1 should map to good")
	}
	// Everything else is a bad sale, negative and out-of-range included.
	for _, p := range []int{0, -1, 2, 42} {
		if LabelFor(p) != LabelBad {
			t.Errorf("prediction %d mapped to %q, want bad", p, LabelFor(p))
		}
	}
}

func TestModelPredict(t *testing.T) {
	m := Model{WeightQuantity: 2, WeightSalesPrice: 0.5, Bias: -10}

	if m.Predict(6, 2) != 1 {
		t.Error("score 3 should predict 1")
	}
	if m.Predict(1, 2) != 0 {
		t.Error("score -7 should predict 0")
	}
	// The boundary itself scores as 0.
	if m.Predict(4.5, 2) != 0 {
		t.Error("score 0 should predict 0")
	}
}
