// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package oracle

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeVocab(t *testing.T, lines ...string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.txt")
	content := ""
	for _, l := range lines {
		content += l + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing vocab: %v", err)
	}
	return path
}

func testTokenizer(t *testing.T) *wordPieceTokenizer {
	t.Helper()
	// IDs follow line order: PAD=0 UNK=1 CLS=2 SEP=3 ...
	path := writeVocab(t,
		"[PAD]", "[UNK]", "[CLS]", "[SEP]",
		"free", "prize", "claim", "un", "##claim", "##ed",
	)
	tok, err := loadWordPieceTokenizer(path)
	if err != nil {
		t.Fatalf("loadWordPieceTokenizer: %v", err)
	}
	return tok
}

func TestTokenizerEncode(t *testing.T) {
	tok := testTokenizer(t)

	t.Run("known words with padding", func(t *testing.T) {
		ids, attn := tok.encode("Free PRIZE", 8)
		want := []int64{2, 4, 5, 3, 0, 0, 0, 0}
		wantAttn := []int64{1, 1, 1, 1, 0, 0, 0, 0}
		for i := range want {
			if ids[i] != want[i] {
				t.Fatalf("ids = %v, want %v", ids, want)
			}
			if attn[i] != wantAttn[i] {
				t.Fatalf("attn = %v, want %v", attn, wantAttn)
			}
		}
	})

	t.Run("wordpiece continuation", func(t *testing.T) {
		ids, _ := tok.encode("unclaimed", 8)
		// un + ##claim + ##ed
		want := []int64{2, 7, 8, 9, 3, 0, 0, 0}
		for i := range want {
			if ids[i] != want[i] {
				t.Fatalf("ids = %v, want %v", ids, want)
			}
		}
	})

	t.Run("unknown word maps to UNK", func(t *testing.T) {
		ids, _ := tok.encode("zzzzz", 5)
		if ids[1] != 1 {
			t.Errorf("ids = %v, want UNK at position 1", ids)
		}
	})

	t.Run("truncation preserves separator", func(t *testing.T) {
		ids, attn := tok.encode("free prize claim free prize claim free prize", 6)
		if len(ids) != 6 || len(attn) != 6 {
			t.Fatalf("lengths = %d/%d, want 6", len(ids), len(attn))
		}
		if ids[5] != 3 {
			t.Errorf("ids = %v, want SEP in last slot", ids)
		}
		for _, a := range attn {
			if a != 1 {
				t.Errorf("attn = %v, want all ones when truncated", attn)
			}
		}
	})
}

func TestLoadManifestDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.yaml")
	if err := os.WriteFile(path, []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}

	man, err := loadManifest(path)
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if man.Model != "spam_model.onnx" {
		t.Errorf("model = %q", man.Model)
	}
	if man.SequenceLength != defaultSeqLen {
		t.Errorf("sequence length = %d, want %d", man.SequenceLength, defaultSeqLen)
	}
	if len(man.Labels) != 2 || man.PositiveLabel != "spam" {
		t.Errorf("labels = %v positive = %q", man.Labels, man.PositiveLabel)
	}
}

func TestLoadManifestExplicit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.yaml")
	doc := "model: custom.onnx\nsequence_length: 64\nlabels: [ok, junk]\npositive_label: junk\n"
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}

	man, err := loadManifest(path)
	if err != nil {
		t.Fatalf("loadManifest: %v", err)
	}
	if man.Model != "custom.onnx" || man.SequenceLength != 64 || man.PositiveLabel != "junk" {
		t.Errorf("manifest = %+v", man)
	}
}

func TestProbabilityMath(t *testing.T) {
	if got := sigmoid(0); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("sigmoid(0) = %v, want 0.5", got)
	}
	if got := sigmoid(10); got <= 0.99 {
		t.Errorf("sigmoid(10) = %v, want near 1", got)
	}

	probs := softmaxAt([]float32{1, 1}, 1)
	if math.Abs(probs-0.5) > 1e-6 {
		t.Errorf("softmaxAt equal logits = %v, want 0.5", probs)
	}
	high := softmaxAt([]float32{-2, 4}, 1)
	if high <= 0.99 {
		t.Errorf("softmaxAt dominant logit = %v, want near 1", high)
	}
	// Large logits must not overflow.
	if got := softmaxAt([]float32{1000, 999}, 0); math.IsNaN(got) || got < 0.5 {
		t.Errorf("softmaxAt large logits = %v", got)
	}
}

func TestPredictProbabilityUninitialized(t *testing.T) {
	var m *Model
	if _, err := m.PredictProbability("anything"); err == nil {
		t.Error("nil model should error")
	}
	if _, err := (&Model{}).PredictProbability("anything"); err == nil {
		t.Error("empty model should error")
	}
}
