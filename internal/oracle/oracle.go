// Copyright (c) 2024-2026 IT Help San Diego Inc.
// Licensed under BUSL-1.1 — See LICENSE for terms.
package oracle

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
	"gopkg.in/yaml.v3"
)

// Oracle scores free text with the probability of the spam class, in [0,1].
type Oracle interface {
	PredictProbability(text string) (float64, error)
}

const defaultSeqLen = 128

type manifest struct {
	Model          string   `yaml:"model"`
	SequenceLength int      `yaml:"sequence_length"`
	Labels         []string `yaml:"labels"`
	PositiveLabel  string   `yaml:"positive_label"`
}

// Model wraps an ONNX binary text classifier trained offline. The session
// and its tensors are reused across calls under a mutex; inference is safe
// for concurrent callers.
type Model struct {
	session   *ort.AdvancedSession
	tokenizer *wordPieceTokenizer
	seqLen    int
	positive  int
	numLabels int

	inputIDs      *ort.Tensor[int64]
	attentionMask *ort.Tensor[int64]
	output        *ort.Tensor[float32]

	mu sync.Mutex
}

// Load initializes the spam classifier from a bundle directory containing
// spam_model.onnx, bundle.yaml and tokenizer/vocab.txt. The caller treats a
// load failure as "no oracle", never as a fatal error.
func Load(bundleDir string) (*Model, error) {
	if bundleDir == "" {
		return nil, errors.New("bundle dir is empty")
	}

	libPath := resolveSharedLibraryPath(bundleDir)
	if libPath == "" {
		return nil, errors.New("onnxruntime shared library not found; set ONNXRUNTIME_SHARED_LIBRARY_PATH or install the runtime")
	}
	ort.SetSharedLibraryPath(libPath)
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}

	man, err := loadManifest(filepath.Join(bundleDir, "bundle.yaml"))
	if err != nil {
		return nil, fmt.Errorf("load bundle manifest: %w", err)
	}

	modelPath := filepath.Join(bundleDir, man.Model)
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file missing at %s: %w", modelPath, err)
	}

	tokenizer, err := loadWordPieceTokenizer(filepath.Join(bundleDir, "tokenizer", "vocab.txt"))
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}

	positive := 0
	for i, label := range man.Labels {
		if strings.EqualFold(label, man.PositiveLabel) {
			positive = i
		}
	}

	inputShape := ort.NewShape(1, int64(man.SequenceLength))
	inputIDs, err := ort.NewEmptyTensor[int64](inputShape)
	if err != nil {
		return nil, fmt.Errorf("allocate input_ids tensor: %w", err)
	}
	attnMask, err := ort.NewEmptyTensor[int64](inputShape)
	if err != nil {
		return nil, fmt.Errorf("allocate attention_mask tensor: %w", err)
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(len(man.Labels))))
	if err != nil {
		return nil, fmt.Errorf("allocate output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{"input_ids", "attention_mask"},
		[]string{"logits"},
		[]ort.Value{inputIDs, attnMask},
		[]ort.Value{output},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create onnx session: %w", err)
	}

	return &Model{
		session:       session,
		tokenizer:     tokenizer,
		seqLen:        man.SequenceLength,
		positive:      positive,
		numLabels:     len(man.Labels),
		inputIDs:      inputIDs,
		attentionMask: attnMask,
		output:        output,
	}, nil
}

// PredictProbability runs inference and returns the probability of the
// positive (spam) label.
func (m *Model) PredictProbability(text string) (float64, error) {
	if m == nil || m.session == nil || m.tokenizer == nil {
		return 0, errors.New("spam model not initialized")
	}

	ids, attn := m.tokenizer.encode(text, m.seqLen)

	m.mu.Lock()
	defer m.mu.Unlock()

	copy(m.inputIDs.GetData(), ids)
	copy(m.attentionMask.GetData(), attn)

	if err := m.session.Run(); err != nil {
		return 0, fmt.Errorf("onnx run: %w", err)
	}

	logits := m.output.GetData()
	if m.numLabels == 1 && len(logits) >= 1 {
		return sigmoid(float64(logits[0])), nil
	}
	if m.positive >= len(logits) {
		return 0, fmt.Errorf("positive label index %d out of range for %d logits", m.positive, len(logits))
	}
	return softmaxAt(logits, m.positive), nil
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

func softmaxAt(logits []float32, idx int) float64 {
	maxLogit := logits[0]
	for _, l := range logits[1:] {
		if l > maxLogit {
			maxLogit = l
		}
	}
	sum := 0.0
	for _, l := range logits {
		sum += math.Exp(float64(l - maxLogit))
	}
	return math.Exp(float64(logits[idx]-maxLogit)) / sum
}

func loadManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var man manifest
	if err := yaml.Unmarshal(data, &man); err != nil {
		return nil, err
	}
	if man.Model == "" {
		man.Model = "spam_model.onnx"
	}
	if man.SequenceLength <= 0 {
		man.SequenceLength = defaultSeqLen
	}
	if len(man.Labels) == 0 {
		man.Labels = []string{"ham", "spam"}
	}
	if man.PositiveLabel == "" {
		man.PositiveLabel = "spam"
	}
	return &man, nil
}

// resolveSharedLibraryPath locates the platform onnxruntime shared library.
// ONNXRUNTIME_SHARED_LIBRARY_PATH wins; otherwise common names/locations
// are probed.
func resolveSharedLibraryPath(bundleDir string) string {
	if env := strings.TrimSpace(os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH")); env != "" {
		return env
	}

	names := []string{
		"libonnxruntime.so",
		"onnxruntime.so",
		"libonnxruntime.dylib",
		"onnxruntime.dylib",
		"onnxruntime.dll",
	}
	dirs := []string{
		bundleDir,
		filepath.Join(bundleDir, "lib"),
		".",
		"/usr/local/lib",
		"/usr/lib",
		"/opt/homebrew/lib",
	}

	for _, dir := range dirs {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}
