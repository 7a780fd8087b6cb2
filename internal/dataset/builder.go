// Package dataset builds and reads the tagged ATEPC dataset files
// (train/valid/test splits in the token-per-line IOB format).
package dataset

import (
	"bytes"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ppiankov/cyberabsa/internal/absa"
)

// Config controls dataset construction.
type Config struct {
	OutputDir    string
	MaxSamples   int   // down-sample cap before splitting
	Seed         int64 // sampling seed
	Window       int   // sentiment context window in tokens
	MinLen       int   // minimum text length per written sentence
	CorpusMinLen int   // minimum cleaned text length on intake
}

// DefaultConfig returns the standard construction parameters.
func DefaultConfig() Config {
	return Config{
		OutputDir:    filepath.Join("data", "custom_cybersecurity_atepc"),
		MaxSamples:   1000,
		Seed:         42,
		Window:       absa.DefaultWindow,
		MinLen:       20,
		CorpusMinLen: 10,
	}
}

// SplitStats reports what happened to one split.
type SplitStats struct {
	Name            string `json:"name"`
	Size            int    `json:"size"`              // texts assigned to the split
	Written         int    `json:"written"`           // sentences written to the file
	SkippedShort    int    `json:"skipped_short"`     // texts under MinLen
	SkippedNoAspect int    `json:"skipped_no_aspect"` // texts with zero aspect matches
}

// Result summarizes a dataset build.
type Result struct {
	Total  int          `json:"total"` // texts after cleaning, filtering, sampling
	Splits []SplitStats `json:"splits"`
}

// Builder writes the train/valid/test tagged files plus a readme.
type Builder struct {
	cfg Config
}

// NewBuilder creates a Builder, filling zero config fields with defaults.
func NewBuilder(cfg Config) *Builder {
	def := DefaultConfig()
	if cfg.OutputDir == "" {
		cfg.OutputDir = def.OutputDir
	}
	if cfg.MaxSamples <= 0 {
		cfg.MaxSamples = def.MaxSamples
	}
	if cfg.Seed == 0 {
		cfg.Seed = def.Seed
	}
	if cfg.Window <= 0 {
		cfg.Window = def.Window
	}
	if cfg.MinLen <= 0 {
		cfg.MinLen = def.MinLen
	}
	if cfg.CorpusMinLen <= 0 {
		cfg.CorpusMinLen = def.CorpusMinLen
	}
	return &Builder{cfg: cfg}
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// normalize collapses runs of whitespace so token offsets stay aligned with
// the whitespace tokenizer.
func normalize(text string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

// Build cleans and filters texts, optionally down-samples them with the
// fixed seed, splits 70/15/remainder by position, and writes one tagged file
// per split plus a readme describing the format. Texts shorter than MinLen
// or without any aspect match are skipped and counted per split.
func (b *Builder) Build(texts []string) (*Result, error) {
	kept := make([]string, 0, len(texts))
	for _, t := range texts {
		t = normalize(t)
		if len(t) > b.cfg.CorpusMinLen {
			kept = append(kept, t)
		}
	}

	if len(kept) > b.cfg.MaxSamples {
		rng := rand.New(rand.NewSource(b.cfg.Seed))
		perm := rng.Perm(len(kept))
		sampled := make([]string, b.cfg.MaxSamples)
		for i := 0; i < b.cfg.MaxSamples; i++ {
			sampled[i] = kept[perm[i]]
		}
		kept = sampled
	}

	if err := os.MkdirAll(b.cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create dataset directory: %w", err)
	}

	nTrain := len(kept) * 7 / 10
	nValid := len(kept) * 15 / 100
	splits := []struct {
		name  string
		texts []string
	}{
		{"train", kept[:nTrain]},
		{"valid", kept[nTrain : nTrain+nValid]},
		{"test", kept[nTrain+nValid:]},
	}

	res := &Result{Total: len(kept)}
	for _, sp := range splits {
		stats, err := b.writeSplit(sp.name, sp.texts)
		if err != nil {
			return nil, err
		}
		res.Splits = append(res.Splits, stats)
	}

	if err := b.writeReadme(res); err != nil {
		return nil, err
	}
	return res, nil
}

func (b *Builder) writeSplit(name string, texts []string) (SplitStats, error) {
	stats := SplitStats{Name: name, Size: len(texts)}
	var buf bytes.Buffer

	for _, text := range texts {
		if len(text) < b.cfg.MinLen {
			stats.SkippedShort++
			continue
		}
		matches := absa.FindAspects(text)
		if len(matches) == 0 {
			stats.SkippedNoAspect++
			continue
		}
		s := absa.BuildLabeled(text, matches, b.cfg.Window)
		for i := range s.Tokens {
			fmt.Fprintf(&buf, "%s %s %s\n", s.Tokens[i], s.Tags[i], s.Labels[i])
		}
		buf.WriteByte('\n')
		stats.Written++
	}

	path := filepath.Join(b.cfg.OutputDir, name+".dat.atepc")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return stats, fmt.Errorf("failed to write %s split: %w", name, err)
	}
	return stats, nil
}

func (b *Builder) writeReadme(res *Result) error {
	var buf bytes.Buffer
	buf.WriteString("Custom Cybersecurity ATEPC Dataset (IOB Format)\n")
	buf.WriteString("===============================================\n\n")
	buf.WriteString("This dataset contains cybersecurity texts annotated with aspect terms and sentiments using the IOB (Inside-Outside-Begin) tagging scheme.\n\n")
	buf.WriteString("Format:\n")
	buf.WriteString("Each line contains: 'token IOB_tag sentiment_label'\n")
	buf.WriteString("- token: A word from the original text.\n")
	buf.WriteString("- IOB_tag: 'O' (Outside aspect), 'B-ASP' (Begin aspect), or 'I-ASP' (Inside aspect).\n")
	buf.WriteString("- sentiment_label: '1' (Positive), '0' (Neutral), or '-1' (Negative) associated with the aspect the token belongs to (or '0' if O tag).\n")
	buf.WriteString("Sentences are separated by blank lines.\n\n")
	fmt.Fprintf(&buf, "Total original texts processed: %d\n", res.Total)
	for _, sp := range res.Splits {
		label := strings.ToUpper(sp.Name[:1]) + sp.Name[1:]
		if sp.Name == "valid" {
			label = "Validation"
		}
		fmt.Fprintf(&buf, "%s samples (sentences): %d\n", label, sp.Size)
	}

	path := filepath.Join(b.cfg.OutputDir, "readme.txt")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write dataset readme: %w", err)
	}
	return nil
}
