package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kitchenwise/pantry/internal/model"
)

// MergePrompter walks the user through suggested similar-name pairs and
// turns accepted ones into merge rules.
type MergePrompter struct {
	reader *Reader
	out    io.Writer
}

// NewMergePrompter creates a prompter reading answers from in and writing
// prompts to out.
func NewMergePrompter(in io.Reader, out io.Writer) *MergePrompter {
	return &MergePrompter{
		reader: NewReader(in),
		out:    out,
	}
}

// Review presents each suggested pair and asks whether to merge it. For an
// accepted pair the user picks which spelling becomes canonical: the first
// name, the second, or a custom one. Returns the rules the user accepted.
func (p *MergePrompter) Review(ctx context.Context, pairs []model.SimilarPair) ([]model.IngredientMerge, error) {
	var accepted []model.IngredientMerge

	for i, pair := range pairs {
		fmt.Fprintf(p.out, "\n%s\n", TitleStyle.Render(
			fmt.Sprintf("Suggestion %d of %d", i+1, len(pairs))))
		fmt.Fprintf(p.out, "  %s  ↔  %s  %s\n",
			BoldStyle.Render(pair.Name1),
			BoldStyle.Render(pair.Name2),
			SubtleStyle.Render(fmt.Sprintf("(%.0f%% similar)", pair.Similarity*100)))
		fmt.Fprintf(p.out, "Merge these? [y/N] ")

		answer, err := p.reader.ReadLine(ctx)
		if err != nil {
			return accepted, err
		}
		if !isYes(answer) {
			continue
		}

		canonical, err := p.pickCanonical(ctx, pair)
		if err != nil {
			return accepted, err
		}
		if canonical == "" {
			continue
		}

		rule := model.NewIngredientMerge(canonical, []string{pair.Name1, pair.Name2})
		accepted = append(accepted, rule)
		fmt.Fprintf(p.out, "%s\n", SuccessStyle.Render(
			fmt.Sprintf("✓ %s ← %s", rule.CanonicalName, strings.Join(rule.SourceNames, ", "))))
	}

	return accepted, nil
}

func (p *MergePrompter) pickCanonical(ctx context.Context, pair model.SimilarPair) (string, error) {
	fmt.Fprintf(p.out, "Keep which name?\n")
	fmt.Fprintf(p.out, "  1) %s\n", pair.Name1)
	fmt.Fprintf(p.out, "  2) %s\n", pair.Name2)
	fmt.Fprintf(p.out, "  or type a different name (empty to skip): ")

	answer, err := p.reader.ReadLine(ctx)
	if err != nil {
		return "", err
	}

	switch answer {
	case "1":
		return pair.Name1, nil
	case "2":
		return pair.Name2, nil
	default:
		return strings.TrimSpace(answer), nil
	}
}

func isYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
