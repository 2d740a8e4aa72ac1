package exam

import "fmt"

// Row is one printed version of an evaluation. Seed and Label identify it:
// GenerateRow with the same questions, seed and label rebuilds it exactly.
type Row struct {
	Label      string `json:"label"`
	Seed       string `json:"seed"`
	NumOptions int    `json:"num_options"`
	// Order maps a question id to its display permutation: Order[id][slot]
	// is the original index of the option printed in that slot.
	Order  map[string][]int `json:"order"`
	Report Report           `json:"report"`
}

// RowSeed returns the seed used for a row: "baseSeed-rowLabel".
func RowSeed(baseSeed, rowLabel string) string {
	return baseSeed + "-" + rowLabel
}

// GenerateRow shuffles every question's alternatives with the row seed and
// balances the resulting answer key.
//
// numOptions is the number of letters the key is balanced over, typically
// the option count of the evaluation's questions. Questions may have fewer
// options but not more than MaxOptions.
func GenerateRow(questions []Question, baseSeed, rowLabel string, numOptions int) (*Row, error) {
	if numOptions < 2 || numOptions > MaxOptions {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOptionCount, numOptions)
	}
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}

	seed := RowSeed(baseSeed, rowLabel)
	order := ShuffleAlternatives(questions, seed)
	report := BalanceAnswerKey(order, questions, seed, rowLabel, numOptions)

	return &Row{
		Label:      rowLabel,
		Seed:       baseSeed,
		NumOptions: numOptions,
		Order:      order,
		Report:     report,
	}, nil
}

// Key returns the display slot of the correct option per question id, as
// expected by the mark scorer. Skipped questions are absent.
func (r *Row) Key() map[string]int {
	key := make(map[string]int, len(r.Report.Entries))
	for _, e := range r.Report.Entries {
		key[e.QuestionID] = e.Index
	}
	return key
}

// Letters returns the answer key as letters in display order.
func (r *Row) Letters() string {
	return r.Report.Letters()
}

// Apply returns q with its options in this row's display order.
// Questions unknown to the row are returned unchanged.
func (r *Row) Apply(q Question) Question {
	perm, ok := r.Order[q.ID]
	if !ok || len(perm) != len(q.Options) {
		return q
	}
	out := Question{ID: q.ID, Options: make([]Option, len(perm))}
	for slot, orig := range perm {
		out.Options[slot] = q.Options[orig]
	}
	return out
}
