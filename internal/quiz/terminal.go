package quiz

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// TerminalRunner asks each question on Out and records the learner's own
// yes/no answer from In. It does not grade responses.
type TerminalRunner struct {
	In  io.Reader
	Out io.Writer
}

func (t TerminalRunner) Run(ctx context.Context, kc KnowledgeCheck, done CompletionFunc) error {
	sc := bufio.NewScanner(t.In)
	results := make([]Result, 0, len(kc.Questions))
	correct := 0
	for i, q := range kc.Questions {
		if err := ctx.Err(); err != nil {
			return err
		}
		title := q.Title
		if title == "" {
			title = q.QuestionID
		}
		fmt.Fprintf(t.Out, "[%d/%d] %s (%s)\nDid you get it right? [y/n] ", i+1, len(kc.Questions), title, q.Type)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return err
			}
			return io.ErrUnexpectedEOF
		}
		resp := strings.TrimSpace(sc.Text())
		ok := strings.HasPrefix(strings.ToLower(resp), "y")
		r := Result{QuestionID: q.QuestionID, Correct: ok, Response: resp}
		if ok {
			r.Points = 1
			correct++
		}
		results = append(results, r)
	}
	score := 0.0
	if len(results) > 0 {
		score = float64(correct) / float64(len(results))
	}
	fmt.Fprintf(t.Out, "score: %.0f%%\n", score*100)
	done(score, results)
	return nil
}
