package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/san-kum/physlab/internal/content"
	"github.com/san-kum/physlab/internal/lesson"
	"github.com/san-kum/physlab/internal/persistence"
	"github.com/san-kum/physlab/internal/quiz"
)

func listLessons(cmd *cobra.Command, args []string) error {
	catalog, err := lesson.DefaultCatalog()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSECTIONS\tEXAMPLES\tDIAGRAMS")
	for _, l := range catalog.Lessons() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", l.ID, l.Title, len(l.Sections), len(l.Examples()), strings.Join(l.Diagrams(), ","))
	}
	return w.Flush()
}

func showLesson(cmd *cobra.Command, args []string) error {
	catalog, err := lesson.DefaultCatalog()
	if err != nil {
		return err
	}
	l, err := catalog.Lesson(args[0])
	if err != nil {
		return err
	}

	var course *lesson.Course
	if id, _ := cmd.Flags().GetString("course"); id != "" {
		course = &lesson.Course{CourseID: id}
	}
	page, err := l.Shell().Mount(course)
	if err != nil {
		return fmt.Errorf("%w (pass --course)", err)
	}

	acc := l.Accordion()
	if open, _ := cmd.Flags().GetString("open"); open != "" {
		if _, ok := acc.Panel(open); !ok {
			return fmt.Errorf("lesson %s has no section %q", l.ID, open)
		}
		acc.Open(open)
	}

	fmt.Printf("%s  [%s]\n", strings.ToUpper(page.Title), page.Course.CourseID)
	if page.Summary != "" {
		fmt.Printf("%s\n", page.Summary)
	}
	fmt.Println()
	for _, p := range acc.Panels {
		if !acc.IsOpen(p.Value) {
			fmt.Printf("▸ %s (%s)\n", p.Title, p.Value)
			continue
		}
		fmt.Printf("▾ %s\n", p.Title)
		fmt.Printf("  %s\n", strings.TrimSpace(p.Content))
		for _, d := range p.Diagrams {
			fmt.Printf("  diagram: %s\n", d)
		}
		if n := len(p.Examples); n > 0 {
			fmt.Printf("  %d worked example(s)\n", n)
		}
	}
	return nil
}

func showExamples(cmd *cobra.Command, args []string) error {
	catalog, err := lesson.DefaultCatalog()
	if err != nil {
		return err
	}
	l, err := catalog.Lesson(args[0])
	if err != nil {
		return err
	}
	examples := l.Examples()
	pager := content.NewPager(len(examples))
	page, _ := cmd.Flags().GetInt("page")
	pager.Seek(page)

	ex, ok := pager.Current(examples)
	if !ok {
		fmt.Println("no worked examples")
		return nil
	}
	fmt.Printf("Example %d of %d\n\n", pager.Index()+1, pager.Len())
	fmt.Printf("Q: %s\n\n", ex.Question)
	for _, g := range ex.Given {
		fmt.Printf("  given: %s\n", g)
	}
	fmt.Printf("\n  %s\n\n", ex.Equation)
	fmt.Printf("%s\n\n", strings.TrimSpace(ex.Solution))
	fmt.Printf("Answer: %s\n", ex.Answer)
	return nil
}

func checkExamples(cmd *cobra.Command, args []string) error {
	catalog, err := lesson.DefaultCatalog()
	if err != nil {
		return err
	}
	if err := catalog.Verify(); err != nil {
		return err
	}
	total := 0
	for _, l := range catalog.Lessons() {
		total += len(l.Examples())
	}
	fmt.Printf("%d worked examples across %d lessons check out\n", total, len(catalog.Lessons()))
	return nil
}

func takeQuiz(cmd *cobra.Command, args []string) error {
	catalog, err := lesson.DefaultCatalog()
	if err != nil {
		return err
	}
	l, err := catalog.Lesson(args[0])
	if err != nil {
		return err
	}
	course, _ := cmd.Flags().GetString("course")
	kc := l.KnowledgeCheck.ForCourse(course)

	db, err := persistence.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := signalContext()
	defer cancel()

	runner := quiz.TerminalRunner{In: os.Stdin, Out: os.Stdout}
	return quiz.Launch(ctx, runner, kc, persistence.Recorder(db, kc))
}

func listAttempts(cmd *cobra.Command, args []string) error {
	db, err := persistence.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	ctx := context.Background()
	attempts, err := db.Attempts(ctx, path)
	if err != nil {
		return err
	}
	if len(attempts) == 0 {
		fmt.Println("no attempts recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLESSON\tCOURSE\tSCORE\tWHEN")
	for _, a := range attempts {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.0f%%\t%s\n", a.ID, a.LessonPath, a.CourseID, a.Score*100, humanize.Time(a.CreatedAt))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if path != "" {
		best, ok, err := db.BestScore(ctx, path)
		if err != nil {
			return err
		}
		if ok {
			fmt.Printf("\nbest: %.0f%% over %s attempts\n", best*100, humanize.Comma(int64(len(attempts))))
		}
	}
	return nil
}
