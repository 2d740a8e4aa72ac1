package main

import (
	"errors"
	"flag"
	"io"
	"log"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/nexus-edu/examscan/exam"
	"github.com/nexus-edu/examscan/omr"
	"github.com/nexus-edu/examscan/pipeline"
	"github.com/nexus-edu/examscan/raster"
)

// translation is one catalog entry of the score report.
type translation struct {
	tag      language.Tag
	key, msg string
}

func init() {
	for _, m := range []translation{
		{language.Spanish, "question", "pregunta"},
		{language.Spanish, "marked", "marcada"},
		{language.Spanish, "key", "clave"},
		{language.Spanish, "result", "resultado"},
		{language.Spanish, "correct", "correcta"},
		{language.Spanish, "wrong", "incorrecta"},
		{language.Spanish, "blank", "en blanco"},
		{language.Spanish, "not keyed", "sin clave"},
		{language.Spanish, "Score: %.4g of %.4g\n", "Puntaje: %.4g de %.4g\n"},
		{language.Spanish, "%d correct, %d incorrect, %d unanswered\n", "%d correctas, %d incorrectas, %d sin responder\n"},
		{language.Portuguese, "question", "questão"},
		{language.Portuguese, "marked", "marcada"},
		{language.Portuguese, "key", "gabarito"},
		{language.Portuguese, "result", "resultado"},
		{language.Portuguese, "correct", "certa"},
		{language.Portuguese, "wrong", "errada"},
		{language.Portuguese, "blank", "em branco"},
		{language.Portuguese, "not keyed", "sem gabarito"},
		{language.Portuguese, "Score: %.4g of %.4g\n", "Nota: %.4g de %.4g\n"},
		{language.Portuguese, "%d correct, %d incorrect, %d unanswered\n", "%d certas, %d erradas, %d em branco\n"},
	} {
		if err := message.SetString(m.tag, m.key, m.msg); err != nil {
			panic(err)
		}
	}
}

func runGrade(args []string) error {
	fs := flag.NewFlagSet("grade", flag.ExitOnError)
	var (
		imagePath = fs.String("image", "", "scanned sheet (png, jpeg, gif, bmp, tiff, webp)")
		corners   = fs.String("corners", "", `sheet corners "x,y x,y x,y x,y" (TL TR BR BL)`)
		layout    = fs.String("layout", "", "grid layout JSON file")
		questions = fs.String("questions", "", "questions JSON file")
		seed      = fs.String("seed", "", "evaluation seed word")
		rowLabel  = fs.String("row", "A", "row label printed on the sheet")
		options   = fs.Int("options", 4, "letters the key was balanced over")
		lang      = fs.String("lang", "en", "report language (BCP 47)")
		workers   = fs.Int("workers", 1, "rectification goroutines")
		rectified = fs.String("rectified", "", "save the rectified sheet as PNG")
		verbose   = fs.Bool("v", false, "log diagnostics to stderr")
	)
	_ = fs.Parse(args)
	enableLogging(*verbose)

	if *imagePath == "" || *corners == "" || *layout == "" || *questions == "" || *seed == "" {
		return errors.New("-image, -corners, -layout, -questions and -seed are required")
	}

	quad, err := parseCorners(*corners)
	if err != nil {
		return err
	}
	var spec omr.GridSpec
	if err := loadJSON(*layout, &spec); err != nil {
		return err
	}
	qs, err := loadQuestions(*questions)
	if err != nil {
		return err
	}
	row, err := generateRow(qs, *seed, *rowLabel, *options)
	if err != nil {
		return err
	}
	frame, err := raster.Load(*imagePath)
	if err != nil {
		return err
	}

	rep, err := pipeline.NewGrader(pipeline.WithWorkers(*workers)).GradeRow(frame, quad, spec, row)
	if err != nil {
		return err
	}

	tag, err := language.Parse(*lang)
	if err != nil {
		return err
	}
	printReport(os.Stdout, message.NewPrinter(tag), rep.Result, row.Key())

	if *rectified != "" {
		if err := rep.Rectified.SavePNG(*rectified); err != nil {
			return err
		}
		log.Printf("Rectified sheet saved to %s", *rectified)
	}
	return nil
}

// printReport writes a per-question table followed by the totals.
func printReport(w io.Writer, p *message.Printer, res *omr.Result, key map[string]int) {
	p.Fprintf(w, "%-8s %-8s %-8s %s\n", p.Sprintf("question"), p.Sprintf("marked"), p.Sprintf("key"), p.Sprintf("result"))
	for _, a := range res.Answers {
		marked := a.Letter()
		if marked == "" {
			marked = "-"
		}
		want := "-"
		if k, ok := key[a.QuestionID]; ok {
			want = exam.Letter(k)
		}

		var status string
		switch {
		case !a.Scorable:
			status = p.Sprintf("not keyed")
		case !a.Answered:
			status = p.Sprintf("blank")
		case a.Correct:
			status = p.Sprintf("correct")
		default:
			status = p.Sprintf("wrong")
		}
		p.Fprintf(w, "%-8s %-8s %-8s %s\n", a.QuestionID, marked, want, status)
	}
	p.Fprintf(w, "Score: %.4g of %.4g\n", res.Score, res.Possible)
	p.Fprintf(w, "%d correct, %d incorrect, %d unanswered\n", res.Correct, res.Incorrect, res.Unanswered)
}
