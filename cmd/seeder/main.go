// Command seeder loads lexicon entries into a BadgerDB store so that
// every nlq engine opened on it starts with an enriched vocabulary.
//
// Seed lines are tab-separated:
//
//	syn	<lang>	<term>	<synonym>...
//	acr	<acronym>	<expansion>
//	trn	<english>	<arabic>
//	xlit	<english>	<arabic>
//
// Blank lines and lines starting with # are skipped.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/docuseek/nlq"
	"github.com/docuseek/nlq/core"
)

var entries = []string{
	"syn\ten\tcontract\tagreement\tdeal",
	"syn\ten\tinvoice\tbill\treceipt",
	"syn\ten\tbudget\tforecast\tallocation",
	"syn\ten\tpolicy\tguideline\tprocedure",
	"syn\ten\tmemo\tmemorandum\tnote",
	"syn\ten\tpayroll\tsalaries\tcompensation",
	"syn\tar\tعقد\tاتفاقية",
	"syn\tar\tفاتورة\tإيصال",
	"syn\tar\tميزانية\tموازنة",
	"acr\tRFP\trequest for proposal",
	"acr\tPO\tpurchase order",
	"acr\tNDA\tnon-disclosure agreement",
	"acr\tSOW\tstatement of work",
	"acr\tKPI\tkey performance indicator",
	"trn\tcontract\tعقد",
	"trn\tinvoice\tفاتورة",
	"trn\tbudget\tميزانية",
	"trn\tpolicy\tسياسة",
	"trn\treport\tتقرير",
	"trn\tmeeting minutes\tمحضر اجتماع",
	"xlit\tdocuseek\tدوكيوسيك",
}

var (
	dbPath       = flag.String("db", "./nlq_db", "path to BadgerDB directory")
	seedFileName = flag.String("src", "", "file of seed data")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile returns an iterator over lines in a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(scanner.Text()) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// seedLine parses and stores one lexicon line. The engine's write-through
// methods persist each entry as it is added.
func seedLine(ctx context.Context, engine *nlq.Engine, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	fields := strings.Split(line, "\t")
	switch fields[0] {
	case "syn":
		if len(fields) < 4 {
			return fmt.Errorf("syn line needs a language, a term and at least one synonym: %q", line)
		}
		return engine.AddSynonym(ctx, core.Language(fields[1]), fields[2], fields[3:]...)
	case "acr":
		if len(fields) != 3 {
			return fmt.Errorf("acr line needs an acronym and an expansion: %q", line)
		}
		return engine.AddAcronym(ctx, fields[1], fields[2])
	case "trn":
		if len(fields) != 3 {
			return fmt.Errorf("trn line needs an English and an Arabic form: %q", line)
		}
		return engine.AddTranslation(ctx, fields[1], fields[2], false)
	case "xlit":
		if len(fields) != 3 {
			return fmt.Errorf("xlit line needs an English and an Arabic form: %q", line)
		}
		return engine.AddTranslation(ctx, fields[1], fields[2], true)
	default:
		return fmt.Errorf("unknown seed record type %q", fields[0])
	}
}

func main() {
	engine, err := nlq.NewEngine(nlq.WithStoragePath(*dbPath))
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq[string]
	if seedFileName != nil && *seedFileName != "" {
		source, err = linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = linesFromSlice(entries)
	}

	count := 0
	for line := range source {
		if err := seedLine(ctx, engine, line); err != nil {
			panic(err)
		}
		count++
	}
	slog.Info("lexicon seeded", "db", *dbPath, "lines", count)
}
