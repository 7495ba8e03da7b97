package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"line-translator/internal/cache"
	"line-translator/internal/compare"
	"line-translator/internal/config"
	"line-translator/internal/graph"
	"line-translator/internal/parser"
	"line-translator/internal/resume"
	"line-translator/internal/worker"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const (
	originEdit    = "edit"
	originCompare = "compare"
)

func syncCmd(cfg *config.Config) *cobra.Command {
	var (
		noCache bool
		noGraph bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Publish settled translations to the PostgreSQL cache and the Neo4j term graph",
		Long: `Collects every text the result log changed, plus the choices recorded in the
comparison report, and upserts them into the translation_cache table and as
Term nodes in Neo4j. Choices from the comparison report win over log entries
for the same source text.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cfg, noCache, noGraph)
		},
	}

	cmd.Flags().StringVarP(&cfg.InputFile, "input", "i", cfg.InputFile, "Input file that was reviewed")
	cmd.Flags().StringVarP(&cfg.ResultFile, "output", "o", cfg.ResultFile, "Result log to publish")
	cmd.Flags().StringVar(&cfg.CompareOutput, "report", cfg.CompareOutput, "Comparison report to publish, if present")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the PostgreSQL translation cache")
	cmd.Flags().BoolVar(&noGraph, "no-graph", false, "Skip the Neo4j term graph")

	return cmd
}

// collectTerms merges changed log pairs with comparison choices. One term is
// kept per source text, in first-seen order; a comparison choice replaces an
// edit for the same source.
func collectTerms(pairs []resume.Pair, resolutions []compare.Resolution) []graph.Term {
	var terms []graph.Term
	index := make(map[string]int)

	put := func(t graph.Term) {
		if i, ok := index[t.Source]; ok {
			if t.Origin == originCompare || terms[i].Origin != originCompare {
				terms[i] = t
			}
			return
		}
		index[t.Source] = len(terms)
		terms = append(terms, t)
	}

	for _, p := range pairs {
		if p.Source == p.Target {
			continue
		}
		put(graph.Term{Source: p.Source, Target: p.Target, Origin: originEdit})
	}
	for _, r := range resolutions {
		put(graph.Term{Source: r.Original, Target: r.Chosen, Origin: originCompare})
	}
	return terms
}

func loadTerms(cfg *config.Config) ([]graph.Term, error) {
	source, err := parser.ReadLines(cfg.InputFile)
	if err != nil {
		return nil, fmt.Errorf("read input file: %w", err)
	}
	logLines, err := parser.ReadLinesIfExists(cfg.ResultFile)
	if err != nil {
		return nil, fmt.Errorf("read result log: %w", err)
	}

	var resolutions []compare.Resolution
	if _, err := os.Stat(cfg.CompareOutput); err == nil {
		resolutions, err = compare.ReadReport(cfg.CompareOutput)
		if err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat report: %w", err)
	}

	return collectTerms(resume.Pairs(source, logLines), resolutions), nil
}

// runSync handles the `sync` command.
func runSync(cfg *config.Config, noCache, noGraph bool) error {
	ctx, cancel := setupContext()
	defer cancel()

	terms, err := loadTerms(cfg)
	if err != nil {
		return err
	}
	if len(terms) == 0 {
		fmt.Println("Nothing to sync.")
		return nil
	}
	log.Info().Int("terms", len(terms)).Msg("Collected settled translations")

	if !noCache {
		if err := syncCache(ctx, cfg, terms); err != nil {
			return err
		}
	}
	if !noGraph {
		if err := syncGraph(ctx, cfg, terms); err != nil {
			return err
		}
	}

	fmt.Printf("Synced %d translations.\n", len(terms))
	return nil
}

func syncCache(ctx context.Context, cfg *config.Config, terms []graph.Term) error {
	pgPool, err := connectPostgres(ctx, cfg)
	if err != nil {
		return err
	}
	defer pgPool.Close()

	tc := cache.NewTranslationCache(pgPool)
	if err := tc.EnsureSchema(ctx); err != nil {
		return err
	}
	if err := tc.Preload(ctx); err != nil {
		return err
	}

	var pending []graph.Term
	for _, t := range terms {
		if cached, ok := tc.Get(ctx, t.Source); ok && cached == t.Target {
			continue
		}
		pending = append(pending, t)
	}

	pool := worker.NewPool(cfg.WorkerCount, func(ctx context.Context, t graph.Term) (struct{}, error) {
		return struct{}{}, tc.Set(ctx, t.Source, t.Target)
	})
	tasks := pool.Execute(ctx, pending)

	failed := worker.Failed(tasks)
	log.Info().
		Int("written", len(pending)-failed).
		Int("unchanged", len(terms)-len(pending)).
		Int("failed", failed).
		Msg("Translation cache synced")

	if failed > 0 {
		return fmt.Errorf("%d of %d cache writes failed", failed, len(pending))
	}
	return nil
}

func syncGraph(ctx context.Context, cfg *config.Config, terms []graph.Term) error {
	driver, err := connectNeo4j(ctx, cfg)
	if err != nil {
		return err
	}
	defer driver.Close(ctx)

	gb := graph.NewGraphBuilder(driver)
	if err := gb.EnsureSchema(ctx); err != nil {
		return err
	}
	return gb.UpsertTerms(ctx, terms, cfg.BatchSize)
}

func connectPostgres(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}

	if err := pgPool.Ping(ctx); err != nil {
		pgPool.Close()
		return nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL")
	return pgPool, nil
}

func connectNeo4j(ctx context.Context, cfg *config.Config) (neo4j.DriverWithContext, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
	if err != nil {
		return nil, fmt.Errorf("connect Neo4j: %w", err)
	}

	if err := driver.VerifyConnectivity(ctx); err != nil {
		driver.Close(ctx)
		return nil, fmt.Errorf("verify Neo4j connectivity: %w", err)
	}
	log.Info().Msg("Connected to Neo4j")
	return driver, nil
}
