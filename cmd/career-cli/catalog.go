// cmd/career-cli/catalog.go
package main

import (
	"context"
	"fmt"
	"io"

	"career-workers/internal/catalog"
	"career-workers/internal/common/config"
	"career-workers/internal/common/database"
	"career-workers/internal/common/logger"

	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the career catalog",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a catalog file without touching any store",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCatalogValidate(cmd.OutOrStdout(), catalogFile)
	},
}

var catalogImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Replace the stored catalog and search index with a catalog file",
	Long:  "Validates the catalog file and makes it the whole catalog: careers are upserted into Postgres in file order, careers missing from the file are deleted, the cached catalog in Redis is dropped and the search index is brought in line.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runCatalogImport(cmd.Context(), cmd.OutOrStdout(), catalogFile, catalogConfig, catalogSkipIndex)
	},
}

var (
	catalogFile      string
	catalogConfig    string
	catalogSkipIndex bool
)

func init() {
	catalogCmd.PersistentFlags().StringVarP(&catalogFile, "file", "f", "", "Path to career catalog JSON (required)")
	if err := catalogCmd.MarkPersistentFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	catalogImportCmd.Flags().StringVar(&catalogConfig, "config", "", "Config file (defaults to configs/config.yaml)")
	catalogImportCmd.Flags().BoolVar(&catalogSkipIndex, "skip-index", false, "Do not write to Elasticsearch")

	catalogCmd.AddCommand(catalogValidateCmd, catalogImportCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogValidate(w io.Writer, path string) error {
	careers, err := readCatalog(path)
	if err != nil {
		fmt.Fprintln(w, errorStyle.Render("✗ "+err.Error()))
		return err
	}
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("✓ %d careers valid", len(careers))))
	return nil
}

func runCatalogImport(ctx context.Context, w io.Writer, path, configPath string, skipIndex bool) error {
	careers, err := readCatalog(path)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	conns, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer conns.Close()

	if err := database.EnsureSchema(ctx, conns.DB); err != nil {
		return err
	}

	log := logger.NewStructured(cfg.Logging.Level, "console")
	repo := catalog.NewRepository(catalog.NewPostgres(conns.DB), conns.Redis, cfg.Scoring.CacheTTL(), log)
	removed, err := catalog.Import(ctx, catalog.NewPostgres(conns.DB), repo, careers)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %d careers\n", labelStyle.Render("Imported"), len(careers))
	if len(removed) > 0 {
		fmt.Fprintf(w, "%s %d careers\n", labelStyle.Render("Removed"), len(removed))
	}

	if skipIndex {
		return nil
	}
	if err := catalog.IndexAll(ctx, conns.Search, cfg.Search.Index, careers, removed...); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s %d careers into %s\n", labelStyle.Render("Indexed"), len(careers), cfg.Search.Index)
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromFile(path)
	}
	return config.Load()
}
