package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hoppa1231/Handbook/internal/config"
	"github.com/hoppa1231/Handbook/internal/importer"
	"github.com/hoppa1231/Handbook/internal/store"
	"github.com/hoppa1231/Handbook/pkg/logger"
)

func importCommand() *cobra.Command {
	c := &cobra.Command{
		Use:   "import <spreadsheet.xlsx>",
		Short: "Import suppliers, products, and prices from a spreadsheet",
		Long: "Reads a supplier price spreadsheet and reconciles it into the\n" +
			"database. Re-running the same file converges: no duplicate\n" +
			"products, suppliers, or offers are created.",
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	c.Flags().String("env", "", "path to a .env file containing DATABASE_URL")
	c.Flags().String("db-host", "", "override the database host (useful outside Docker)")
	c.Flags().String("db-port", "", "override the database port")
	c.Flags().String("sheet", "", "worksheet name (default: first sheet)")
	c.Flags().String("currency", "", "currency code to stamp on imported offers")

	cobra.CheckErr(viper.BindPFlag("db-host", c.Flags().Lookup("db-host")))
	cobra.CheckErr(viper.BindPFlag("db-port", c.Flags().Lookup("db-port")))

	return c
}

func init() {
	rootCmd.AddCommand(importCommand())
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("spreadsheet %q does not exist", path)
	}

	envFile, _ := cmd.Flags().GetString("env")
	opts, err := importOptions(cmd, cfgFile)
	if err != nil {
		return err
	}

	dbURL, err := config.ResolveDatabaseURL(envFile, config.DatabaseURLOverrides{
		Host: viper.GetString("db-host"),
		Port: viper.GetString("db-port"),
	})
	if err != nil {
		return err
	}

	log := logger.New(viper.GetString("log-level"), viper.GetString("log-format"))
	log.Info("using database url", "url", config.MaskPassword(dbURL))

	ctx := cmd.Context()
	st, err := store.NewPostgresStore(ctx, dbURL)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	imp := importer.New(st, log, opts)

	summary, err := imp.ImportFile(ctx, path)
	if err != nil {
		return err
	}

	fmt.Printf("Processed %d product rows and upserted %d supplier price entries.\n",
		summary.RowsProcessed, summary.OffersUpserted)
	return nil
}

// importOptions merges the import section of the config file, when one is
// present, with the command flags. Flags win.
func importOptions(cmd *cobra.Command, cfgPath string) (importer.Options, error) {
	opts := importer.Options{}
	opts.SheetName, _ = cmd.Flags().GetString("sheet")
	opts.DefaultCurrency, _ = cmd.Flags().GetString("currency")

	if _, err := os.Stat(cfgPath); err != nil {
		return opts, nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return importer.Options{}, fmt.Errorf("loading config: %w", err)
	}
	if !cmd.Flags().Changed("sheet") {
		opts.SheetName = cfg.Import.Sheet
	}
	if !cmd.Flags().Changed("currency") {
		opts.DefaultCurrency = cfg.Import.DefaultCurrency
	}
	return opts, nil
}
