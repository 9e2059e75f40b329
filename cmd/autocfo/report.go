package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"autocfo/internal/classify"
	"autocfo/internal/common"
	"autocfo/internal/config"
	"autocfo/internal/excel"
	"autocfo/internal/ledger"
	"autocfo/internal/model"
	"autocfo/internal/report"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <client>",
		Short: "Generate a dashboard workbook for a client",
		Long: `Run the full pipeline for one client folder: load the ledger named in
its config.json, classify every transaction with the client's keyword
rules, aggregate by category and calendar month, and write the styled
dashboard workbook next to the ledger.`,
		Args: cobra.ExactArgs(1),
		RunE: runReport,
	}

	cmd.Flags().String("output", "", "Override the report output path")
	_ = viper.BindPFlag("report.output", cmd.Flags().Lookup("output"))

	return cmd
}

func runReport(_ *cobra.Command, args []string) error {
	logger := slog.Default()
	clientName := args[0]
	clientDir := filepath.Join(viper.GetString("clients.dir"), clientName)

	cfg, err := config.LoadClient(clientDir)
	if err != nil {
		return err
	}

	logger.Info("processing ledger", "client", clientName, "input", cfg.InputPath())
	txns, stats, err := ledger.Load(cfg.InputPath(), cfg.Mapping, logger)
	if err != nil {
		return err
	}
	if stats.SkippedRows > 0 {
		logger.Warn("rows dropped for unparseable dates", "count", stats.SkippedRows)
	}
	if stats.DefaultedAmounts > 0 {
		logger.Warn("amounts defaulted to zero", "count", stats.DefaultedAmounts)
	}

	classified := classifyWithProgress(txns, cfg.Rules)

	summary := report.Aggregate(classified)
	layout := report.BuildLayout(report.Meta{
		Title:  cfg.ReportTitle,
		Client: clientName,
	}, summary)

	outputPath := cfg.OutputPath()
	if override := viper.GetString("report.output"); override != "" {
		outputPath = override
	}

	if err := excel.WriteReport(outputPath, layout, summary, classified, excel.DefaultStyle(), logger); err != nil {
		return common.NewUserError(fmt.Sprintf("failed to generate report for %s", clientName), err)
	}

	logger.Info("dashboard generated",
		"client", clientName,
		"output", outputPath,
		"revenue", summary.KPIs.Revenue.StringFixed(2),
		"expenses", summary.KPIs.Expenses.StringFixed(2),
		"net_profit", summary.KPIs.NetProfit.StringFixed(2))
	return nil
}

func classifyWithProgress(txns []model.Transaction, rules model.RuleSet) []model.ClassifiedTransaction {
	bar := progressbar.NewOptions(len(txns),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Classifying transactions..."),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)

	classified := make([]model.ClassifiedTransaction, 0, len(txns))
	for _, txn := range txns {
		classified = append(classified, txn.Classify(classify.Classify(txn.Description, rules)))
		_ = bar.Add(1)
	}
	return classified
}
