package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	v1 "agrigrow/income-portal/income-portal-backend/api/v1"
	"agrigrow/income-portal/income-portal-backend/internal/catalog"
	"agrigrow/income-portal/income-portal-backend/internal/config"
	"agrigrow/income-portal/income-portal-backend/internal/reports"
	"agrigrow/income-portal/income-portal-backend/internal/reports/charts"
)

func (c *cli) catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List waste categories and types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, cat := range catalog.Default().Categories {
				fmt.Fprintf(out, "%s\n", cat.Name)
				for _, t := range cat.Types {
					fmt.Fprintf(out, "  %s\n", t)
				}
			}
			return nil
		},
	}
}

func (c *cli) generateCmd() *cobra.Command {
	var (
		category  string
		wasteType string
		out       string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate income ideas for a waste type and write the PDF report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Checked before the configuration so a missing selection never
			// needs credentials.
			if _, err := catalog.Default().Resolve(category, wasteType); err != nil {
				return err
			}

			cfg, err := config.LoadConfig(c.configPath)
			if err != nil {
				return err
			}

			api, err := v1.SetupReportsAPI(cmd.Context(), cfg, c.logger)
			if err != nil {
				return err
			}

			report, err := api.Service.Generate(cmd.Context(), reports.GenerateRequest{
				Category:  category,
				WasteType: wasteType,
			})
			if err != nil {
				return err
			}

			if out == "" {
				out = localFileName(report.FileName)
			}
			if err := os.WriteFile(out, report.PDF, 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}

			c.logger.Info("Report written", zap.String("path", out), zap.String("report_id", report.ID.String()))
			fmt.Fprintln(cmd.OutOrStdout(), report.Text)
			fmt.Fprintf(cmd.ErrOrStderr(), "Report saved to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Waste category (inferred from --type when empty)")
	cmd.Flags().StringVarP(&wasteType, "type", "t", "", "Waste type")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (default {type}_income_ideas.pdf)")
	return cmd
}

func (c *cli) chartCmd() *cobra.Command {
	var (
		format string
		out    string
		width  int
		height int
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Export the income trends chart as png, csv or xlsx",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := reports.NewService(catalog.Default(), nil, charts.NewRenderer(width, height), v1.PDFOptions(config.Default().Report), c.logger)

			artifact, err := svc.ChartArtifact(reports.ChartFormat(strings.ToLower(format)))
			if err != nil {
				return err
			}

			if out == "" {
				out = artifact.FileName
			}
			if err := os.WriteFile(out, artifact.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write chart: %w", err)
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Chart saved to %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(reports.ChartFormatPNG), "Output format: png, csv or xlsx")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output path (default income_trends.{format})")
	cmd.Flags().IntVar(&width, "width", charts.DefaultWidth, "PNG width in pixels")
	cmd.Flags().IntVar(&height, "height", charts.DefaultHeight, "PNG height in pixels")
	return cmd
}

// localFileName keeps a download name usable as a file in the working
// directory: waste types such as "Fruit/Veg Wastes" contain a separator.
func localFileName(name string) string {
	return filepath.Base(strings.ReplaceAll(name, "/", "-"))
}
