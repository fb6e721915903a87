package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fivetwenty-io/hubapi/internal/constants"
	"github.com/fivetwenty-io/hubapi/pkg/hub"
	"github.com/spf13/cobra"
)

// NewReportsCommand creates the reports command group.
func NewReportsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Generate and download version reports",
	}

	cmd.AddCommand(newReportsSBOMCommand())

	return cmd
}

func newReportsSBOMCommand() *cobra.Command {
	var (
		versionURL   string
		reportType   string
		reportFormat string
		outDir       string
	)

	cmd := &cobra.Command{
		Use:   "sbom",
		Short: "Generate an SBOM report and download its files",
		Long:  "Requests an SBOM report for the project version, waits for the server to finish generating it, and writes each report file to the output directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionURL == "" {
				return constants.ErrVersionURLRequired
			}

			resolvedType, err := resolveReportType(reportType)
			if err != nil {
				return err
			}

			resolvedFormat, err := resolveReportFormat(reportFormat)
			if err != nil {
				return err
			}

			client, err := createClient(cmd.Context())
			if err != nil {
				return err
			}

			reportHref, err := client.Reports().CreateVersionReport(cmd.Context(), versionURL, &hub.VersionReportRequest{
				ReportFormat: resolvedFormat,
				ReportType:   resolvedType,
				SBOMType:     resolvedType,
			})
			if err != nil {
				return fmt.Errorf("creating report: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Report requested, waiting for completion\n")

			report, err := client.Reports().WaitForCompletion(cmd.Context(), reportHref)
			if err != nil {
				return err
			}

			contents, err := client.Reports().DownloadContents(cmd.Context(), report)
			if err != nil {
				return fmt.Errorf("downloading report: %w", err)
			}

			if len(contents.ReportContent) == 0 {
				return constants.ErrNoReportContents
			}

			err = os.MkdirAll(outDir, constants.ConfigDirPerm)
			if err != nil {
				return fmt.Errorf("creating output directory: %w", err)
			}

			for _, content := range contents.ReportContent {
				name := content.FileName
				if name == "" {
					name = report.FileName
				}

				path := filepath.Join(outDir, filepath.Base(name))

				err = os.WriteFile(path, []byte(content.FileContent), constants.ReportFilePerm)
				if err != nil {
					return fmt.Errorf("writing %s: %w", path, err)
				}

				fmt.Printf("Wrote %s\n", path)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&versionURL, "version-url", "", "href of the project version")
	cmd.Flags().StringVar(&reportType, "type", "spdx22", "report type (spdx22, cyclonedx13, cyclonedx14)")
	cmd.Flags().StringVar(&reportFormat, "format", "json", "report format (json, rdf, tagvalue, yaml)")
	cmd.Flags().StringVar(&outDir, "out", ".", "output directory")

	return cmd
}

func resolveReportType(value string) (string, error) {
	switch strings.ToLower(value) {
	case "spdx22", strings.ToLower(hub.ReportTypeSPDX22):
		return hub.ReportTypeSPDX22, nil
	case "cyclonedx13", strings.ToLower(hub.ReportTypeCycloneDX13):
		return hub.ReportTypeCycloneDX13, nil
	case "cyclonedx14", strings.ToLower(hub.ReportTypeCycloneDX14):
		return hub.ReportTypeCycloneDX14, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidReportType, value)
	}
}

func resolveReportFormat(value string) (string, error) {
	switch strings.ToLower(value) {
	case "json":
		return hub.ReportFormatJSON, nil
	case "rdf":
		return hub.ReportFormatRDF, nil
	case "tagvalue":
		return hub.ReportFormatTagValue, nil
	case "yaml":
		return hub.ReportFormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidReportFormat, value)
	}
}
