package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/linkexec-go/pkg/linkexec/render"
	"go.uber.org/zap"
)

func newTemplateCmd() *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write the sample plan template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("failed to create output: %w", err)
			}
			if err := render.WriteSampleTemplate(out); err != nil {
				out.Close()
				return fmt.Errorf("failed to write template: %w", err)
			}
			if err := out.Close(); err != nil {
				return err
			}
			logger.Info("Sample template written", zap.String("output", outputPath))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", render.SampleTemplateName, "Output file path")
	return cmd
}
