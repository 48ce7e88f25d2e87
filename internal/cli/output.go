package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yildizm/lrview/internal/formatter"
	"github.com/yildizm/lrview/internal/result"
	"github.com/yildizm/lrview/internal/ui/theme"
)

func formatAndOutput(cmd *cobra.Command, res *result.AnalysisResult) error {
	f, err := getFormatter(getOutputFormat(), !theme.IsColorDisabled())
	if err != nil {
		return err
	}
	output, err := f.Format(res)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	return handleOutputDestination(cmd, output)
}

func handleOutputDestination(cmd *cobra.Command, output []byte) error {
	if analyzeOutputFile != "" {
		if err := writeOutputBytesToFile(output, analyzeOutputFile); err != nil {
			return err
		}
		if isVerbose() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Output written to: %s\n", analyzeOutputFile)
		}
		return nil
	}

	_, err := cmd.OutOrStdout().Write(output)
	return err
}

// validateFilePath validates that a file path is safe to read
func validateFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}
	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, must be a file")
	}
	return nil
}

func validateOutputFilePath(path string) error {
	cleanPath := filepath.Clean(path)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}
	return nil
}

func getFormatter(format string, color bool) (formatter.Formatter, error) {
	return formatter.New(format, color)
}

func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}
	return nil
}
