package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/mt940convert/internal/convert"
	"github.com/cleared-dev/mt940convert/internal/mt940"
)

func newConvertCommand() *cobra.Command {
	var to string
	var outDir string
	var parserName string

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert an MT940 statement file",
		Long: "Convert an MT940 statement file and write <name>.<ext> to the output directory.\n" +
			"Output formats: " + strings.Join(convert.Tags(), ", ") + ".",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd.OutOrStdout(), args[0], outDir, to, parserName)
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "output format: "+strings.Join(convert.Tags(), ", ")+" (required)")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	cmd.Flags().StringVar(&parserName, "parser", mt940.DefaultParser, "statement parser: fixed or swift")

	return cmd
}

func runConvert(w io.Writer, path, outDir, tag, parserName string) error {
	// Reject the format before touching the input.
	format, err := convert.ParseFormat(tag)
	if err != nil {
		return err
	}
	parser := mt940.DefaultRegistry().Get(parserName)
	if parser == nil {
		return fmt.Errorf("unknown parser %q", parserName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	res, err := convert.ConvertFormat(string(data), format, convert.WithParser(parser))
	if err != nil {
		return err
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath, err := writeFile(outDir, base+"."+res.Extension, res.Content)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Converted %s -> %s (%d transactions, %s)\n", path, outPath, res.Count, humanSize(len(res.Content)))
	return nil
}

// writeFile writes data to outDir/name, ensuring the resulting path stays
// within outDir. It returns the written path.
func writeFile(outDir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	outPath := filepath.Join(outDir, name)

	absOut, err := filepath.Abs(outDir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	absPath, err := filepath.Abs(outPath)
	if err != nil {
		return "", fmt.Errorf("resolving output path: %w", err)
	}
	if !strings.HasPrefix(absPath, absOut+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal blocked: %s", name)
	}

	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", outPath, err)
	}
	return outPath, nil
}

// humanSize formats a byte count as a human-readable string (e.g. "1.2 KB").
func humanSize(b int) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := unit, 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
