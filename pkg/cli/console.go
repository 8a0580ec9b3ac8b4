package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/storeget/pkg/domain/model"
	"github.com/m-mizutani/storeget/pkg/usecase"
)

// console renders the asset table and reads the operator's choice. It is the
// only place that touches terminal presentation; the use cases never do.
type console struct {
	out io.Writer
	in  io.Reader
}

func newConsole(out io.Writer, in io.Reader) *console {
	return &console{out: out, in: in}
}

// metaHeader is the family-specific fourth column title
func metaHeader(family model.Family) string {
	if family == model.FamilyUWP {
		return "Modified"
	}
	return "Locale"
}

// PrintAssets renders the resolved assets as a numbered table. The last
// column switches between the modified timestamp and the locale depending on
// the result family.
func (c *console) PrintAssets(result *model.ResolutionResult) {
	header := color.New(color.FgCyan, color.Bold)
	headers := []string{"No.", "Name", "Arch", "Extension", metaHeader(result.Family)}

	rows := make([][]string, 0, len(result.Assets))
	for i, asset := range result.Assets {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			asset.Name,
			asset.Arch,
			asset.Extension,
			asset.MetaColumn(),
		})
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	for i, h := range headers {
		header.Fprintf(c.out, "%-*s  ", widths[i], h)
	}
	fmt.Fprintln(c.out)
	for _, row := range rows {
		for i, cell := range row {
			fmt.Fprintf(c.out, "%-*s  ", widths[i], cell)
		}
		fmt.Fprintln(c.out)
	}
}

// PromptChoice asks for a 1-based asset number or 'q'. It returns the
// selected zero-based index, quit=true for 'q', and io.EOF untouched so the
// caller can detect non-interactive sessions.
func (c *console) PromptChoice(count int) (int, bool, error) {
	fmt.Fprintf(c.out, "\nEnter the number of the asset to download, or 'q' to quit: ")

	reader := bufio.NewReader(c.in)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return 0, false, err
	}

	choice := strings.TrimSpace(line)
	if strings.EqualFold(choice, "q") {
		return 0, true, nil
	}

	n, err := strconv.Atoi(choice)
	if err != nil {
		return 0, false, goerr.New("invalid input", goerr.V("input", choice))
	}
	if n < 1 || n > count {
		return 0, false, goerr.New("selection out of range",
			goerr.V("input", n), goerr.V("asset_count", count))
	}

	return n - 1, false, nil
}

// ProgressFunc returns a callback printing a single self-overwriting
// progress line. It stays quiet when the response declares no length.
func (c *console) ProgressFunc() usecase.ProgressFunc {
	lastPercent := -1
	return func(received, total int64) {
		if total <= 0 {
			return
		}
		percent := int(received * 100 / total)
		if percent == lastPercent {
			return
		}
		lastPercent = percent
		fmt.Fprintf(c.out, "\rDownloading... %3d%% (%d/%d bytes)", percent, received, total)
		if received >= total {
			fmt.Fprintln(c.out)
		}
	}
}

func (c *console) Successf(format string, args ...any) {
	color.New(color.FgGreen).Fprintf(c.out, format+"\n", args...)
}

func (c *console) Infof(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// autoSelect picks the default asset for non-interactive flows: index 0
func autoSelect(result *model.ResolutionResult) (model.Asset, error) {
	if len(result.Assets) == 0 {
		return model.Asset{}, goerr.New("no assets available for download")
	}
	return result.Assets[0], nil
}
