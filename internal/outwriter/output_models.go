package outwriter

import (
	"fmt"
	"io"

	"github.com/engramdev/engram/internal/contract"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// recommendedModels holds the coder models worth suggesting, best
// size/quality ratio first. Columns: model, download size, RAM, quality,
// speed.
var recommendedModels = [][]string{
	{"qwen2.5-coder:7b", "4.5GB", "8GB", "Good", "Fast"},
	{"qwen2.5-coder:14b", "8.5GB", "16GB", "Very Good", "Medium"},
	{"qwen2.5-coder:32b", "18GB", "24GB", "Excellent", "Slow"},
	{"deepseek-coder-v2:16b", "9GB", "16GB", "Very Good", "Medium"},
	{"codellama:13b", "7GB", "12GB", "Good", "Medium"},
}

// WriteModelRecommendations renders the static model guidance table followed
// by a usage hint. The first row is the default model and gets highlighted.
func WriteModelRecommendations(w io.Writer) error {
	if _, err := contract.TitleColor.Fprintln(w, "Recommended Models"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Model", "Size", "RAM", "Quality", "Speed"})

	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for i, row := range recommendedModels {
		if i == 0 {
			colored := make([]string, len(row))
			for j, cell := range row {
				colored[j] = contract.YesColor.Sprint(cell)
			}
			row = colored
		}
		data = append(data, row)
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintln(w, "\nUsage: engram analyze <repo> --model qwen2.5-coder:14b")
	return err
}
