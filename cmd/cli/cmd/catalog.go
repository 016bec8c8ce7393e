// Package cmd - catalog and classify commands
package cmd

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"quote-report/core/catalog"
	"quote-report/core/classify"
	"quote-report/core/report"
	"quote-report/core/types"
	"quote-report/core/ui"
)

// catalogCmd lists the category catalog
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List quotation categories in report order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.Load()
		if err != nil {
			return err
		}

		w := ui.NewWriter(cmd.OutOrStdout(), noColor)
		w.SetVerbosity(verbosity())
		w.Header("报价分类")

		table := w.NewTable("顺序", "键", "分类", "计费方式", "列数")
		for _, def := range cat.Definitions() {
			table.AddRow(
				strconv.Itoa(def.Order),
				def.Key,
				def.Label(),
				string(def.PriceType),
				strconv.Itoa(len(report.Columns(def.PriceType, false))),
			)
		}
		table.Render()

		w.Line("")
		w.SubHeader("名称规则")
		rules := w.NewTable("分类", "包含", "前缀", "后缀")
		for _, r := range cat.Rules() {
			rules.AddRow(r.Category, strings.Join(r.Contains, ","), strings.Join(r.Prefixes, ","), strings.Join(r.Suffixes, ","))
		}
		rules.Render()

		stats := cat.Stats()
		w.Line("")
		w.Info("%d categories (%d token, %d other), %d units, %d rules, default %s",
			stats.Total, stats.Token, stats.NonToken, stats.Units, stats.Rules, cat.DefaultKey())
		priceTypes := make([]catalog.PriceType, 0, len(stats.ByPriceType))
		for pt := range stats.ByPriceType {
			priceTypes = append(priceTypes, pt)
		}
		slices.Sort(priceTypes)
		for _, pt := range priceTypes {
			w.Debug("price type %s: %d categories", pt, stats.ByPriceType[pt])
		}
		return nil
	},
}

var (
	classifyCode        string
	classifyName        string
	classifyModelName   string
	classifyCategory    string
	classifySubCategory string
)

// classifyCmd shows the category a model would be filed under
var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Show the category a model is filed under",
	Long: `Classify a model the same way render does.

Examples:
  quote classify --code qwen-max
  quote classify --code wanx2.1-t2i-turbo
  quote classify --name paraformer-v2 --category unknown`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sel := types.ModelSelection{
			Code:        types.Text(classifyCode),
			Name:        types.Text(classifyName),
			ModelName:   types.Text(classifyModelName),
			Category:    types.Text(classifyCategory),
			SubCategory: types.Text(classifySubCategory),
		}
		if sel.DisplayName() == "" && sel.Category == "" && sel.SubCategory == "" {
			return fmt.Errorf("give at least one of --code, --name, --model-name, --category")
		}

		cat, err := catalog.Load()
		if err != nil {
			return err
		}
		key := classify.New(cat).Classify(sel)
		def := cat.Resolve(key)
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", def.Key, def.Label(), def.PriceType)
		return nil
	},
}

func init() {
	catalogCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colors")

	classifyCmd.Flags().StringVar(&classifyCode, "code", "", "model code")
	classifyCmd.Flags().StringVar(&classifyName, "name", "", "model name")
	classifyCmd.Flags().StringVar(&classifyModelName, "model-name", "", "display name")
	classifyCmd.Flags().StringVar(&classifyCategory, "category", "", "explicit category key")
	classifyCmd.Flags().StringVar(&classifySubCategory, "sub-category", "", "explicit sub-category key")
}
