// Package export writes transactions and spending summaries to spreadsheet
// workbooks for downstream review.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/paisatrail/paisatrail/internal/analysis"
	"github.com/paisatrail/paisatrail/internal/model"
)

// Sheet names in the exported workbook.
const (
	sheetTransactions = "Transactions"
	sheetCategories   = "Category Summary"
	sheetMonthly      = "Monthly Summary"
)

// WriteWorkbook writes the transactions and their summary to an xlsx file.
// Monetary cells carry the exact two-decimal rendering of the underlying
// decimal amounts, never a floating-point approximation.
func WriteWorkbook(path string, txns []model.Transaction, summary model.Summary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := writeTransactions(f, txns); err != nil {
		return err
	}
	if err := writeCategorySummary(f, summary); err != nil {
		return err
	}
	if err := writeMonthlySummary(f, summary); err != nil {
		return err
	}

	// excelize seeds new files with "Sheet1"; the workbook should open on
	// the transaction list.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}
	index, err := f.GetSheetIndex(sheetTransactions)
	if err != nil {
		return fmt.Errorf("failed to find transactions sheet: %w", err)
	}
	f.SetActiveSheet(index)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %q: %w", path, err)
	}
	return nil
}

func writeTransactions(f *excelize.File, txns []model.Transaction) error {
	if _, err := f.NewSheet(sheetTransactions); err != nil {
		return fmt.Errorf("failed to create transactions sheet: %w", err)
	}

	header := []any{"Date", "Description", "Amount", "Direction", "Category"}
	if err := setRow(f, sheetTransactions, 1, header); err != nil {
		return err
	}

	for i, txn := range txns {
		row := []any{
			txn.Date.Format("2006-01-02"),
			txn.Description,
			txn.Amount.StringFixed(2),
			string(txn.Direction),
			txn.Category,
		}
		if err := setRow(f, sheetTransactions, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeCategorySummary(f *excelize.File, summary model.Summary) error {
	if _, err := f.NewSheet(sheetCategories); err != nil {
		return fmt.Errorf("failed to create category sheet: %w", err)
	}

	if err := setRow(f, sheetCategories, 1, []any{"Category", "Total Amount", "Transactions"}); err != nil {
		return err
	}

	// Ranked order, full list: the top-N ranking reuses the same comparator.
	ranked := rankAll(summary)
	for i, cat := range ranked {
		row := []any{cat.Category, cat.TotalAmount.StringFixed(2), cat.TransactionCount}
		if err := setRow(f, sheetCategories, i+2, row); err != nil {
			return err
		}
	}

	totalsRow := len(ranked) + 3
	if err := setRow(f, sheetCategories, totalsRow, []any{"Total Debits", summary.TotalDebits.StringFixed(2), ""}); err != nil {
		return err
	}
	return setRow(f, sheetCategories, totalsRow+1, []any{"Total Credits", summary.TotalCredits.StringFixed(2), ""})
}

func writeMonthlySummary(f *excelize.File, summary model.Summary) error {
	if _, err := f.NewSheet(sheetMonthly); err != nil {
		return fmt.Errorf("failed to create monthly sheet: %w", err)
	}

	if err := setRow(f, sheetMonthly, 1, []any{"Month", "Spending", "Income", "Transactions"}); err != nil {
		return err
	}

	for i, month := range summary.Monthly {
		row := []any{
			month.Month,
			month.Spending.StringFixed(2),
			month.Income.StringFixed(2),
			month.TransactionCount,
		}
		if err := setRow(f, sheetMonthly, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d on %s: %w", row, sheet, err)
	}
	return nil
}

func rankAll(summary model.Summary) []model.CategorySummary {
	return analysis.RankCategories(summary.Categories, len(summary.Categories))
}
