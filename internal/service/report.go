package service

import (
	"bytes"
	"fmt"

	"ecodonate-backend/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const donationSheet = "Donations"

var donationHeaders = []string{"Donation ID", "Date", "Donor", "Email", "Amount", "Recurring", "Frequency", "Status"}

// buildDonationWorkbook renders donation records as an XLSX file with a total
// of completed donations on the last row.
func buildDonationWorkbook(records []domain.DonationRecord) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(donationSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2EFDA"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range donationHeaders {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(donationSheet, cell, header); err != nil {
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
	}
	if err := f.SetCellStyle(donationSheet, "A1", "H1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to set header style: %w", err)
	}

	total := decimal.Zero
	for i, rec := range records {
		row := i + 2
		donor := rec.DonorName
		if rec.IsAnonymous {
			donor = "Anonymous"
		}
		frequency := ""
		if rec.Frequency != nil {
			frequency = string(*rec.Frequency)
		}
		amount, _ := rec.Amount.Float64()
		recurring := "No"
		if rec.IsRecurring {
			recurring = "Yes"
		}

		values := []any{rec.ID, rec.CreatedAt.Format("2006-01-02 15:04:05"), donor, rec.DonorEmail, amount, recurring, frequency, string(rec.Status)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(donationSheet, cell, v); err != nil {
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}

		if rec.Status == domain.DonationStatusCompleted {
			total = total.Add(rec.Amount)
		}
	}

	totalRow := len(records) + 2
	labelCell, _ := excelize.CoordinatesToCellName(4, totalRow)
	totalCell, _ := excelize.CoordinatesToCellName(5, totalRow)
	if err := f.SetCellValue(donationSheet, labelCell, "Total completed"); err != nil {
		return nil, fmt.Errorf("failed to set total label: %w", err)
	}
	totalValue, _ := total.Float64()
	if err := f.SetCellValue(donationSheet, totalCell, totalValue); err != nil {
		return nil, fmt.Errorf("failed to set total: %w", err)
	}

	if err := f.SetPanes(donationSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
