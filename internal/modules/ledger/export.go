package ledger

import (
	"bytes"
	"context"
	"fmt"

	"github.com/georgemunganga/vendorhub-backend/internal/tenant"
	"github.com/georgemunganga/vendorhub-backend/internal/validate"
	"github.com/xuri/excelize/v2"
)

const statementSheet = "Sao kê"

// MaxTxLimit bounds both the JSON listing and the statement export.
const MaxTxLimit = 200

var statementHeader = []string{
	"Ngày tạo",
	"Loại",
	"Trạng thái",
	"Số tiền",
	"Số dư trước",
	"Số dư sau",
	"Mô tả",
	"Mã đơn hàng",
	"Phương thức",
	"Ngày xử lý",
}

var typeLabels = map[TxType]string{
	TypeDeposit:   "Nạp tiền",
	TypeDeduction: "Khấu trừ",
	TypeRefund:    "Hoàn tiền",
}

var statusLabels = map[TxStatus]string{
	StatusPending:  "Chờ duyệt",
	StatusApproved: "Đã duyệt",
	StatusRejected: "Từ chối",
}

func (s *service) ExportTransactions(ctx context.Context, scope tenant.Vendor, f TxFilter) ([]byte, error) {
	if err := validate.Struct(f); err != nil {
		return nil, err
	}
	txs, err := s.repo.ListTransactions(ctx, scope, f)
	if err != nil {
		return nil, err
	}
	return renderStatement(txs)
}

// renderStatement writes the ledger entries to a single-sheet workbook, newest first.
func renderStatement(txs []*Transaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(statementSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("delete default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return nil, fmt.Errorf("money style: %w", err)
	}

	header := make([]interface{}, len(statementHeader))
	for i, h := range statementHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(statementSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(statementHeader))
	if err := f.SetCellStyle(statementSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	for i, t := range txs {
		row := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		amount, _ := t.Amount.Float64()
		before, _ := t.BalanceBefore.Float64()
		after, _ := t.BalanceAfter.Float64()
		orderID, method, processed := "", "", ""
		if t.OrderID != nil {
			orderID = t.OrderID.String()
		}
		if t.PaymentMethod != nil {
			method = methodLabels[*t.PaymentMethod]
		}
		if t.ProcessedAt != nil {
			processed = t.ProcessedAt.Format("2006-01-02 15:04")
		}
		values := []interface{}{
			t.CreatedAt.Format("2006-01-02 15:04"),
			typeLabels[t.Type],
			statusLabels[t.Status],
			amount,
			before,
			after,
			t.Description,
			orderID,
			method,
			processed,
		}
		if err := f.SetSheetRow(statementSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		start, _ := excelize.CoordinatesToCellName(4, row)
		end, _ := excelize.CoordinatesToCellName(6, row)
		if err := f.SetCellStyle(statementSheet, start, end, moneyStyle); err != nil {
			return nil, fmt.Errorf("style row %d: %w", row, err)
		}
	}

	if err := f.SetColWidth(statementSheet, "A", "J", 18); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(statementSheet, "G", "G", 48); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
