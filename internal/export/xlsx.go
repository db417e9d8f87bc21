package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"telextract/internal/domain"
)

const sheetName = "Invoice Data"

// BuildWorkbook renders schema-mapped rows (from MapToRow) into an XLSX
// workbook and returns its bytes: styled header row, auto-filter, frozen
// header, money cells formatted #,##0.00 and date cells dd.mm.yyyy.
func BuildWorkbook(rows []domain.FieldMap) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("creating sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("deleting default sheet: %w", err)
	}

	if err := writeHeader(f); err != nil {
		return nil, err
	}

	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return nil, fmt.Errorf("creating money style: %w", err)
	}
	dateFmt := "dd.mm.yyyy"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return nil, fmt.Errorf("creating date style: %w", err)
	}

	for i, row := range rows {
		rowNum := i + 2
		for colIdx, col := range columns {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, err
			}
			value := row[col.Key]
			if value == nil {
				continue
			}

			switch col.Type {
			case domain.ColumnDate:
				if s, ok := value.(string); ok {
					if t, perr := time.Parse("2006-01-02", s); perr == nil {
						if err := f.SetCellValue(sheetName, cell, t); err != nil {
							return nil, err
						}
						if err := f.SetCellStyle(sheetName, cell, cell, dateStyle); err != nil {
							return nil, err
						}
						continue
					}
				}
				// Unnormalized date: write the raw string as-is.
				if err := f.SetCellValue(sheetName, cell, value); err != nil {
					return nil, err
				}
			case domain.ColumnMoney:
				if err := f.SetCellValue(sheetName, cell, value); err != nil {
					return nil, err
				}
				if _, isNum := value.(float64); isNum {
					if err := f.SetCellStyle(sheetName, cell, cell, moneyStyle); err != nil {
						return nil, err
					}
				}
			default:
				if err := f.SetCellValue(sheetName, cell, value); err != nil {
					return nil, err
				}
			}
		}
	}

	lastHeaderCell, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return nil, err
	}
	if err := f.AutoFilter(sheetName, "A1:"+lastHeaderCell, nil); err != nil {
		return nil, fmt.Errorf("setting auto-filter: %w", err)
	}
	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return nil, fmt.Errorf("freezing header row: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeHeader(f *excelize.File) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, col.Header); err != nil {
			return err
		}
		colName, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, colName, colName, col.Width); err != nil {
			return err
		}
	}

	lastCell, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCell, headerStyle); err != nil {
		return err
	}
	return f.SetRowHeight(sheetName, 1, 20)
}
