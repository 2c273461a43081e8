package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"candidate-voting-backend/internal/domain"
	"candidate-voting-backend/pkg/apperror"

	"github.com/xuri/excelize/v2"
)

var standingsHeaders = []string{
	"RANK", "NAME", "PARTY", "CONSTITUENCY", "AGE", "LIKES", "DISLIKES", "VIEWS", "CREATED AT",
}

type exportUsecase struct {
	repo domain.CandidateRepository
	now  func() time.Time
}

func NewExportUsecase(repo domain.CandidateRepository) domain.ExportUsecase {
	return &exportUsecase{repo: repo, now: time.Now}
}

// ExportStandings renders the current ranking as xlsx (the default) or csv.
func (u *exportUsecase) ExportStandings(ctx context.Context, format string) (*domain.ExportFile, error) {
	var render func([][]interface{}) ([]byte, error)
	var contentType string

	switch domain.ExportFormat(format) {
	case domain.ExportXLSX, "":
		format = string(domain.ExportXLSX)
		render = renderExcel
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case domain.ExportCSV:
		render = renderCSV
		contentType = "text/csv"
	default:
		return nil, apperror.BadRequest(fmt.Sprintf("Unsupported export format %q. Use 'xlsx' or 'csv'", format))
	}

	candidates, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, 0, len(candidates))
	for i, c := range candidates {
		s := c.Summary()
		age := 0
		if s.Age != nil {
			age = *s.Age
		}
		rows = append(rows, []interface{}{
			i + 1, s.Name, s.Party, s.Constituency, age,
			s.LikesCount, s.DislikesCount, s.ViewsCount,
			s.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	data, err := render(rows)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	return &domain.ExportFile{
		Filename:    fmt.Sprintf("candidate_standings_%s.%s", u.now().Format("20060102_150405"), format),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func renderExcel(rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Standings"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}

	for i, h := range standingsHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, h)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(standingsHeaders), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, row := range rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range standingsHeaders {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func renderCSV(rows [][]interface{}) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(standingsHeaders); err != nil {
		return nil, err
	}
	record := make([]string, len(standingsHeaders))
	for _, row := range rows {
		for i, value := range row {
			switch v := value.(type) {
			case int:
				record[i] = strconv.Itoa(v)
			default:
				record[i] = fmt.Sprint(v)
			}
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}
	return buf.Bytes(), nil
}
