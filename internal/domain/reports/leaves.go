package reports

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"

	"hrlite/internal/domain/leave"
)

type Service struct {
	Leaves *leave.Store
}

func NewService(leaveStore *leave.Store) *Service {
	return &Service{Leaves: leaveStore}
}

// WriteLeaveSummaryPDF renders all leave requests, newest first, as a
// one-page-per-~40-rows PDF table.
func (s *Service) WriteLeaveSummaryPDF(ctx context.Context, w io.Writer) error {
	requests, err := s.Leaves.List(ctx)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Leave requests")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated %s", time.Now().UTC().Format("2006-01-02 15:04 UTC")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(50, 7, "Employee", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "From", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "To", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Status", "1", 0, "L", false, 0, "")
	pdf.CellFormat(55, 7, "Reason", "1", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, req := range requests {
		name := req.EmployeeID
		if req.Employee != nil {
			name = req.Employee.FullName
		}
		pdf.CellFormat(50, 7, truncate(name, 30), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, req.FromDate.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, req.ToDate.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, string(req.Status), "1", 0, "L", false, 0, "")
		pdf.CellFormat(55, 7, truncate(req.Reason, 35), "1", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	return value[:max-3] + "..."
}
