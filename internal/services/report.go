package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"github.com/openbims/bims-backend/internal/logger"
	"github.com/openbims/bims-backend/internal/repos"
	"github.com/openbims/bims-backend/internal/types"
)

var masterlistHeaders = []string{
	"Resident ID", "Last Name", "First Name", "Middle Name", "Suffix",
	"Date of Birth", "Sex", "Civil Status", "Contact No", "Registered At",
}

type ReportService interface {
	// ResidentMasterlist renders every resident profile into an XLSX
	// workbook and returns the file bytes.
	ResidentMasterlist(ctx context.Context) ([]byte, error)
}

type reportService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo repos.ResidentProfileRepo
}

func NewReportService(db *gorm.DB, baseLog *logger.Logger, profileRepo repos.ResidentProfileRepo) ReportService {
	return &reportService{
		db:          db,
		log:         baseLog.With("service", "ReportService"),
		profileRepo: profileRepo,
	}
}

func (s *reportService) ResidentMasterlist(ctx context.Context) ([]byte, error) {
	f := excelize.NewFile()

	sheetName := "Resident Masterlist"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}
	for col, header := range masterlistHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("set header style: %w", err)
		}
	}

	const pageSize = 500
	row := 2
	for offset := 0; ; offset += pageSize {
		profiles, err := s.profileRepo.List(ctx, nil, pageSize, offset)
		if err != nil {
			f.Close()
			return nil, err
		}
		if len(profiles) == 0 {
			break
		}
		for _, profile := range profiles {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("convert coordinates: %w", err)
			}
			if err := f.SetSheetRow(sheetName, cell, &[]any{
				profile.RpID,
				personalField(profile.Personal, func(p *types.Personal) string { return p.LastName }),
				personalField(profile.Personal, func(p *types.Personal) string { return p.FirstName }),
				personalField(profile.Personal, func(p *types.Personal) string { return p.MiddleName }),
				personalField(profile.Personal, func(p *types.Personal) string { return p.Suffix }),
				personalField(profile.Personal, func(p *types.Personal) string { return p.DateOfBirth.Format("2006-01-02") }),
				personalField(profile.Personal, func(p *types.Personal) string { return p.Sex }),
				personalField(profile.Personal, func(p *types.Personal) string { return p.CivilStatus }),
				personalField(profile.Personal, func(p *types.Personal) string { return p.ContactNo }),
				profile.CreatedAt.Format(time.RFC3339),
			}); err != nil {
				f.Close()
				return nil, fmt.Errorf("set row %d: %w", row, err)
			}
			row++
		}
		if len(profiles) < pageSize {
			break
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("render workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close workbook: %w", err)
	}
	s.log.Info("Masterlist exported", "rows", row-2)
	return buf.Bytes(), nil
}

func personalField(p *types.Personal, pick func(*types.Personal) string) string {
	if p == nil {
		return ""
	}
	return pick(p)
}
