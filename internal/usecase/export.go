package usecase

import (
	"bytes"
	"fmt"
	"strings"

	"go-portfolio-backend/internal/domain"

	"github.com/xuri/excelize/v2"
)

type sheetTable struct {
	name    string
	headers []string
	rows    [][]interface{}
}

// buildWorkbook renders a stored profile as an .xlsx file: one summary sheet
// plus one sheet per entry section.
func buildWorkbook(p *domain.PortfolioProfile) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	info := p.Profile.PersonalInfo
	prof := p.Profile.Professional

	summary := sheetTable{
		name:    "Summary",
		headers: []string{"Field", "Value"},
		rows: [][]interface{}{
			{"Username", p.Username},
			{"Template", p.TemplateID},
			{"Completion", fmt.Sprintf("%d%%", p.Completion)},
			{"Phone", info.Phone},
			{"Location", info.Location},
			{"LinkedIn", info.SocialLinks.LinkedIn},
			{"GitHub", info.SocialLinks.GitHub},
			{"Title", prof.Title},
			{"Summary", prof.Summary},
			{"Skills", strings.Join(prof.Skills, ", ")},
		},
	}

	experience := sheetTable{
		name:    "Experience",
		headers: []string{"Title", "Company", "Location", "Start", "End", "Current", "Description"},
	}
	for _, e := range p.Profile.Experience {
		end := e.EndDate
		if e.Current {
			end = "Present"
		}
		experience.rows = append(experience.rows, []interface{}{e.Title, e.Company, e.Location, e.StartDate, end, e.Current, e.Description})
	}

	education := sheetTable{
		name:    "Education",
		headers: []string{"Degree", "School", "Location", "Start", "End", "Description"},
	}
	for _, e := range p.Profile.Education {
		education.rows = append(education.rows, []interface{}{e.Degree, e.School, e.Location, e.StartDate, e.EndDate, e.Description})
	}

	projects := sheetTable{
		name:    "Projects",
		headers: []string{"Title", "Description", "Skills", "URL", "GitHub", "Featured"},
	}
	for _, pr := range p.Profile.Projects {
		projects.rows = append(projects.rows, []interface{}{pr.Title, pr.Description, strings.Join(pr.Skills, ", "), pr.URL, pr.GitHubURL, pr.Featured})
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for i, table := range []sheetTable{summary, experience, education, projects} {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", table.name); err != nil {
				return nil, err
			}
		} else if _, err := f.NewSheet(table.name); err != nil {
			return nil, err
		}
		if err := writeTable(f, table, headerStyle); err != nil {
			return nil, fmt.Errorf("failed to write %s sheet: %w", table.name, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTable(f *excelize.File, table sheetTable, headerStyle int) error {
	for i, h := range table.headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(table.name, cell, h); err != nil {
			return err
		}
	}
	endCell, _ := excelize.CoordinatesToCellName(len(table.headers), 1)
	if err := f.SetCellStyle(table.name, "A1", endCell, headerStyle); err != nil {
		return err
	}

	for rowIdx, row := range table.rows {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err := f.SetCellValue(table.name, cell, value); err != nil {
				return err
			}
		}
	}

	for i := range table.headers {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(table.name, colName, colName, 24)
	}
	return nil
}

func exportFilename(username string) string {
	if username == "" {
		return "portfolio_profile.xlsx"
	}
	return fmt.Sprintf("portfolio_%s.xlsx", username)
}
