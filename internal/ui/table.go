package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/talentdesk/applywizard/internal/directory"
)

// renderTable draws rows under headers; columns listed in muted render gray.
func renderTable(headers []string, rows [][]string, muted map[int]bool, width int) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(MutedColor)).
		Width(clampWidth(width)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return TableHeaderStyle
			case muted[col]:
				return TableMutedCellStyle
			default:
				return TableCellStyle
			}
		})
	return t.Render()
}

// ProductsTable renders catalog entries.
func ProductsTable(products []directory.Product, width int) string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		rows = append(rows, []string{strconv.Itoa(p.ID), p.Title, p.Category, p.PriceLabel()})
	}
	return renderTable([]string{"ID", "Title", "Category", "Price"}, rows, map[int]bool{0: true, 2: true}, width)
}

// UsersTable renders directory entries.
func UsersTable(users []directory.User, width int) string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{strconv.Itoa(u.ID), u.FullName(), u.Email, orEmpty(u.CompanyName)})
	}
	return renderTable([]string{"ID", "Name", "Email", "Company"}, rows, map[int]bool{0: true, 2: true}, width)
}
