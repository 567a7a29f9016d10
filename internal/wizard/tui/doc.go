// Package tui implements the interactive job application wizard using the
// Bubble Tea framework.
//
// The wizard walks an applicant through three form steps, a preview and a
// submitted screen:
//
//  1. Personal details: name, email, phone and gender.
//  2. Professional info: job title, an experience level picked from the
//     product catalog, a variable list of skills and a remote preference.
//  3. Additional details: bio, preferred departments picked from the user
//     directory, a portfolio URL and the terms checkbox.
//
// # Usage
//
//	app := tui.NewAppModel(tui.Options{Products: products, Users: users})
//	program := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
//
//	if _, err := program.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Dropdowns
//
// Experience and departments use Dropdown, a generic component over a
// paginate.Loader. Pages are requested when the end-of-list sentinel row
// scrolls into the visible window, so the list grows as the user scrolls.
// Results arrive as messages tagged with a loader ticket; results from an
// older generation are dropped.
//
// Open dropdowns register with a PointerRegistry. A left press outside
// every registered region closes them.
//
// # Key Bindings
//
//   - Form steps: tab/shift+tab move focus, enter continues, ctrl+s submits,
//     ctrl+b goes back
//   - Open dropdown: ↑/↓ move, enter/space select, esc close
//   - Preview: 1-3 edit a step, r start over, enter submit, q quit
//
// Help text follows the focused control.
package tui
