// Package ui provides one-shot terminal output for the applywizard CLI.
//
// Unlike the interactive wizard, these components render once and return:
// they format output for subcommands and the plain prompt mode but take no
// keyboard input of their own (Confirm reads a single line).
//
// # Components
//
//   - Header: command banner showing the operation name and parameters
//   - Progress: page loading bar with one line per requested page
//   - Result: success, failure and warning boxes with details and tips
//   - Tables: catalog and directory listings for browse
//   - RenderApplication: the answers of a completed wizard run
//
// # Usage
//
//	p := ui.NewPrinter(cmd.OutOrStdout())
//	p.PrintHeader("Product Catalog", "applywizard browse products",
//	    ui.Param{Key: "Source", Value: baseURL})
//	p.PrintProducts(products)
//
// # Logging Integration
//
// Logging is controlled via the APPLYWIZARD_LOG_LEVEL environment variable or
// the logging.level setting. When both are empty, zap logging is silent so
// that only the curated output reaches the terminal.
package ui
